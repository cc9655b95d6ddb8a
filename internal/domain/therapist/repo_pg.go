package therapist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, first_name, last_name, credentials, email, phone, availability, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, t *Therapist) error {
	t.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO therapists (id, first_name, last_name, credentials, email, phone, availability)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		t.ID, t.FirstName, t.LastName, t.Credentials, t.Email, t.Phone, t.Availability,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Therapist, error) {
	return scanTherapist(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM therapists WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, t *Therapist) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE therapists SET
			first_name=$2, last_name=$3, credentials=$4, email=$5, phone=$6,
			availability=$7, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.FirstName, t.LastName, t.Credentials, t.Email, t.Phone, t.Availability,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM therapists WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Therapist, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM therapists`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM therapists ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var therapists []*Therapist
	for rows.Next() {
		t, err := scanTherapist(rows)
		if err != nil {
			return nil, 0, err
		}
		therapists = append(therapists, t)
	}
	return therapists, total, rows.Err()
}

func scanTherapist(row pgx.Row) (*Therapist, error) {
	var t Therapist
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Credentials, &t.Email, &t.Phone,
		&t.Availability, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
