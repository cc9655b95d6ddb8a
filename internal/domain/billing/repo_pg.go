package billing

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

const cols = `id, visit_id, amount_cents, paid, payment_date, payment_method, notes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, b *Billing) error {
	b.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO billings (id, visit_id, amount_cents, paid, payment_date, payment_method, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		b.ID, b.VisitID, b.AmountCents, b.Paid, b.PaymentDate, b.PaymentMethod, b.Notes,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// unique_violation on visit_id
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateVisit
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Billing, error) {
	return scanBilling(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM billings WHERE id = $1`, id))
}

func (r *repoPG) GetByVisit(ctx context.Context, visitID uuid.UUID) (*Billing, error) {
	return scanBilling(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM billings WHERE visit_id = $1`, visitID))
}

func (r *repoPG) Update(ctx context.Context, b *Billing) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE billings SET
			amount_cents=$2, paid=$3, payment_date=$4, payment_method=$5, notes=$6, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.AmountCents, b.Paid, b.PaymentDate, b.PaymentMethod, b.Notes,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM billings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Billing, int, error) {
	return r.list(ctx, ``, limit, offset)
}

func (r *repoPG) ListUnpaid(ctx context.Context, limit, offset int) ([]*Billing, int, error) {
	return r.list(ctx, ` WHERE NOT paid`, limit, offset)
}

func (r *repoPG) list(ctx context.Context, where string, limit, offset int) ([]*Billing, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM billings`+where).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM billings`+where+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var billings []*Billing
	for rows.Next() {
		b, err := scanBilling(rows)
		if err != nil {
			return nil, 0, err
		}
		billings = append(billings, b)
	}
	return billings, total, rows.Err()
}

func (r *repoPG) Summary(ctx context.Context) (*Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_cents), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE paid), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT paid)
		FROM billings`,
	).Scan(&s.TotalBilledCents, &s.TotalPaidCents, &s.RecordCount, &s.UnpaidCount)
	if err != nil {
		return nil, err
	}
	s.TotalOutstandingCents = s.TotalBilledCents - s.TotalPaidCents
	return &s, nil
}

func scanBilling(row pgx.Row) (*Billing, error) {
	var b Billing
	err := row.Scan(
		&b.ID, &b.VisitID, &b.AmountCents, &b.Paid, &b.PaymentDate, &b.PaymentMethod,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
