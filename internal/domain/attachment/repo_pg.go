package attachment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, filename, content_type, size_bytes, sha256, category, description,
	patient_id, visit_id, storage_key, upload_date`

func (r *repoPG) Create(ctx context.Context, a *Attachment) error {
	a.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO attachments (id, filename, content_type, size_bytes, sha256, category, description, patient_id, visit_id, storage_key)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING upload_date`,
		a.ID, a.Filename, a.ContentType, a.SizeBytes, a.SHA256, a.Category, a.Description,
		a.PatientID, a.VisitID, a.StorageKey,
	).Scan(&a.UploadDate)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error) {
	return scanAttachment(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM attachments WHERE id = $1`, id))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Attachment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM attachments`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM attachments ORDER BY upload_date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectAttachments(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Attachment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attachments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM attachments WHERE patient_id = $1 ORDER BY upload_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectAttachments(rows, total)
}

func (r *repoPG) ListByVisit(ctx context.Context, visitID uuid.UUID, limit, offset int) ([]*Attachment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attachments WHERE visit_id = $1`, visitID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM attachments WHERE visit_id = $1 ORDER BY upload_date DESC LIMIT $2 OFFSET $3`,
		visitID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectAttachments(rows, total)
}

func collectAttachments(rows pgx.Rows, total int) ([]*Attachment, int, error) {
	var attachments []*Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, 0, err
		}
		attachments = append(attachments, a)
	}
	return attachments, total, rows.Err()
}

func scanAttachment(row pgx.Row) (*Attachment, error) {
	var a Attachment
	err := row.Scan(
		&a.ID, &a.Filename, &a.ContentType, &a.SizeBytes, &a.SHA256, &a.Category,
		&a.Description, &a.PatientID, &a.VisitID, &a.StorageKey, &a.UploadDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
