package visit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rehabdesk/clinic/internal/domain/notes"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, patient_id, therapist_id, visit_date, visit_type, status,
	cpt_code, icd10_code, note, note_fields, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO visits (id, patient_id, therapist_id, visit_date, visit_type, status, cpt_code, icd10_code, note, note_fields)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		v.ID, v.PatientID, v.TherapistID, v.VisitDate, v.VisitType, v.Status,
		v.CPTCode, v.ICD10Code, v.Note, v.NoteFields,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return scanVisit(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM visits WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE visits SET
			patient_id=$2, therapist_id=$3, visit_date=$4, visit_type=$5, status=$6,
			cpt_code=$7, icd10_code=$8, note=$9, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.PatientID, v.TherapistID, v.VisitDate, v.VisitType, v.Status,
		v.CPTCode, v.ICD10Code, v.Note,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PatientID != uuid.Nil {
		conds = append(conds, "patient_id = "+arg(f.PatientID))
	}
	if f.TherapistID != uuid.Nil {
		conds = append(conds, "therapist_id = "+arg(f.TherapistID))
	}
	if !f.From.IsZero() {
		conds = append(conds, "visit_date >= "+arg(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "visit_date < "+arg(f.To))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM visits`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + cols + ` FROM visits` + where +
		` ORDER BY visit_date DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var visits []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		visits = append(visits, v)
	}
	return visits, total, rows.Err()
}

func (r *repoPG) ListEvents(ctx context.Context, from, to time.Time) ([]*Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, p.first_name || ' ' || p.last_name, v.visit_type, v.visit_date, v.status
		FROM visits v
		JOIN patients p ON p.id = v.patient_id
		WHERE v.visit_date >= $1 AND v.visit_date < $2
		ORDER BY v.visit_date`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			v    Visit
			name string
		)
		if err := rows.Scan(&v.ID, &name, &v.VisitType, &v.VisitDate, &v.Status); err != nil {
			return nil, err
		}
		events = append(events, NewEvent(&v, name))
	}
	return events, rows.Err()
}

func (r *repoPG) SaveNote(ctx context.Context, id uuid.UUID, fields notes.Fields) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE visits SET note_fields = $2, updated_at = NOW() WHERE id = $1`,
		id, fields)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(
		&v.ID, &v.PatientID, &v.TherapistID, &v.VisitDate, &v.VisitType, &v.Status,
		&v.CPTCode, &v.ICD10Code, &v.Note, &v.NoteFields, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
