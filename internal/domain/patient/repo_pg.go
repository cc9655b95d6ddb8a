package patient

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

func mapRowErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// foreign_key_violation
func mapDeleteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrInUse
	}
	return err
}

const patientCols = `id, first_name, last_name, dob, phone, email, address,
	insurance_id, physician_id, created_at, updated_at`

func (r *repoPG) CreatePatient(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return mapRowErr(r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, first_name, last_name, dob, phone, email, address, insurance_id, physician_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		p.ID, p.FirstName, p.LastName, p.DOB, p.Phone, p.Email, p.Address, p.InsuranceID, p.PhysicianID,
	).Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *repoPG) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) UpdatePatient(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET
			first_name=$2, last_name=$3, dob=$4, phone=$5, email=$6, address=$7,
			insurance_id=$8, physician_id=$9, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DOB, p.Phone, p.Email, p.Address, p.InsuranceID, p.PhysicianID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeletePatient(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.Phone, &p.Email, &p.Address,
		&p.InsuranceID, &p.PhysicianID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapRowErr(err)
	}
	return &p, nil
}

const physicianCols = `id, first_name, last_name, specialty, email, phone, created_at`

func (r *repoPG) CreatePhysician(ctx context.Context, p *Physician) error {
	p.ID = uuid.New()
	return mapRowErr(r.pool.QueryRow(ctx, `
		INSERT INTO physicians (id, first_name, last_name, specialty, email, phone)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		p.ID, p.FirstName, p.LastName, p.Specialty, p.Email, p.Phone,
	).Scan(&p.CreatedAt))
}

func (r *repoPG) GetPhysician(ctx context.Context, id uuid.UUID) (*Physician, error) {
	return scanPhysician(r.pool.QueryRow(ctx, `SELECT `+physicianCols+` FROM physicians WHERE id = $1`, id))
}

func (r *repoPG) UpdatePhysician(ctx context.Context, p *Physician) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE physicians SET first_name=$2, last_name=$3, specialty=$4, email=$5, phone=$6
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.Specialty, p.Email, p.Phone,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeletePhysician(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM physicians WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListPhysicians(ctx context.Context, limit, offset int) ([]*Physician, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM physicians`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+physicianCols+` FROM physicians ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var physicians []*Physician
	for rows.Next() {
		p, err := scanPhysician(rows)
		if err != nil {
			return nil, 0, err
		}
		physicians = append(physicians, p)
	}
	return physicians, total, rows.Err()
}

func scanPhysician(row pgx.Row) (*Physician, error) {
	var p Physician
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Specialty, &p.Email, &p.Phone, &p.CreatedAt)
	if err != nil {
		return nil, mapRowErr(err)
	}
	return &p, nil
}

const insuranceCols = `id, company_name, plan_name, phone, created_at`

func (r *repoPG) CreateInsurance(ctx context.Context, ins *Insurance) error {
	ins.ID = uuid.New()
	return mapRowErr(r.pool.QueryRow(ctx, `
		INSERT INTO insurances (id, company_name, plan_name, phone)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		ins.ID, ins.CompanyName, ins.PlanName, ins.Phone,
	).Scan(&ins.CreatedAt))
}

func (r *repoPG) GetInsurance(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	return scanInsurance(r.pool.QueryRow(ctx, `SELECT `+insuranceCols+` FROM insurances WHERE id = $1`, id))
}

func (r *repoPG) UpdateInsurance(ctx context.Context, ins *Insurance) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE insurances SET company_name=$2, plan_name=$3, phone=$4 WHERE id = $1`,
		ins.ID, ins.CompanyName, ins.PlanName, ins.Phone,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteInsurance(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM insurances WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListInsurances(ctx context.Context, limit, offset int) ([]*Insurance, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM insurances`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+insuranceCols+` FROM insurances ORDER BY company_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var insurances []*Insurance
	for rows.Next() {
		ins, err := scanInsurance(rows)
		if err != nil {
			return nil, 0, err
		}
		insurances = append(insurances, ins)
	}
	return insurances, total, rows.Err()
}

func scanInsurance(row pgx.Row) (*Insurance, error) {
	var ins Insurance
	err := row.Scan(&ins.ID, &ins.CompanyName, &ins.PlanName, &ins.Phone, &ins.CreatedAt)
	if err != nil {
		return nil, mapRowErr(err)
	}
	return &ins, nil
}
