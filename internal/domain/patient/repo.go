package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInUse is returned when a delete would orphan dependent rows,
	// for example a patient who still has visits on file.
	ErrInUse = errors.New("record is referenced by other records")
)

type Repository interface {
	CreatePatient(ctx context.Context, p *Patient) error
	GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error)
	UpdatePatient(ctx context.Context, p *Patient) error
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error)

	CreatePhysician(ctx context.Context, p *Physician) error
	GetPhysician(ctx context.Context, id uuid.UUID) (*Physician, error)
	UpdatePhysician(ctx context.Context, p *Physician) error
	DeletePhysician(ctx context.Context, id uuid.UUID) error
	ListPhysicians(ctx context.Context, limit, offset int) ([]*Physician, int, error)

	CreateInsurance(ctx context.Context, ins *Insurance) error
	GetInsurance(ctx context.Context, id uuid.UUID) (*Insurance, error)
	UpdateInsurance(ctx context.Context, ins *Insurance) error
	DeleteInsurance(ctx context.Context, id uuid.UUID) error
	ListInsurances(ctx context.Context, limit, offset int) ([]*Insurance, int, error)
}
