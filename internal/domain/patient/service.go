package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	return s.repo.CreatePatient(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	return s.repo.UpdatePatient(ctx, p)
}

// DeletePatient removes the patient record. Patients with visits on file
// cannot be deleted; the repo surfaces that as ErrInUse.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePatient(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.ListPatients(ctx, limit, offset)
}

func (s *Service) CreatePhysician(ctx context.Context, p *Physician) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	return s.repo.CreatePhysician(ctx, p)
}

func (s *Service) GetPhysician(ctx context.Context, id uuid.UUID) (*Physician, error) {
	return s.repo.GetPhysician(ctx, id)
}

func (s *Service) UpdatePhysician(ctx context.Context, p *Physician) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	return s.repo.UpdatePhysician(ctx, p)
}

func (s *Service) DeletePhysician(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePhysician(ctx, id)
}

func (s *Service) ListPhysicians(ctx context.Context, limit, offset int) ([]*Physician, int, error) {
	return s.repo.ListPhysicians(ctx, limit, offset)
}

func (s *Service) CreateInsurance(ctx context.Context, ins *Insurance) error {
	if ins.CompanyName == "" {
		return fmt.Errorf("company_name is required")
	}
	return s.repo.CreateInsurance(ctx, ins)
}

func (s *Service) GetInsurance(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	return s.repo.GetInsurance(ctx, id)
}

func (s *Service) UpdateInsurance(ctx context.Context, ins *Insurance) error {
	if ins.CompanyName == "" {
		return fmt.Errorf("company_name is required")
	}
	return s.repo.UpdateInsurance(ctx, ins)
}

func (s *Service) DeleteInsurance(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInsurance(ctx, id)
}

func (s *Service) ListInsurances(ctx context.Context, limit, offset int) ([]*Insurance, int, error) {
	return s.repo.ListInsurances(ctx, limit, offset)
}
