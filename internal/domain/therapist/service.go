package therapist

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

func (s *Service) Create(ctx context.Context, t *Therapist) error {
	if t.FirstName == "" || t.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Therapist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, t *Therapist) error {
	if t.FirstName == "" || t.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Therapist, int, error) {
	return s.repo.List(ctx, limit, offset)
}
