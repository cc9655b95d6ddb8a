package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, b *Billing) error {
	if b.VisitID == uuid.Nil {
		return fmt.Errorf("visit_id is required")
	}
	if b.AmountCents < 0 {
		return fmt.Errorf("amount_cents must not be negative")
	}
	if b.Paid && b.PaymentDate == nil {
		now := s.now().UTC()
		b.PaymentDate = &now
	}
	return s.repo.Create(ctx, b)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Billing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByVisit(ctx context.Context, visitID uuid.UUID) (*Billing, error) {
	return s.repo.GetByVisit(ctx, visitID)
}

func (s *Service) Update(ctx context.Context, b *Billing) error {
	if b.AmountCents < 0 {
		return fmt.Errorf("amount_cents must not be negative")
	}
	if b.Paid && b.PaymentDate == nil {
		now := s.now().UTC()
		b.PaymentDate = &now
	}
	return s.repo.Update(ctx, b)
}

// MarkPaid records payment on an existing billing row.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, method string) (*Billing, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	b.Paid = true
	b.PaymentDate = &now
	if method != "" {
		b.PaymentMethod = &method
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Billing, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListUnpaid(ctx context.Context, limit, offset int) ([]*Billing, int, error) {
	return s.repo.ListUnpaid(ctx, limit, offset)
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	return s.repo.Summary(ctx)
}
