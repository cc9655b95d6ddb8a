package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("billing record not found")
	// ErrDuplicateVisit is returned when a visit already has a billing row.
	ErrDuplicateVisit = errors.New("visit already billed")
)

type Repository interface {
	Create(ctx context.Context, b *Billing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Billing, error)
	GetByVisit(ctx context.Context, visitID uuid.UUID) (*Billing, error)
	Update(ctx context.Context, b *Billing) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Billing, int, error)
	ListUnpaid(ctx context.Context, limit, offset int) ([]*Billing, int, error)
	Summary(ctx context.Context) (*Summary, error)
}
