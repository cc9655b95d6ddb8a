package therapist

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("therapist not found")
	// ErrInUse is returned when deleting a therapist who still has visits.
	ErrInUse = errors.New("therapist is referenced by visits")
)

type Repository interface {
	Create(ctx context.Context, t *Therapist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Therapist, error)
	Update(ctx context.Context, t *Therapist) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Therapist, int, error)
}
