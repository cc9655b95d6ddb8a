package visit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rehabdesk/clinic/internal/domain/notes"
)

var ErrNotFound = errors.New("visit not found")

// Filter narrows visit listings. Zero values mean no constraint.
type Filter struct {
	PatientID   uuid.UUID
	TherapistID uuid.UUID
	From        time.Time
	To          time.Time
}

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)
	Update(ctx context.Context, v *Visit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error)

	// ListEvents returns calendar entries, joined with patient names, for
	// visits falling inside the window.
	ListEvents(ctx context.Context, from, to time.Time) ([]*Event, error)

	// SaveNote replaces the structured note blob on a visit.
	SaveNote(ctx context.Context, id uuid.UUID, fields notes.Fields) error
}
