package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rehabdesk/clinic/internal/domain/notes"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, v *Visit) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if v.TherapistID == uuid.Nil {
		return fmt.Errorf("therapist_id is required")
	}
	if v.VisitType == "" {
		v.VisitType = "Daily"
	}
	if !validTypes[v.VisitType] {
		return fmt.Errorf("invalid visit_type: %s", v.VisitType)
	}
	if v.Status == "" {
		v.Status = StatusScheduled
	}
	if !validStatuses[v.Status] {
		return fmt.Errorf("invalid status: %s", v.Status)
	}
	if v.VisitDate.IsZero() {
		v.VisitDate = time.Now().UTC()
	}
	return s.repo.Create(ctx, v)
}

// Get loads a visit. Structured note values written by older clients store
// goals as a JSON envelope; those are unwrapped before the visit leaves the
// service.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalizeNote(v)
	return v, nil
}

func (s *Service) Update(ctx context.Context, v *Visit) error {
	if v.VisitType != "" && !validTypes[v.VisitType] {
		return fmt.Errorf("invalid visit_type: %s", v.VisitType)
	}
	if v.Status != "" && !validStatuses[v.Status] {
		return fmt.Errorf("invalid status: %s", v.Status)
	}
	return s.repo.Update(ctx, v)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.Status = status
	return s.repo.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error) {
	visits, total, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, v := range visits {
		normalizeNote(v)
	}
	return visits, total, nil
}

// Events returns the calendar feed for the window. A zero window defaults
// to one month back through two months ahead.
func (s *Service) Events(ctx context.Context, from, to time.Time) ([]*Event, error) {
	if from.IsZero() {
		from = time.Now().UTC().AddDate(0, -1, 0)
	}
	if to.IsZero() {
		to = from.AddDate(0, 3, 0)
	}
	return s.repo.ListEvents(ctx, from, to)
}

// SaveNote stores the structured note blob on the visit.
func (s *Service) SaveNote(ctx context.Context, id uuid.UUID, fields notes.Fields) error {
	if fields == nil {
		return fmt.Errorf("note fields are required")
	}
	return s.repo.SaveNote(ctx, id, fields)
}

// GetNote returns the stored note blob with legacy goals unwrapped.
func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (notes.Fields, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.NoteFields == nil {
		return notes.Fields{}, nil
	}
	return v.NoteFields, nil
}

// Stored note blobs may hold either namespace's keys; run the unwrap for
// both so whichever is present gets normalized.
func normalizeNote(v *Visit) {
	if v.NoteFields == nil {
		return
	}
	notes.NormalizeLegacyGoals(notes.NamespacePT, v.NoteFields)
	notes.NormalizeLegacyGoals(notes.NamespaceOT, v.NoteFields)
}
