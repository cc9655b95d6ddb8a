package visit

import (
	"time"

	"github.com/google/uuid"

	"github.com/rehabdesk/clinic/internal/domain/notes"
)

// Visit is the single scheduling surface: a calendar slot and its clinical
// documentation are the same row. NoteFields carries the structured note
// blob saved from the documentation screen.
type Visit struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	PatientID   uuid.UUID    `db:"patient_id" json:"patient_id"`
	TherapistID uuid.UUID    `db:"therapist_id" json:"therapist_id"`
	VisitDate   time.Time    `db:"visit_date" json:"visit_date"`
	VisitType   string       `db:"visit_type" json:"visit_type"`
	Status      string       `db:"status" json:"status"`
	CPTCode     *string      `db:"cpt_code" json:"cpt_code,omitempty"`
	ICD10Code   *string      `db:"icd10_code" json:"icd10_code,omitempty"`
	Note        *string      `db:"note" json:"note,omitempty"`
	NoteFields  notes.Fields `db:"note_fields" json:"note_fields,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

const (
	StatusScheduled     = "scheduled"
	StatusArrived       = "arrived"
	StatusCompleted     = "completed"
	StatusCancelled     = "cancelled"
	StatusNoShow        = "no-show"
	StatusCallConfirmed = "call-confirmed"
)

var validStatuses = map[string]bool{
	StatusScheduled:     true,
	StatusArrived:       true,
	StatusCompleted:     true,
	StatusCancelled:     true,
	StatusNoShow:        true,
	StatusCallConfirmed: true,
}

var validTypes = map[string]bool{
	"Eval":      true,
	"Re-eval":   true,
	"Daily":     true,
	"Discharge": true,
}

// statusColors keys the calendar display color by visit status.
var statusColors = map[string]string{
	StatusScheduled:     "#3498db",
	StatusArrived:       "#378006",
	StatusCompleted:     "#2ecc71",
	StatusCancelled:     "#95a5a6",
	StatusNoShow:        "#FF5733",
	StatusCallConfirmed: "#f39c12",
}

func colorFor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[StatusScheduled]
}

// Event is a calendar feed entry. Title is "First Last - Type". Slots are
// rendered one hour long.
type Event struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Color string    `json:"color"`
}

// NewEvent builds the calendar entry for a visit given the patient's
// display name.
func NewEvent(v *Visit, patientName string) *Event {
	return &Event{
		ID:    v.ID,
		Title: patientName + " - " + v.VisitType,
		Start: v.VisitDate,
		End:   v.VisitDate.Add(time.Hour),
		Color: colorFor(v.Status),
	}
}
