package therapist

import (
	"time"

	"github.com/google/uuid"
)

// Therapist maps to the therapists table. Availability is free text; the
// front end renders it verbatim on the scheduling screen.
type Therapist struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Credentials  *string   `db:"credentials" json:"credentials,omitempty"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Availability *string   `db:"availability" json:"availability,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (t *Therapist) FullName() string {
	return t.FirstName + " " + t.LastName
}
