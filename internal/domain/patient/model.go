package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	DOB         *time.Time `db:"dob" json:"dob,omitempty"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	Email       *string    `db:"email" json:"email,omitempty"`
	Address     *string    `db:"address" json:"address,omitempty"`
	InsuranceID *uuid.UUID `db:"insurance_id" json:"insurance_id,omitempty"`
	PhysicianID *uuid.UUID `db:"physician_id" json:"physician_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name used in lists and calendar titles.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Physician maps to the physicians table. Referring physicians are plain
// directory entries; they do not log in.
type Physician struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Insurance maps to the insurances table.
type Insurance struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	PlanName    *string   `db:"plan_name" json:"plan_name,omitempty"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
