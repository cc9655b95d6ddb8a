package billing

import (
	"time"

	"github.com/google/uuid"
)

// Billing maps to the billings table. One row per visit. Amounts are
// integer cents to keep summary arithmetic exact.
type Billing struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	VisitID       uuid.UUID  `db:"visit_id" json:"visit_id"`
	AmountCents   int64      `db:"amount_cents" json:"amount_cents"`
	Paid          bool       `db:"paid" json:"paid"`
	PaymentDate   *time.Time `db:"payment_date" json:"payment_date,omitempty"`
	PaymentMethod *string    `db:"payment_method" json:"payment_method,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Summary backs the dashboard revenue box.
type Summary struct {
	TotalBilledCents      int64 `json:"total_billed_cents"`
	TotalPaidCents        int64 `json:"total_paid_cents"`
	TotalOutstandingCents int64 `json:"total_outstanding_cents"`
	RecordCount           int   `json:"record_count"`
	UnpaidCount           int   `json:"unpaid_count"`
}
