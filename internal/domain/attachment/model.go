package attachment

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is the metadata row for an uploaded file. The bytes live in
// the blobstore under StorageKey; the key never leaves the server.
type Attachment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Filename    string     `db:"filename" json:"filename"`
	ContentType string     `db:"content_type" json:"content_type"`
	SizeBytes   int64      `db:"size_bytes" json:"size_bytes"`
	SHA256      string     `db:"sha256" json:"sha256"`
	Category    *string    `db:"category" json:"category,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	PatientID   *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	VisitID     *uuid.UUID `db:"visit_id" json:"visit_id,omitempty"`
	StorageKey  string     `db:"storage_key" json:"-"`
	UploadDate  time.Time  `db:"upload_date" json:"upload_date"`
}
