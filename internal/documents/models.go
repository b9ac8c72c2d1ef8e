package documents

import (
	"time"

	"github.com/google/uuid"
)

// Default page dimensions (A4 in PDF points), used when the page size of an
// upload cannot be read.
const (
	DefaultPageWidth  = 595.0
	DefaultPageHeight = 842.0
)

// Document is one uploaded PDF. The stored file is immutable after upload;
// finalization always writes a new artifact next to it.
type Document struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"owner_id" db:"owner_id"`
	FileName     string    `json:"file_name" db:"file_name"`
	OriginalName string    `json:"original_name" db:"original_name"`
	Path         string    `json:"path" db:"path"`
	Size         int64     `json:"size" db:"size"`
	PageWidth    float64   `json:"page_width" db:"page_width"`
	PageHeight   float64   `json:"page_height" db:"page_height"`
	UploadedAt   time.Time `json:"uploaded_at" db:"uploaded_at"`
}
