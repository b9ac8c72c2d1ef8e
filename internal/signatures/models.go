package signatures

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusSigned   Status = "signed"
	StatusRejected Status = "rejected"
)

// Signature is one signer's mark on a document page. Coordinates are stored
// in PDF-point space with a top-left origin; the bottom-left flip happens at
// draw time.
type Signature struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	DocumentID uuid.UUID  `json:"document_id" db:"document_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	X          float64    `json:"x" db:"x"`
	Y          float64    `json:"y" db:"y"`
	Page       int        `json:"page" db:"page"`
	Value      *string    `json:"value,omitempty" db:"value"`
	Font       string     `json:"font" db:"font"`
	Status     Status     `json:"status" db:"status"`
	Reason     *string    `json:"reason,omitempty" db:"reason"`
	SignedAt   *time.Time `json:"signed_at,omitempty" db:"signed_at"`
	SignerName *string    `json:"signer_name,omitempty" db:"signer_name"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// DisplayText returns the text to render for this signature: the typed
// value when present, otherwise the public signer's name.
func (s *Signature) DisplayText() string {
	if s.Value != nil && *s.Value != "" {
		return *s.Value
	}
	if s.SignerName != nil && *s.SignerName != "" {
		return *s.SignerName
	}
	return "Signed"
}
