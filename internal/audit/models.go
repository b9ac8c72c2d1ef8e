package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded against a document.
const (
	ActionUploaded     = "uploaded"
	ActionPlaced       = "placed"
	ActionSigned       = "signed"
	ActionRejected     = "rejected"
	ActionFinalized    = "finalized"
	ActionPublicSigned = "public_signed"
	ActionShared       = "shared"
)

// Entry is one append-only audit record. UserID is nil for anonymous
// public-link actions.
type Entry struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	DocumentID uuid.UUID  `json:"document_id" db:"document_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	Action     string     `json:"action" db:"action"`
	IP         string     `json:"ip" db:"ip"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
