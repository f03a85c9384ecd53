package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/priya/resume-builder/internal/types"
)

// User represents a user account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SectionItem is the generic envelope for one record in a section collection.
// The section-specific fields live in Payload; the shared fields are factored
// out here once.
type SectionItem struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	SectionType     types.SectionType `json:"section_type"`
	IncludeInResume bool              `json:"include_in_resume"`
	Payload         json.RawMessage   `json:"payload"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SectionOrderList is the persisted ordering of one section for one user.
// Invariant: ItemIDs is a permutation of the live item ids in that section.
type SectionOrderList struct {
	UserID      uuid.UUID         `json:"user_id"`
	SectionType types.SectionType `json:"section_type"`
	ItemIDs     []uuid.UUID       `json:"item_ids"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
