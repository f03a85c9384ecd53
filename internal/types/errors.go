package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrValidation indicates malformed input: a missing required field, an
// unknown section type, or a reorder request that is not a permutation of the
// live item ids. Never retried automatically.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrItemNotFound indicates an operation referenced a section item id not
// owned by the given user.
type ErrItemNotFound struct {
	Section SectionType
	ID      uuid.UUID
}

func (e *ErrItemNotFound) Error() string {
	return fmt.Sprintf("%s item not found: %s", e.Section, e.ID)
}

// ErrOrderConflict indicates a reorder lost a race against a concurrent
// mutation of the same section list. The caller should re-fetch and retry.
type ErrOrderConflict struct {
	Section SectionType
}

func (e *ErrOrderConflict) Error() string {
	return fmt.Sprintf("concurrent modification of %s ordering", e.Section)
}
