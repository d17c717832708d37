package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a session was changed by another request since it was read
	ErrConflict = errors.New("conflict")
)

// Session represents a preference elicitation conversation.
// Only the collected preferences are kept, utterances are not stored.
type Session struct {
	ID          string
	Preferences map[string]string // field id -> value, empty value for unknown
	Turns       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession makes a session with a random id and no preferences
func NewSession(now time.Time) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Preferences: map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidSessionID checks if id looks like a session id
func ValidSessionID(id string) bool {
	return uuid.Validate(id) == nil
}
