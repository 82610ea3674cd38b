package store

import (
	"context"

	"github.com/examdrill/examdrill/internal/quiz"
)

// SessionRepo manages the single current-session record. Save
// supersedes any previous record; the store never holds more than one.
type SessionRepo interface {
	// Save persists the session whole.
	Save(ctx context.Context, s *quiz.Session) error

	// Load returns the persisted session, or ErrNotFound.
	Load(ctx context.Context) (*quiz.Session, error)

	// Clear deletes the session record. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}

// SetRepo manages one durable set of question ids (missed or flagged).
type SetRepo interface {
	// Load returns the set, empty if nothing is persisted yet.
	Load(ctx context.Context) (map[int]bool, error)

	// Save persists the set whole.
	Save(ctx context.Context, set map[int]bool) error

	// Clear deletes the set.
	Clear(ctx context.Context) error
}
