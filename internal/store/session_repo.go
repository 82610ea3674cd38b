package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/examdrill/examdrill/internal/quiz"
)

// sessionRepo stores the session record as a JSON blob in its slot.
type sessionRepo struct {
	store *Store
}

func (r *sessionRepo) Save(ctx context.Context, s *quiz.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.store.putSlot(ctx, slotSession, data)
}

func (r *sessionRepo) Load(ctx context.Context) (*quiz.Session, error) {
	data, err := r.store.getSlot(ctx, slotSession)
	if err != nil {
		return nil, err
	}
	var s quiz.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	// Older records may lack optional maps.
	s.Backfill()
	return &s, nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	return r.store.deleteSlot(ctx, slotSession)
}
