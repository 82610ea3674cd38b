package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// setRepo stores a question-id set as a sorted JSON array.
type setRepo struct {
	store *Store
	key   string
}

func (r *setRepo) Load(ctx context.Context) (map[int]bool, error) {
	data, err := r.store.getSlot(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return make(map[int]bool), nil
	}
	if err != nil {
		return nil, err
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("unmarshal %s set: %w", r.key, err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *setRepo) Save(ctx context.Context, set map[int]bool) error {
	ids := make([]int, 0, len(set))
	for id, in := range set {
		if in {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal %s set: %w", r.key, err)
	}
	return r.store.putSlot(ctx, r.key, data)
}

func (r *setRepo) Clear(ctx context.Context) error {
	return r.store.deleteSlot(ctx, r.key)
}
