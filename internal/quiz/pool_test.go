package quiz

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

func TestBuildPool_NumericUnshuffled(t *testing.T) {
	b := testBank(t, 10)
	pool, err := BuildPool(b, Settings{CountMode: "3"}, nil, nil)
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	if !reflect.DeepEqual(pool, []int{1, 2, 3}) {
		t.Errorf("pool = %v, want first 3 ids in bank order", pool)
	}
}

func TestBuildPool_NumericLargerThanBank(t *testing.T) {
	b := testBank(t, 4)
	pool, err := BuildPool(b, Settings{CountMode: "50"}, nil, nil)
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	if len(pool) != 4 {
		t.Errorf("pool size = %d, want 4", len(pool))
	}
}

func TestBuildPool_All(t *testing.T) {
	b := testBank(t, 5)
	pool, err := BuildPool(b, Settings{CountMode: CountAll}, nil, nil)
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	if !reflect.DeepEqual(pool, []int{1, 2, 3, 4, 5}) {
		t.Errorf("pool = %v, want bank order", pool)
	}
}

func TestBuildPool_MissedFilter(t *testing.T) {
	b := testBank(t, 5)
	missed := map[int]bool{2: true, 4: true}
	pool, err := BuildPool(b, Settings{CountMode: CountMissed}, missed, nil)
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	if !reflect.DeepEqual(pool, []int{2, 4}) {
		t.Errorf("pool = %v, want [2 4]", pool)
	}
}

func TestBuildPool_EmptyMissedRejected(t *testing.T) {
	b := testBank(t, 5)
	_, err := BuildPool(b, Settings{CountMode: CountMissed}, nil, nil)
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("err = %v, want ErrEmptyPool", err)
	}
}

func TestBuildPool_FlaggedFilter(t *testing.T) {
	b := testBank(t, 5)
	flagged := map[int]bool{1: true, 5: true}
	pool, err := BuildPool(b, Settings{CountMode: CountFlagged}, nil, flagged)
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	if !reflect.DeepEqual(pool, []int{1, 5}) {
		t.Errorf("pool = %v, want [1 5]", pool)
	}
}

func TestBuildPool_InvalidCount(t *testing.T) {
	b := testBank(t, 5)
	for _, count := range []string{"zero", "-1", "0", ""} {
		if _, err := BuildPool(b, Settings{CountMode: count}, nil, nil); err == nil {
			t.Errorf("count %q: expected error", count)
		}
	}
}

func TestBuildPool_ShuffleIsPermutation(t *testing.T) {
	b := testBank(t, 20)
	pool, err := BuildPool(b, Settings{CountMode: CountAll, Shuffle: true}, nil, nil)
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	sorted := append([]int(nil), pool...)
	sort.Ints(sorted)
	if !reflect.DeepEqual(sorted, b.IDs()) {
		t.Errorf("shuffled pool is not a permutation of the bank: %v", pool)
	}
}

func TestBuildPool_ShuffleThenTruncate(t *testing.T) {
	b := testBank(t, 20)
	pool, err := BuildPool(b, Settings{CountMode: "5", Shuffle: true}, nil, nil)
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	if len(pool) != 5 {
		t.Errorf("pool size = %d, want 5", len(pool))
	}
	seen := make(map[int]bool)
	for _, id := range pool {
		if id < 1 || id > 20 || seen[id] {
			t.Fatalf("pool %v contains invalid or duplicate ids", pool)
		}
		seen[id] = true
	}
}
