package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/examdrill/examdrill/internal/bank"
)

// Count modes with non-numeric meaning.
const (
	CountAll     = "all"
	CountMissed  = "missed"
	CountFlagged = "flagged"
)

// ErrEmptyPool is returned when the requested question set is empty.
// The start operation is aborted and prior state left unchanged.
var ErrEmptyPool = errors.New("no questions in the requested set")

// BuildPool selects the ordered question ids for a new session.
//
// "missed" and "flagged" filter the bank (in bank order) to ids in
// the respective set; a numeric count mode takes the whole bank and
// truncates after the optional shuffle; "all" takes everything.
func BuildPool(b *bank.Bank, settings Settings, missed, flagged map[int]bool) ([]int, error) {
	var pool []int
	switch settings.CountMode {
	case CountMissed:
		pool = filterIDs(b, missed)
	case CountFlagged:
		pool = filterIDs(b, flagged)
	default:
		pool = b.IDs()
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	if settings.Shuffle {
		shuffleInPlace(pool)
	}

	switch settings.CountMode {
	case CountAll, CountMissed, CountFlagged:
	default:
		n, err := strconv.Atoi(settings.CountMode)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid question count %q", settings.CountMode)
		}
		if n < len(pool) {
			pool = pool[:n]
		}
	}

	return pool, nil
}

func filterIDs(b *bank.Bank, set map[int]bool) []int {
	var ids []int
	for _, id := range b.IDs() {
		if set[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// shuffleInPlace applies a uniform Fisher-Yates shuffle.
func shuffleInPlace(ids []int) {
	for i := len(ids) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
