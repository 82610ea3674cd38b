package quiz

import (
	"math"

	"github.com/examdrill/examdrill/internal/bank"
)

// DefaultPassThreshold is the pass percentage used when no value is
// configured.
const DefaultPassThreshold = 70

// Summary holds the aggregate statistics of a finished session.
type Summary struct {
	Total     int
	Correct   int
	Incorrect int
	Blank     int
	Percent   int
	Threshold int
	Passed    bool
}

// Finish scores every question in the session against its recorded
// answers, stores the per-question results on the session, and
// returns the summary plus the ids that were not answered correctly
// (incorrect or blank) for the caller to merge into the missed set.
//
// The missed set is add-only: a later correct answer never removes an
// id from it, only an explicit reset does.
func (s *Session) Finish(b *bank.Bank, threshold int) (Summary, []int) {
	results := make([]Result, 0, len(s.QuestionIDs))
	var missed []int

	for _, id := range s.QuestionIDs {
		q := b.ByID(id)
		if q == nil {
			continue
		}
		chosen := s.Answers[id]
		r := Result{
			ID:     id,
			Blank:  len(chosen) == 0,
			Chosen: chosen,
		}
		r.Correct = !r.Blank && q.IsCorrectSet(chosen)
		if !r.Correct {
			missed = append(missed, id)
		}
		results = append(results, r)
	}

	s.LastResults = results
	return s.Summarize(threshold), missed
}

// Summarize recomputes the aggregate counts from the stored results.
// Safe on a session with no results (all zeros, percent 0).
func (s *Session) Summarize(threshold int) Summary {
	sum := Summary{Threshold: threshold}
	for _, r := range s.LastResults {
		sum.Total++
		switch {
		case r.Blank:
			sum.Blank++
		case r.Correct:
			sum.Correct++
		default:
			sum.Incorrect++
		}
	}
	if sum.Total > 0 {
		sum.Percent = int(math.Round(100 * float64(sum.Correct) / float64(sum.Total)))
	}
	sum.Passed = sum.Percent >= threshold
	return sum
}

// Finished reports whether the session has been scored.
func (s *Session) Finished() bool {
	return len(s.LastResults) > 0
}
