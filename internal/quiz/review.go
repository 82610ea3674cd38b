package quiz

import (
	"strings"

	"github.com/examdrill/examdrill/internal/bank"
)

// ReviewFilter narrows the review list to one outcome category.
type ReviewFilter string

const (
	FilterAll     ReviewFilter = "all"
	FilterMissed  ReviewFilter = "missed"
	FilterFlagged ReviewFilter = "flagged"
	FilterCorrect ReviewFilter = "correct"
	FilterBlank   ReviewFilter = "blank"
)

// ReviewFilters lists the filters in cycling order.
var ReviewFilters = []ReviewFilter{FilterAll, FilterMissed, FilterFlagged, FilterCorrect, FilterBlank}

// ReviewItem pairs a question with its finish-time result and flag
// state for display.
type ReviewItem struct {
	Question *bank.Question
	Result   *Result
	Flagged  bool
}

// Review produces the ordered subsequence of the session's questions
// matching both the free-text query (case-insensitive, over question
// and choice texts) and the categorical filter. Order follows
// QuestionIDs.
func (s *Session) Review(b *bank.Bank, flagged map[int]bool, query string, filter ReviewFilter) []ReviewItem {
	byID := make(map[int]*Result, len(s.LastResults))
	for i := range s.LastResults {
		byID[s.LastResults[i].ID] = &s.LastResults[i]
	}

	query = strings.ToLower(strings.TrimSpace(query))

	var items []ReviewItem
	for _, id := range s.QuestionIDs {
		q := b.ByID(id)
		if q == nil {
			continue
		}
		r := byID[id]

		if query != "" {
			text := strings.ToLower(q.Question + " " + strings.Join(q.Choices, " "))
			if !strings.Contains(text, query) {
				continue
			}
		}

		switch filter {
		case FilterMissed:
			if r == nil || r.Correct {
				continue
			}
		case FilterFlagged:
			if !flagged[id] {
				continue
			}
		case FilterCorrect:
			if r == nil || !r.Correct {
				continue
			}
		case FilterBlank:
			if r == nil || !r.Blank {
				continue
			}
		}

		items = append(items, ReviewItem{Question: q, Result: r, Flagged: flagged[id]})
	}
	return items
}
