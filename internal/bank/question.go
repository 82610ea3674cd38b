package bank

import "fmt"

// Question is a single immutable entry in the question bank.
//
// Choices are stored in canonical order; Correct holds canonical
// indices into Choices. Display shuffling never touches these — it is
// tracked per session as a canonical→position mapping.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Correct     []int    `json:"correct"`
	Multi       bool     `json:"multi,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Validate checks the structural invariants of a single question.
func (q *Question) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question %d: empty question text", q.ID)
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("question %d: needs at least 2 choices, has %d", q.ID, len(q.Choices))
	}
	if len(q.Correct) == 0 {
		return fmt.Errorf("question %d: no correct choices", q.ID)
	}
	seen := make(map[int]bool, len(q.Correct))
	for _, c := range q.Correct {
		if c < 0 || c >= len(q.Choices) {
			return fmt.Errorf("question %d: correct index %d out of range [0,%d)", q.ID, c, len(q.Choices))
		}
		if seen[c] {
			return fmt.Errorf("question %d: duplicate correct index %d", q.ID, c)
		}
		seen[c] = true
	}
	if !q.Multi && len(q.Correct) != 1 {
		return fmt.Errorf("question %d: single-answer question lists %d correct choices", q.ID, len(q.Correct))
	}
	return nil
}

// IsCorrectSet reports whether chosen exactly matches the correct set.
// Order of the chosen indices is irrelevant; no partial credit.
func (q *Question) IsCorrectSet(chosen []int) bool {
	if len(chosen) != len(q.Correct) {
		return false
	}
	correct := make(map[int]bool, len(q.Correct))
	for _, c := range q.Correct {
		correct[c] = true
	}
	for _, c := range chosen {
		if !correct[c] {
			return false
		}
	}
	return true
}
