package quiz

import (
	"testing"

	"github.com/examdrill/examdrill/internal/bank"
)

func reviewFixture(t *testing.T) (*bank.Bank, *Session, map[int]bool) {
	t.Helper()
	b := bank.New([]bank.Question{
		{ID: 1, Question: "What gauge wire for a 20A circuit?", Choices: []string{"14 AWG", "12 AWG"}, Correct: []int{1}},
		{ID: 2, Question: "Minimum footing depth?", Choices: []string{"6 in", "12 in"}, Correct: []int{1}},
		{ID: 3, Question: "Stair riser height limit?", Choices: []string{"7.75 in", "9 in"}, Correct: []int{0}},
	})
	s := New(Settings{Mode: ModeExam, CountMode: CountAll}, []int{1, 2, 3}, 3)
	s.Answers[1] = []int{1} // correct
	s.Answers[2] = []int{0} // incorrect
	// 3 blank
	s.Finish(b, DefaultPassThreshold)

	flagged := map[int]bool{3: true}
	return b, s, flagged
}

func TestReview_FilterCategories(t *testing.T) {
	b, s, flagged := reviewFixture(t)

	tests := []struct {
		filter  ReviewFilter
		wantIDs []int
	}{
		{FilterAll, []int{1, 2, 3}},
		{FilterMissed, []int{2, 3}}, // incorrect and blank both count as missed
		{FilterCorrect, []int{1}},
		{FilterBlank, []int{3}},
		{FilterFlagged, []int{3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			items := s.Review(b, flagged, "", tt.filter)
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantIDs))
			}
			for i, item := range items {
				if item.Question.ID != tt.wantIDs[i] {
					t.Errorf("item %d = question %d, want %d", i, item.Question.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestReview_QueryMatchesQuestionAndChoices(t *testing.T) {
	b, s, flagged := reviewFixture(t)

	// Case-insensitive match on question text.
	items := s.Review(b, flagged, "FOOTING", FilterAll)
	if len(items) != 1 || items[0].Question.ID != 2 {
		t.Errorf("query footing: got %v items", len(items))
	}

	// Match on a choice text.
	items = s.Review(b, flagged, "12 awg", FilterAll)
	if len(items) != 1 || items[0].Question.ID != 1 {
		t.Errorf("query choice text: got %v items", len(items))
	}

	// Query and filter compose.
	items = s.Review(b, flagged, "stair", FilterCorrect)
	if len(items) != 0 {
		t.Errorf("stair is not correct, got %d items", len(items))
	}
}

func TestReview_PreservesSessionOrder(t *testing.T) {
	b, s, _ := reviewFixture(t)
	items := s.Review(b, nil, "", FilterAll)
	for i, item := range items {
		if item.Question.ID != s.QuestionIDs[i] {
			t.Fatalf("review order diverges from session order at %d", i)
		}
	}
}
