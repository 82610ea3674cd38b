package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/examdrill/examdrill/internal/bank"
)

// SessionVersion is stamped on persisted session records.
const SessionVersion = 1

// Mode selects the feedback policy of a session.
type Mode string

const (
	// ModePractice gives instant feedback after every selection.
	ModePractice Mode = "practice"
	// ModeExam defers all feedback to the end and runs a countdown.
	ModeExam Mode = "exam"
)

// Settings are the options chosen on the setup screen. They are fixed
// for the lifetime of the session.
type Settings struct {
	Mode            Mode   `json:"mode"`
	CountMode       string `json:"countMode"` // "all", "missed", "flagged", or a number
	Shuffle         bool   `json:"shuffle"`
	ShuffleChoices  bool   `json:"shuffleChoices"`
	ShowExplanation bool   `json:"showExplanation"`
	ExamMinutes     int    `json:"examMinutes"`
}

// ExamClock tracks the exam countdown. Present only in exam mode.
type ExamClock struct {
	DurationSec  int `json:"durationSec"`
	RemainingSec int `json:"remainingSec"`
}

// Result records one question's outcome at finish time, kept on the
// session so the review list never has to re-score.
type Result struct {
	ID      int   `json:"id"`
	Correct bool  `json:"isCorrect"`
	Blank   bool  `json:"isBlank"`
	Chosen  []int `json:"chosen"`
}

// Session is the full mutable state of one quiz attempt. It is the
// unit of persistence: the store holds at most one session record,
// superseded whole by the next start.
type Session struct {
	Version     int       `json:"version"`
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	SourceTotal int       `json:"sourceTotal"`

	Mode     Mode     `json:"mode"`
	Settings Settings `json:"settings"`

	// QuestionIDs is the ordered pool for this attempt, fixed at start.
	QuestionIDs []int `json:"questionIds"`
	// Index is the current position into QuestionIDs.
	Index int `json:"index"`

	// Answers maps question id to chosen canonical indices.
	Answers map[int][]int `json:"answers"`
	// Revealed marks questions whose answer was shown in practice mode.
	Revealed map[int]bool `json:"revealed"`
	// ChoiceOrder maps question id to its display order: the slice
	// index is the on-screen position, the value the canonical choice
	// index. Assigned on first render, stable for the whole session.
	ChoiceOrder map[int][]int `json:"choiceOrder"`

	Exam        *ExamClock `json:"exam,omitempty"`
	LastResults []Result   `json:"lastResults,omitempty"`
}

// minExamSec is the floor applied to the exam duration.
const minExamSec = 60

// New creates a session over the given pool. The pool must be
// non-empty; BuildPool guarantees that.
func New(settings Settings, pool []int, sourceTotal int) *Session {
	now := time.Now()
	s := &Session{
		Version:     SessionVersion,
		ID:          uuid.New().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
		SourceTotal: sourceTotal,
		Mode:        settings.Mode,
		Settings:    settings,
		QuestionIDs: pool,
		Answers:     make(map[int][]int),
		Revealed:    make(map[int]bool),
		ChoiceOrder: make(map[int][]int),
	}
	if settings.Mode == ModeExam {
		sec := settings.ExamMinutes * 60
		if sec < minExamSec {
			sec = minExamSec
		}
		s.Exam = &ExamClock{DurationSec: sec, RemainingSec: sec}
	}
	return s
}

// Backfill defaults optional maps that may be absent from an older
// persisted record, so resume stays forward-compatible.
func (s *Session) Backfill() {
	if s.Answers == nil {
		s.Answers = make(map[int][]int)
	}
	if s.Revealed == nil {
		s.Revealed = make(map[int]bool)
	}
	if s.ChoiceOrder == nil {
		s.ChoiceOrder = make(map[int][]int)
	}
}

// Touch updates the record's modification stamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}

// Len returns the number of questions in this attempt.
func (s *Session) Len() int {
	return len(s.QuestionIDs)
}

// CurrentID returns the id of the question at the current index.
func (s *Session) CurrentID() int {
	return s.QuestionIDs[s.Index]
}

// AtLast reports whether the current question is the final one.
func (s *Session) AtLast() bool {
	return s.Index == len(s.QuestionIDs)-1
}

// Goto moves the index by delta, clamped to the valid range.
func (s *Session) Goto(delta int) {
	i := s.Index + delta
	if i < 0 {
		i = 0
	}
	if i > len(s.QuestionIDs)-1 {
		i = len(s.QuestionIDs) - 1
	}
	s.Index = i
}

// EnsureChoiceOrder assigns the display order for q on its first
// render and returns it. Re-visits reuse the stored order so a
// question is never reshuffled within a session.
func (s *Session) EnsureChoiceOrder(q *bank.Question) []int {
	if order, ok := s.ChoiceOrder[q.ID]; ok {
		return order
	}
	order := make([]int, len(q.Choices))
	for i := range order {
		order[i] = i
	}
	if s.Settings.ShuffleChoices {
		shuffleInPlace(order)
	}
	s.ChoiceOrder[q.ID] = order
	return order
}

// SelectChoice records a choice selection for q. Single-answer
// questions replace the whole set; multi-answer questions toggle
// membership of the canonical index.
func (s *Session) SelectChoice(q *bank.Question, canonical int) {
	chosen := s.Answers[q.ID]
	if q.Multi {
		found := false
		next := chosen[:0:0]
		for _, c := range chosen {
			if c == canonical {
				found = true
				continue
			}
			next = append(next, c)
		}
		if !found {
			next = append(next, canonical)
		}
		chosen = next
	} else {
		chosen = []int{canonical}
	}
	s.Answers[q.ID] = chosen
}

// ChosenFor returns the recorded answer set for a question id.
func (s *Session) ChosenFor(id int) []int {
	return s.Answers[id]
}

// MarkRevealed flags a question's answer as shown (practice mode).
func (s *Session) MarkRevealed(id int) {
	s.Revealed[id] = true
}

// IsRevealed reports whether the answer was shown for a question.
func (s *Session) IsRevealed(id int) bool {
	return s.Revealed[id]
}

// DisplayLetter maps a canonical choice index to its display letter
// (A, B, C, ...) through the question's fixed order. Questions that
// were never rendered have no stored order; they letter canonically.
func (s *Session) DisplayLetter(id, canonical int) string {
	order, ok := s.ChoiceOrder[id]
	if !ok {
		if canonical < 0 {
			return "?"
		}
		return string(rune('A' + canonical))
	}
	for pos, c := range order {
		if c == canonical {
			return string(rune('A' + pos))
		}
	}
	return "?"
}

// DisplayLetters maps a set of canonical indices to display letters,
// in display order. Falls back to canonical lettering for questions
// without a stored order.
func (s *Session) DisplayLetters(id int, canonical []int) []string {
	set := make(map[int]bool, len(canonical))
	for _, c := range canonical {
		set[c] = true
	}
	order, ok := s.ChoiceOrder[id]
	if !ok {
		var letters []string
		for _, c := range canonical {
			letters = append(letters, s.DisplayLetter(id, c))
		}
		return letters
	}
	var letters []string
	for pos, c := range order {
		if set[c] {
			letters = append(letters, string(rune('A'+pos)))
		}
	}
	return letters
}
