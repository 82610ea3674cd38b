package setup

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/examdrill/examdrill/internal/bank"
	"github.com/examdrill/examdrill/internal/quiz"
	"github.com/examdrill/examdrill/internal/router"
	"github.com/examdrill/examdrill/internal/screen"
	"github.com/examdrill/examdrill/internal/screens/drill"
	"github.com/examdrill/examdrill/internal/screens/review"
	"github.com/examdrill/examdrill/internal/store"
	"github.com/examdrill/examdrill/internal/ui/components"
	"github.com/examdrill/examdrill/internal/ui/layout"
)

// Form rows, top to bottom.
const (
	rowMode = iota
	rowCount
	rowShuffle
	rowShuffleChoices
	rowExplanation
	rowExamMinutes
	rowStart
	rowResume
	rowReset
	rowEnd // sentinel
)

// countCustom lets the user type an exact question count.
const countCustom = "custom"

var countModes = []string{quiz.CountAll, "10", "25", "50", countCustom, quiz.CountMissed, quiz.CountFlagged}

var examMinuteChoices = []int{15, 30, 60, 90, 120}

// SetupScreen is the initial screen: session settings plus the
// start / resume / reset actions.
type SetupScreen struct {
	bank      *bank.Bank
	sessions  store.SessionRepo
	missed    store.SetRepo
	flagged   store.SetRepo
	threshold int

	cursor          int
	mode            quiz.Mode
	countIdx        int
	countInput      components.TextInput
	shuffle         bool
	shuffleChoices  bool
	showExplanation bool
	examIdx         int

	// saved is the persisted session available for resume, if any.
	saved        *quiz.Session
	confirmReset bool
	errMsg       string
	infoMsg      string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen and probes the store for a resumable
// session.
func New(b *bank.Bank, sessions store.SessionRepo, missed, flagged store.SetRepo, threshold int) *SetupScreen {
	s := &SetupScreen{
		bank:            b,
		sessions:        sessions,
		missed:          missed,
		flagged:         flagged,
		threshold:       threshold,
		mode:            quiz.ModePractice,
		countInput:      components.NewTextInput("count", true, 4),
		showExplanation: true,
		examIdx:         2, // 60 minutes
	}
	// The input stays focused; handleKey gates which keys reach it.
	s.countInput.Focus()
	s.reloadSaved()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Erase everything"},
			{Key: "N", Description: "Keep data"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// reloadSaved refreshes the resume state from the store.
func (s *SetupScreen) reloadSaved() {
	saved, err := s.sessions.Load(context.Background())
	if err != nil {
		s.saved = nil
		return
	}
	s.saved = saved
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ActivatedMsg:
		// A quiz was paused or a review closed; resume state may have changed.
		s.reloadSaved()
		s.errMsg = ""
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			s.resetAll()
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}

	s.errMsg = ""
	s.infoMsg = ""

	// Digits and backspace edit the custom count while it is selected.
	if s.cursor == rowCount && s.customCount() {
		if key == "backspace" || (len(key) == 1 && key[0] >= '0' && key[0] <= '9') {
			var cmd tea.Cmd
			s.countInput, cmd = s.countInput.Update(msg)
			return s, cmd
		}
	}

	switch key {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "left", "h":
		s.adjust(-1)
	case "right", "l":
		s.adjust(1)
	case "space", " ":
		s.adjust(1)
	case "enter":
		return s.activate()
	}

	return s, nil
}

// moveCursor steps the cursor, skipping rows that are hidden or
// disabled: the time-limit row outside exam mode and the resume row
// when there is nothing to resume.
func (s *SetupScreen) moveCursor(delta int) {
	for i := s.cursor + delta; i >= 0 && i < rowEnd; i += delta {
		if i == rowExamMinutes && s.mode != quiz.ModeExam {
			continue
		}
		if i == rowResume && s.saved == nil {
			continue
		}
		s.cursor = i
		return
	}
}

// adjust changes the value of the focused settings row.
func (s *SetupScreen) adjust(delta int) {
	switch s.cursor {
	case rowMode:
		if s.mode == quiz.ModePractice {
			s.mode = quiz.ModeExam
		} else {
			s.mode = quiz.ModePractice
		}
	case rowCount:
		s.countIdx = wrap(s.countIdx+delta, len(countModes))
	case rowShuffle:
		s.shuffle = !s.shuffle
	case rowShuffleChoices:
		s.shuffleChoices = !s.shuffleChoices
	case rowExplanation:
		s.showExplanation = !s.showExplanation
	case rowExamMinutes:
		s.examIdx = wrap(s.examIdx+delta, len(examMinuteChoices))
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// activate runs the action row under the cursor; on settings rows it
// toggles instead.
func (s *SetupScreen) activate() (screen.Screen, tea.Cmd) {
	switch s.cursor {
	case rowStart:
		return s.start()
	case rowResume:
		return s.resume()
	case rowReset:
		s.confirmReset = true
		return s, nil
	default:
		s.adjust(1)
		return s, nil
	}
}

// customCount reports whether the count row is in free-entry mode.
func (s *SetupScreen) customCount() bool {
	return countModes[s.countIdx] == countCustom
}

// settings assembles the Settings record from the form state.
func (s *SetupScreen) settings() quiz.Settings {
	countMode := countModes[s.countIdx]
	if countMode == countCustom {
		countMode = s.countInput.Value()
	}
	return quiz.Settings{
		Mode:            s.mode,
		CountMode:       countMode,
		Shuffle:         s.shuffle,
		ShuffleChoices:  s.shuffleChoices,
		ShowExplanation: s.showExplanation,
		ExamMinutes:     examMinuteChoices[s.examIdx],
	}
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	settings := s.settings()

	missedSet, err := s.missed.Load(ctx)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	flaggedSet, err := s.flagged.Load(ctx)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	pool, err := quiz.BuildPool(s.bank, settings, missedSet, flaggedSet)
	if errors.Is(err, quiz.ErrEmptyPool) {
		s.errMsg = "No questions found for that set yet. Try answering a few questions first."
		return s, nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	sess := quiz.New(settings, pool, s.bank.Len())
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.errMsg = fmt.Sprintf("save session: %v", err)
		return s, nil
	}

	next := drill.New(s.bank, s.sessions, s.missed, s.flagged, s.threshold, sess)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) resume() (screen.Screen, tea.Cmd) {
	sess, err := s.sessions.Load(context.Background())
	if errors.Is(err, store.ErrNotFound) {
		s.saved = nil
		s.errMsg = "No saved session to resume."
		return s, nil
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	// A finished record reopens its review instead of the quiz.
	var next screen.Screen
	if sess.Finished() {
		next = review.New(s.bank, s.sessions, s.missed, s.flagged, s.threshold, sess, false,
			func(followUp *quiz.Session) screen.Screen {
				return drill.New(s.bank, s.sessions, s.missed, s.flagged, s.threshold, followUp)
			})
	} else {
		next = drill.New(s.bank, s.sessions, s.missed, s.flagged, s.threshold, sess)
	}
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// resetAll irrecoverably clears the session and both persistent sets.
func (s *SetupScreen) resetAll() {
	ctx := context.Background()
	for _, clear := range []func(context.Context) error{
		s.sessions.Clear, s.missed.Clear, s.flagged.Clear,
	} {
		if err := clear(ctx); err != nil {
			s.errMsg = fmt.Sprintf("reset: %v", err)
			return
		}
	}
	s.saved = nil
	s.infoMsg = "Reset complete."
}

// countLabel renders a count mode for display.
func countLabel(mode string) string {
	switch mode {
	case quiz.CountAll:
		return "All questions"
	case quiz.CountMissed:
		return "Missed only"
	case quiz.CountFlagged:
		return "Flagged only"
	default:
		if n, err := strconv.Atoi(mode); err == nil {
			return fmt.Sprintf("%d questions", n)
		}
		return mode
	}
}
