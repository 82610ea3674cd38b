package review

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/examdrill/examdrill/internal/bank"
	"github.com/examdrill/examdrill/internal/quiz"
	"github.com/examdrill/examdrill/internal/router"
	"github.com/examdrill/examdrill/internal/screen"
	"github.com/examdrill/examdrill/internal/store"
	"github.com/examdrill/examdrill/internal/ui/components"
	"github.com/examdrill/examdrill/internal/ui/layout"
)

// ReviewScreen shows the score summary of a finished session and a
// filterable list of its questions.
type ReviewScreen struct {
	bank      *bank.Bank
	sessions  store.SessionRepo
	missed    store.SetRepo
	flagged   store.SetRepo
	threshold int

	sess     *quiz.Session
	timedOut bool

	// startDrill builds a drill screen for a follow-up session. Injected
	// by the drill package to avoid a screen-package cycle.
	startDrill func(*quiz.Session) screen.Screen

	summary    quiz.Summary
	flaggedSet map[int]bool

	search    components.TextInput
	filterIdx int
	items     []quiz.ReviewItem
	cursor    int
	offset    int
	errMsg    string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates the review screen for a scored session.
func New(b *bank.Bank, sessions store.SessionRepo, missed, flagged store.SetRepo, threshold int, sess *quiz.Session, timedOut bool, startDrill func(*quiz.Session) screen.Screen) *ReviewScreen {
	r := &ReviewScreen{
		bank:       b,
		sessions:   sessions,
		missed:     missed,
		flagged:    flagged,
		threshold:  threshold,
		sess:       sess,
		timedOut:   timedOut,
		startDrill: startDrill,
		summary:    sess.Summarize(threshold),
		search:     components.NewTextInput("search questions", false, 64),
	}
	if set, err := flagged.Load(context.Background()); err == nil {
		r.flaggedSet = set
	} else {
		r.flaggedSet = make(map[int]bool)
	}
	r.refresh()
	return r
}

func (r *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (r *ReviewScreen) Title() string {
	return "Review"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	if r.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel search"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "/", Description: "Search"},
		{Key: "F", Description: "Flag"},
		{Key: "P", Description: "Practice this"},
		{Key: "M", Description: "Drill missed"},
		{Key: "G", Description: "Drill flagged"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ReviewScreen) filter() quiz.ReviewFilter {
	return quiz.ReviewFilters[r.filterIdx]
}

// refresh recomputes the visible list and clamps the cursor.
func (r *ReviewScreen) refresh() {
	r.items = r.sess.Review(r.bank, r.flaggedSet, r.search.Value(), r.filter())
	if r.cursor >= len(r.items) {
		r.cursor = len(r.items) - 1
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
	if r.offset > r.cursor {
		r.offset = r.cursor
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	if r.search.Focused() {
		switch kmsg.String() {
		case "esc", "enter":
			r.search.Blur()
		default:
			var cmd tea.Cmd
			r.search, cmd = r.search.Update(msg)
			r.refresh()
			return r, cmd
		}
		r.refresh()
		return r, nil
	}

	r.errMsg = ""

	switch kmsg.String() {
	case "esc":
		return r, func() tea.Msg { return router.PopScreenMsg{} }

	case "/":
		return r, r.search.Focus()

	case "tab":
		r.filterIdx = (r.filterIdx + 1) % len(quiz.ReviewFilters)
		r.cursor = 0
		r.offset = 0
		r.refresh()

	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}

	case "down", "j":
		if r.cursor < len(r.items)-1 {
			r.cursor++
		}

	case "f":
		r.toggleFlag()

	case "p":
		return r.practiceCurrent()

	case "m":
		return r.drillSet(quiz.CountMissed)

	case "g":
		return r.drillSet(quiz.CountFlagged)
	}

	return r, nil
}

func (r *ReviewScreen) currentItem() *quiz.ReviewItem {
	if r.cursor < 0 || r.cursor >= len(r.items) {
		return nil
	}
	return &r.items[r.cursor]
}

func (r *ReviewScreen) toggleFlag() {
	item := r.currentItem()
	if item == nil {
		return
	}
	id := item.Question.ID
	if r.flaggedSet[id] {
		delete(r.flaggedSet, id)
	} else {
		r.flaggedSet[id] = true
	}
	if err := r.flagged.Save(context.Background(), r.flaggedSet); err != nil {
		r.errMsg = fmt.Sprintf("flag save failed: %v", err)
		return
	}
	r.refresh()
}

// practiceCurrent starts a fresh one-question practice session for the
// question under the cursor, superseding the finished record.
func (r *ReviewScreen) practiceCurrent() (screen.Screen, tea.Cmd) {
	item := r.currentItem()
	if item == nil {
		return r, nil
	}
	settings := quiz.Settings{
		Mode:            quiz.ModePractice,
		CountMode:       quiz.CountAll,
		ShuffleChoices:  true,
		ShowExplanation: true,
	}
	sess := quiz.New(settings, []int{item.Question.ID}, r.bank.Len())
	return r.launch(sess)
}

// drillSet starts a shuffled practice session over the missed or
// flagged set.
func (r *ReviewScreen) drillSet(countMode string) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	missedSet, err := r.missed.Load(ctx)
	if err != nil {
		r.errMsg = err.Error()
		return r, nil
	}

	settings := quiz.Settings{
		Mode:            quiz.ModePractice,
		CountMode:       countMode,
		Shuffle:         true,
		ShuffleChoices:  true,
		ShowExplanation: true,
	}
	pool, err := quiz.BuildPool(r.bank, settings, missedSet, r.flaggedSet)
	if errors.Is(err, quiz.ErrEmptyPool) {
		r.errMsg = "That set is empty."
		return r, nil
	}
	if err != nil {
		r.errMsg = err.Error()
		return r, nil
	}

	return r.launch(quiz.New(settings, pool, r.bank.Len()))
}

// launch persists a new session and replaces the review with its
// drill screen.
func (r *ReviewScreen) launch(sess *quiz.Session) (screen.Screen, tea.Cmd) {
	if err := r.sessions.Save(context.Background(), sess); err != nil {
		r.errMsg = fmt.Sprintf("save session: %v", err)
		return r, nil
	}
	next := r.startDrill(sess)
	return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
