package drill

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/examdrill/examdrill/internal/bank"
	"github.com/examdrill/examdrill/internal/quiz"
	"github.com/examdrill/examdrill/internal/router"
	"github.com/examdrill/examdrill/internal/screen"
	"github.com/examdrill/examdrill/internal/screens/review"
	"github.com/examdrill/examdrill/internal/store"
	"github.com/examdrill/examdrill/internal/ui/components"
	"github.com/examdrill/examdrill/internal/ui/layout"
)

// autosaveEverySec is the exam-mode autosave cadence, counted in clock
// ticks.
const autosaveEverySec = 5

// DrillScreen runs one quiz attempt, question by question. It owns the
// session while active and persists it on pause, autosave, and finish.
type DrillScreen struct {
	bank      *bank.Bank
	sessions  store.SessionRepo
	missed    store.SetRepo
	flagged   store.SetRepo
	threshold int

	sess       *quiz.Session
	flaggedSet map[int]bool

	choices    components.ChoiceList
	saveStatus string

	// timerGen invalidates in-flight ticks after a pause or finish.
	timerGen int
	timerOn  bool
	finished bool
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a drill screen over an existing session (fresh or
// resumed).
func New(b *bank.Bank, sessions store.SessionRepo, missed, flagged store.SetRepo, threshold int, sess *quiz.Session) *DrillScreen {
	d := &DrillScreen{
		bank:      b,
		sessions:  sessions,
		missed:    missed,
		flagged:   flagged,
		threshold: threshold,
		sess:      sess,
	}
	if set, err := flagged.Load(context.Background()); err == nil {
		d.flaggedSet = set
	} else {
		d.flaggedSet = make(map[int]bool)
	}
	d.loadCurrent()
	return d
}

func (d *DrillScreen) Init() tea.Cmd {
	if d.sess.Exam != nil && d.sess.Exam.RemainingSec > 0 {
		d.timerOn = true
		d.timerGen++
		return tickCmd(d.timerGen)
	}
	return nil
}

func (d *DrillScreen) Title() string {
	if d.sess.Mode == quiz.ModeExam {
		return "Exam"
	}
	return "Practice"
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Space", Description: "Select"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "F", Description: "Flag"},
	}
	if d.sess.Mode == quiz.ModePractice {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Reveal"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Pause"})
	return hints
}

// current returns the question under the cursor. A nil return means
// the bank changed underneath a resumed session.
func (d *DrillScreen) current() *bank.Question {
	return d.bank.ByID(d.sess.CurrentID())
}

// loadCurrent rebuilds the choice list for the current question,
// fixing its display order on first visit.
func (d *DrillScreen) loadCurrent() {
	q := d.current()
	if q == nil {
		d.choices = components.ChoiceList{}
		return
	}
	order := d.sess.EnsureChoiceOrder(q)
	d.choices = components.NewChoiceList(q.Choices, order, q.Multi)
	d.syncChoiceState(q)
}

// syncChoiceState copies session answer state into the render
// component.
func (d *DrillScreen) syncChoiceState(q *bank.Question) {
	chosen := make(map[int]bool)
	for _, c := range d.sess.ChosenFor(q.ID) {
		chosen[c] = true
	}
	correct := make(map[int]bool)
	for _, c := range q.Correct {
		correct[c] = true
	}
	d.choices.Chosen = chosen
	d.choices.Correct = correct
	d.choices.ShowAnswer = d.showFeedback(q)
}

// showFeedback reports whether the current question is in feedback
// state: practice mode only, after an answer or an explicit reveal.
func (d *DrillScreen) showFeedback(q *bank.Question) bool {
	if d.sess.Mode != quiz.ModePractice {
		return false
	}
	return d.sess.IsRevealed(q.ID) || len(d.sess.ChosenFor(q.ID)) > 0
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return d.handleTick(msg)
	case finishMsg:
		return d.finish(msg.timedOut)
	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DrillScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if !d.timerOn || msg.gen != d.timerGen || d.sess.Exam == nil {
		return d, nil
	}

	d.sess.Exam.RemainingSec--
	if d.sess.Exam.RemainingSec <= 0 {
		d.sess.Exam.RemainingSec = 0
		d.timerOn = false
		return d, func() tea.Msg { return finishMsg{timedOut: true} }
	}

	elapsed := d.sess.Exam.DurationSec - d.sess.Exam.RemainingSec
	if elapsed%autosaveEverySec == 0 {
		d.persist("Autosaved")
	}
	return d, tickCmd(d.timerGen)
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if d.finished {
		return d, nil
	}
	q := d.current()
	if q == nil {
		if msg.String() == "esc" {
			return d.pause()
		}
		return d, nil
	}

	switch key := msg.String(); key {
	case "esc":
		return d.pause()

	case "up", "k", "down", "j":
		var cmd tea.Cmd
		d.choices, cmd = d.choices.Update(msg)
		return d, cmd

	case "enter", "right", "n":
		if d.sess.AtLast() {
			return d.finish(false)
		}
		d.sess.Goto(1)
		d.loadCurrent()
		d.saveStatus = ""

	case "left", "p":
		d.sess.Goto(-1)
		d.loadCurrent()
		d.saveStatus = ""

	case "space", " ":
		d.selectChoice(q, d.choices.CursorCanonical())

	case "r":
		if d.sess.Mode == quiz.ModePractice && !d.sess.IsRevealed(q.ID) {
			d.sess.MarkRevealed(q.ID)
			d.syncChoiceState(q)
			d.persist("")
		}

	case "f":
		d.toggleFlag(q.ID)

	default:
		// Number keys select by display position.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			pos := int(key[0] - '1')
			if canonical := d.choices.CanonicalAt(pos); canonical >= 0 {
				d.selectChoice(q, canonical)
			}
		}
	}

	return d, nil
}

// selectChoice records a selection. Answers stay editable until the
// session is finished; practice feedback simply re-renders.
func (d *DrillScreen) selectChoice(q *bank.Question, canonical int) {
	if canonical < 0 {
		return
	}
	d.sess.SelectChoice(q, canonical)
	d.syncChoiceState(q)
	d.persist("Saved")
}

func (d *DrillScreen) toggleFlag(id int) {
	d.flaggedSet[id] = !d.flaggedSet[id]
	if !d.flaggedSet[id] {
		delete(d.flaggedSet, id)
	}
	if err := d.flagged.Save(context.Background(), d.flaggedSet); err != nil {
		d.saveStatus = fmt.Sprintf("flag save failed: %v", err)
	}
}

// persist writes the session to the store and records a status line.
// An empty status keeps the current one.
func (d *DrillScreen) persist(status string) {
	d.sess.Touch()
	if err := d.sessions.Save(context.Background(), d.sess); err != nil {
		d.saveStatus = fmt.Sprintf("save failed: %v", err)
		return
	}
	if status != "" {
		d.saveStatus = status
	}
}

// pause stops the clock, persists, and returns to setup. The saved
// record makes the attempt resumable.
func (d *DrillScreen) pause() (screen.Screen, tea.Cmd) {
	d.timerOn = false
	d.timerGen++
	d.persist("Paused")
	return d, func() tea.Msg { return router.PopScreenMsg{} }
}

// finish scores the session, merges the missed ids into the durable
// missed set, and replaces this screen with the review. Idempotent:
// a key race after a time-out cannot score twice.
func (d *DrillScreen) finish(timedOut bool) (screen.Screen, tea.Cmd) {
	if d.finished {
		return d, nil
	}
	d.finished = true
	d.timerOn = false
	d.timerGen++

	ctx := context.Background()
	_, missedIDs := d.sess.Finish(d.bank, d.threshold)

	if len(missedIDs) > 0 {
		set, err := d.missed.Load(ctx)
		if err != nil {
			set = make(map[int]bool)
		}
		for _, id := range missedIDs {
			set[id] = true
		}
		if err := d.missed.Save(ctx, set); err != nil {
			d.saveStatus = fmt.Sprintf("missed save failed: %v", err)
		}
	}

	d.persist("Finished")

	next := review.New(d.bank, d.sessions, d.missed, d.flagged, d.threshold, d.sess, timedOut, d.restart)
	return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// restart is handed to the review screen so it can launch follow-up
// drills without importing this package.
func (d *DrillScreen) restart(sess *quiz.Session) screen.Screen {
	return New(d.bank, d.sessions, d.missed, d.flagged, d.threshold, sess)
}
