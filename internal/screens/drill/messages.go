package drill

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg fires once per second while the exam clock runs. The
// generation number lets a paused or finished screen ignore ticks that
// were already in flight.
type timerTickMsg struct {
	gen int
}

// finishMsg requests scoring of the session.
type finishMsg struct {
	timedOut bool
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}
