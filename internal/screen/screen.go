package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/examdrill/examdrill/internal/ui/layout"
)

// Screen is the interface every application screen implements. The
// router owns a stack of these; only the top one receives messages.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen plus a command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen supply custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ActivatedMsg is delivered to a screen when it becomes the active
// screen again after the one above it was popped or replaced. Screens
// use it to re-read persisted state (e.g. resume availability).
type ActivatedMsg struct{}
