package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/examdrill/examdrill/internal/ui/theme"
)

// ChoiceList renders a question's choices in their fixed display
// order and tracks the highlight cursor. Selection state lives in the
// session; the component only receives it for rendering.
type ChoiceList struct {
	// Choices holds the option texts in canonical order.
	Choices []string
	// Order maps display position to canonical index.
	Order []int
	// Chosen is the set of selected canonical indices.
	Chosen map[int]bool
	// Correct is the set of correct canonical indices, consulted only
	// when ShowAnswer is set.
	Correct map[int]bool
	// Multi switches the markers from radio to checkbox style.
	Multi bool
	// ShowAnswer colors correct/incorrect choices (feedback state).
	ShowAnswer bool
	// Cursor is the highlighted display position.
	Cursor int
}

// NewChoiceList creates a choice list over the given display order.
func NewChoiceList(choices []string, order []int, multi bool) ChoiceList {
	return ChoiceList{
		Choices: choices,
		Order:   order,
		Chosen:  make(map[int]bool),
		Correct: make(map[int]bool),
		Multi:   multi,
	}
}

// CanonicalAt returns the canonical index shown at a display
// position, or -1 if the position is out of range.
func (c ChoiceList) CanonicalAt(pos int) int {
	if pos < 0 || pos >= len(c.Order) {
		return -1
	}
	return c.Order[pos]
}

// CursorCanonical returns the canonical index under the cursor.
func (c ChoiceList) CursorCanonical() int {
	return c.CanonicalAt(c.Cursor)
}

// Update moves the cursor on up/down keys.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Order)-1 {
			c.Cursor++
		}
	}

	return c, nil
}

// View renders the choices with letters, selection markers, and — in
// feedback state — correct/incorrect coloring.
func (c ChoiceList) View() string {
	var s string
	for pos, canonical := range c.Order {
		letter := string(rune('A' + pos))
		text := ""
		if canonical >= 0 && canonical < len(c.Choices) {
			text = c.Choices[canonical]
		}

		marker := "( )"
		if c.Multi {
			marker = "[ ]"
		}
		if c.Chosen[canonical] {
			marker = "(•)"
			if c.Multi {
				marker = "[x]"
			}
		}

		prefix := "  "
		if pos == c.Cursor && !c.ShowAnswer {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, letter, text)

		var style lipgloss.Style
		switch {
		case c.ShowAnswer && c.Correct[canonical]:
			style = theme.Correct
		case c.ShowAnswer && c.Chosen[canonical]:
			style = theme.Incorrect
		case c.ShowAnswer:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case c.Chosen[canonical]:
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		case pos == c.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}

		s += style.Render(line) + "\n"
	}
	return s
}
