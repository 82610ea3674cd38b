package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/examdrill/examdrill/internal/bank"
	"github.com/examdrill/examdrill/internal/ui/components"
	"github.com/examdrill/examdrill/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	q := d.current()
	if q == nil {
		return theme.Hint.Render("This question is no longer in the question file. Press Esc to go back.")
	}

	var b strings.Builder

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", d.sess.Index+1, d.sess.Len()),
		float64(d.sess.Index+1)/float64(d.sess.Len()),
		false,
		width-4,
	)
	b.WriteString(progress.View() + "\n")

	var statusParts []string
	if d.sess.Exam != nil {
		statusParts = append(statusParts, d.renderTimer())
	}
	if d.flaggedSet[q.ID] {
		statusParts = append(statusParts, lipgloss.NewStyle().Foreground(theme.Accent).Render("⚑ flagged"))
	}
	if n := len(d.flaggedSet); n > 0 {
		statusParts = append(statusParts, theme.Hint.Render(fmt.Sprintf("⚑ %d total", n)))
	}
	statusParts = append(statusParts, theme.Hint.Render(fmt.Sprintf("#%d", q.ID)))
	b.WriteString(strings.Join(statusParts, "   ") + "\n\n")

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 4).
		Render(q.Question)
	b.WriteString(question + "\n")

	if q.Multi {
		b.WriteString(theme.Hint.Render("Select all that apply.") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(d.choices.View())

	if d.showFeedback(q) {
		b.WriteString("\n" + d.renderFeedback(q, width))
	}

	if d.saveStatus != "" {
		b.WriteString("\n" + theme.Hint.Render(d.saveStatus))
	}

	return b.String()
}

// renderTimer formats the exam countdown, turning red in the final
// minute.
func (d *DrillScreen) renderTimer() string {
	sec := d.sess.Exam.RemainingSec
	text := fmt.Sprintf("⏱ %02d:%02d", sec/60, sec%60)
	if sec <= 60 {
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(text)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
}

// renderFeedback shows the verdict line and, when enabled, the
// explanation under the choices in practice mode.
func (d *DrillScreen) renderFeedback(q *bank.Question, width int) string {
	chosen := d.sess.ChosenFor(q.ID)

	var verdict string
	switch {
	case len(chosen) == 0:
		letters := strings.Join(d.sess.DisplayLetters(q.ID, q.Correct), ", ")
		verdict = lipgloss.NewStyle().Foreground(theme.Warning).Render("Answer: " + letters)
	case q.IsCorrectSet(chosen):
		verdict = theme.Correct.Render("✓ Correct")
	default:
		letters := strings.Join(d.sess.DisplayLetters(q.ID, q.Correct), ", ")
		verdict = theme.Incorrect.Render("✗ Incorrect") +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("  (answer: "+letters+")")
	}

	out := verdict
	if d.sess.Settings.ShowExplanation && q.Explanation != "" {
		out += "\n" + theme.Hint.Width(width-4).Render(q.Explanation)
	}
	return out
}
