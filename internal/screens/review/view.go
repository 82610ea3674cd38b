package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/examdrill/examdrill/internal/quiz"
	"github.com/examdrill/examdrill/internal/ui/theme"
)

func (r *ReviewScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(r.renderSummary() + "\n")
	b.WriteString(r.renderControls() + "\n\n")

	if len(r.items) == 0 {
		b.WriteString(theme.Hint.Render("No questions match."))
		if r.errMsg != "" {
			b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(r.errMsg))
		}
		return b.String()
	}

	// Three lines per entry; keep the cursor inside the window.
	used := lipgloss.Height(b.String())
	visible := (height - used - 2) / 3
	if visible < 1 {
		visible = 1
	}
	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	if r.cursor >= r.offset+visible {
		r.offset = r.cursor - visible + 1
	}

	end := r.offset + visible
	if end > len(r.items) {
		end = len(r.items)
	}
	for i := r.offset; i < end; i++ {
		b.WriteString(r.renderItem(i, width) + "\n")
	}

	if end < len(r.items) || r.offset > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d–%d of %d", r.offset+1, end, len(r.items))))
	}
	if r.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(r.errMsg))
	}

	return b.String()
}

func (r *ReviewScreen) renderSummary() string {
	verdict := theme.Correct.Render("PASS")
	if !r.summary.Passed {
		verdict = theme.Incorrect.Render("FAIL")
	}

	line := fmt.Sprintf("%s  %s  %s",
		theme.Title.Render(fmt.Sprintf("%d%%", r.summary.Percent)),
		verdict,
		theme.Hint.Render(fmt.Sprintf("(threshold %d%%)", r.summary.Threshold)))

	counts := fmt.Sprintf("%s   %s   %s",
		theme.Correct.Render(fmt.Sprintf("✓ %d correct", r.summary.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("✗ %d incorrect", r.summary.Incorrect)),
		lipgloss.NewStyle().Foreground(theme.Warning).Render(fmt.Sprintf("○ %d blank", r.summary.Blank)))

	out := line + "\n" + counts
	if r.timedOut {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render("⏱ Time expired")
	}
	return out
}

func (r *ReviewScreen) renderControls() string {
	var tabs []string
	for i, f := range quiz.ReviewFilters {
		label := string(f)
		if i == r.filterIdx {
			tabs = append(tabs, theme.Selected.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.Hint.Render(" "+label+" "))
		}
	}

	search := theme.Hint.Render("/ search")
	if r.search.Focused() || r.search.Value() != "" {
		search = r.search.View()
	}

	return strings.Join(tabs, " ") + "   " + search
}

func (r *ReviewScreen) renderItem(i, width int) string {
	item := r.items[i]
	q := item.Question

	marker := lipgloss.NewStyle().Foreground(theme.TextDim).Render("·")
	if item.Result != nil {
		switch {
		case item.Result.Correct:
			marker = theme.Correct.Render("✓")
		case item.Result.Blank:
			marker = lipgloss.NewStyle().Foreground(theme.Warning).Render("○")
		default:
			marker = theme.Incorrect.Render("✗")
		}
	}

	flag := " "
	if item.Flagged {
		flag = lipgloss.NewStyle().Foreground(theme.Accent).Render("⚑")
	}

	prefix := "  "
	titleStyle := theme.Unselected
	if i == r.cursor {
		prefix = "▸ "
		titleStyle = theme.Selected
	}

	text := q.Question
	if maxLen := width - 12; maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen-1] + "…"
	}
	head := fmt.Sprintf("%s%s %s #%d %s", prefix, marker, flag, q.ID, titleStyle.Render(text))

	detail := r.renderDetail(item)
	return head + "\n" + detail + "\n"
}

// renderDetail shows chosen-vs-correct letters for the item, using the
// display lettering the question had during the session.
func (r *ReviewScreen) renderDetail(item quiz.ReviewItem) string {
	q := item.Question
	correct := strings.Join(r.sess.DisplayLetters(q.ID, q.Correct), ", ")

	if item.Result == nil || item.Result.Blank {
		return theme.Hint.Render(fmt.Sprintf("      not answered · answer: %s", correct))
	}
	chosen := strings.Join(r.sess.DisplayLetters(q.ID, item.Result.Chosen), ", ")
	if item.Result.Correct {
		return theme.Hint.Render(fmt.Sprintf("      answered: %s", chosen))
	}
	return theme.Hint.Render(fmt.Sprintf("      answered: %s · correct: %s", chosen, correct))
}
