package setup

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/examdrill/examdrill/internal/quiz"
	"github.com/examdrill/examdrill/internal/ui/theme"
)

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Start a session") + "\n\n")

	b.WriteString(s.renderSetting(rowMode, "Mode", modeLabel(s.mode)))
	countValue := countLabel(countModes[s.countIdx])
	if s.customCount() {
		countValue = "custom: " + s.countInput.View()
	}
	b.WriteString(s.renderSetting(rowCount, "Questions", countValue))
	b.WriteString(s.renderSetting(rowShuffle, "Shuffle questions", onOff(s.shuffle)))
	b.WriteString(s.renderSetting(rowShuffleChoices, "Shuffle choices", onOff(s.shuffleChoices)))
	b.WriteString(s.renderSetting(rowExplanation, "Show explanations", onOff(s.showExplanation)))
	if s.mode == quiz.ModeExam {
		b.WriteString(s.renderSetting(rowExamMinutes, "Time limit", fmt.Sprintf("%d min", examMinuteChoices[s.examIdx])))
	}
	b.WriteString("\n")

	b.WriteString(s.renderAction(rowStart, "Start new session", false))
	b.WriteString(s.renderAction(rowResume, s.resumeLabel(), s.saved == nil))
	b.WriteString(s.renderAction(rowReset, "Reset all data", false))

	if s.confirmReset {
		b.WriteString("\n" + theme.Incorrect.Render("Erase the saved session, missed set, and flags? (y/N)") + "\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg) + "\n")
	}
	if s.infoMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Success).Render(s.infoMsg) + "\n")
	}

	return b.String()
}

func (s *SetupScreen) renderSetting(row int, label, value string) string {
	prefix := "  "
	labelStyle := theme.Unselected
	if row == s.cursor {
		prefix = "▸ "
		labelStyle = theme.Selected
	}
	valueStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	line := fmt.Sprintf("%s%s  %s",
		prefix,
		labelStyle.Render(fmt.Sprintf("%-20s", label)),
		valueStyle.Render("‹ "+value+" ›"))
	return line + "\n"
}

func (s *SetupScreen) renderAction(row int, label string, disabled bool) string {
	prefix := "  "
	style := theme.Unselected
	if disabled {
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	} else if row == s.cursor {
		prefix = "▸ "
		style = theme.Selected
	}
	return prefix + style.Render(label) + "\n"
}

// resumeLabel describes the saved session, if any.
func (s *SetupScreen) resumeLabel() string {
	if s.saved == nil {
		return "Resume (no saved session)"
	}
	if s.saved.Finished() {
		return fmt.Sprintf("Review finished %s session (%d questions)",
			s.saved.Mode, s.saved.Len())
	}
	return fmt.Sprintf("Resume %s session (question %d of %d)",
		s.saved.Mode, s.saved.Index+1, s.saved.Len())
}

func modeLabel(m quiz.Mode) string {
	if m == quiz.ModeExam {
		return "Exam"
	}
	return "Practice"
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
