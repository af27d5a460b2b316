package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/sampler"
	"github.com/quizdrill/quizdrill/internal/session"
	"github.com/quizdrill/quizdrill/internal/ui/components"
	"github.com/quizdrill/quizdrill/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.state.Phase() == session.PhaseEmpty {
		return s.renderEmpty(width)
	}
	return s.renderRound(width)
}

// renderRound renders the filter bar, round position, question and answer
// area for the current position.
func (s *StudyScreen) renderRound(width int) string {
	var b strings.Builder

	b.WriteString(s.renderFilterBar(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Position bar with round tallies on the right.
	bar := components.NewProgressBar("Question", s.state.Position+1, len(s.state.Working), min(width-30, 46))
	tallies := lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", s.state.Correct)) +
		"  " +
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d", s.state.Wrong()))

	infoLeft := "  " + bar.View()
	gap := width - lipgloss.Width(infoLeft) - lipgloss.Width(tallies) - 4
	if gap < 1 {
		gap = 1
	}
	b.WriteString(infoLeft + strings.Repeat(" ", gap) + tallies)
	b.WriteString("\n\n")

	q := s.state.Current()

	// Kind label and star marker.
	kindLine := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(q.KindLabel)
	if session.Starred(s.state) {
		kindLine += "  " + theme.Starred.Render("★ starred")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, kindLine))
	b.WriteString("\n\n")

	// Prompt.
	promptStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(promptStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	// Answer area.
	if q.Kind.Choice() {
		list := components.OptionList{
			Options:      q.Options,
			Selected:     s.state.Choice,
			Revealed:     s.state.Revealed,
			CorrectIndex: q.CorrectIndex,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list.View()))
	} else {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
		b.WriteString(answerLine)
	}
	b.WriteString("\n")

	if s.state.Revealed {
		b.WriteString(s.renderFeedback(width, q))
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("progress not saved: " + s.saveErr.Error()))
	}

	return b.String()
}

// renderFilterBar renders the three filter chips. A highlighted chip is one
// that narrows or reorders the round.
func (s *StudyScreen) renderFilterBar(width int) string {
	shuffleLabel := "f · Shuffle off"
	if s.filter.Shuffle {
		shuffleLabel = "f · Shuffle on"
	}

	chips := "  " +
		components.FilterChip("t · "+kindLabel(s.filter.Kind), s.filter.Kind != "") +
		" " +
		components.FilterChip("m · "+s.filter.Mode.Label(), s.filter.Mode != sampler.ModeAll) +
		" " +
		components.FilterChip(shuffleLabel, s.filter.Shuffle)

	return chips
}

// renderFeedback renders the verdict, answer and explanation after reveal.
func (s *StudyScreen) renderFeedback(width int, q *bank.Question) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.state.Result == session.ResultCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		if q.Kind == bank.KindFillBlank {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", q.Answer)))
		}
	}

	if q.Explanation != "" {
		b.WriteString("\n\n")
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		exp := expStyle.Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}

	b.WriteString("\n\n")
	hint := "Press Enter for the next question"
	if s.state.AtEnd() {
		hint = "Press Enter for the round summary"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(hint))

	return b.String()
}

// renderEmpty renders the no-matching-questions state.
func (s *StudyScreen) renderEmpty(width int) string {
	var b strings.Builder

	b.WriteString(s.renderFilterBar(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("No questions match the current filters."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Cycle the type with t, the mode with m, or press Esc to go back."))

	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End this drill early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answers so far are already saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, show the summary"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}
