package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizdrill/quizdrill/internal/router"
	"github.com/quizdrill/quizdrill/internal/screen"
	"github.com/quizdrill/quizdrill/internal/ui/components"
	"github.com/quizdrill/quizdrill/internal/ui/layout"
	"github.com/quizdrill/quizdrill/internal/ui/theme"
)

// RoundStats carries the tallies of a finished or abandoned round.
type RoundStats struct {
	RoundSize int
	Answered  int
	Correct   int
	Wrong     int
	Filter    string
	Completed bool
}

// Accuracy returns the share of answered questions graded correct.
func (r RoundStats) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

// SummaryScreen displays the tallies at the end of a round.
type SummaryScreen struct {
	stats RoundStats
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(stats RoundStats) *SummaryScreen {
	return &SummaryScreen{stats: stats}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.stats

	var b strings.Builder
	b.WriteString("\n")

	headline := "Round complete!"
	if !st.Completed {
		headline = "Round ended early"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(st.Filter))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("Answered  %d of %d", st.Answered, st.RoundSize)))
	card.WriteString("\n\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d correct", st.Correct)))
	card.WriteString("    ")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d wrong", st.Wrong)))
	card.WriteString("\n\n")
	card.WriteString(lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("Accuracy %.0f%%", st.Accuracy()*100)))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(card.String(), cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to return home"))

	return b.String()
}
