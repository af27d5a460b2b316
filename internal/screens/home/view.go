package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/progress"
	"github.com/quizdrill/quizdrill/internal/ui/components"
	"github.com/quizdrill/quizdrill/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	switch h.mode {
	case modeStats:
		return h.renderStats(width)
	case modeResetConfirm:
		return renderResetConfirm(width)
	}
	return h.renderMenu(width, height)
}

func (h *HomeScreen) renderMenu(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, h.renderBankCard(cw, compact))
	sections = append(sections, h.renderTotalsLine(width))
	sections = append(sections, components.Card(h.menu.View(), cw))

	if h.flash != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(h.flash))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderBankCard shows the bank meta: title, creator, description, counts.
func (h *HomeScreen) renderBankCard(cw int, compact bool) string {
	meta := h.bank.Meta

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(meta.Title))

	if meta.Creator != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("by " + meta.Creator))
	}

	if !compact && meta.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(cw - 8).
			Foreground(theme.Text).
			Render(meta.Description))
	}

	counts := h.bank.CountByKind()
	var parts []string
	for _, k := range bank.Kinds {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", k.Label(), n))
		}
	}
	if len(parts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(strings.Join(parts, " · ")))
	}

	return components.Card(b.String(), cw)
}

// renderTotalsLine summarizes recorded progress under the bank card.
func (h *HomeScreen) renderTotalsLine(width int) string {
	stats := progress.Aggregate(h.bank, h.store.Snapshot())
	all := stats.All

	line := fmt.Sprintf("Attempted %d of %d", all.Attempted, all.Total)
	if all.Correct+all.Wrong > 0 {
		line += fmt.Sprintf(" · accuracy %.0f%%", all.Accuracy()*100)
	}
	if all.Starred > 0 {
		line += fmt.Sprintf(" · ★ %d starred", all.Starred)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(line)
}

// renderStats shows the per-kind progress table.
func (h *HomeScreen) renderStats(width int) string {
	stats := progress.Aggregate(h.bank, h.store.Snapshot())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Statistics"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-16s %10s %10s %9s %8s %8s",
		"Type", "Questions", "Attempted", "Accuracy", "Review", "Starred")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(header)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", len(header)))))
	b.WriteString("\n")

	for _, row := range stats.Kinds {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(statsRow(row.Kind.Label(), row))))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", len(header)))))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(statsRow("Total", stats.All))))

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to go back"))

	return b.String()
}

func statsRow(label string, row progress.KindStats) string {
	accuracy := "-"
	if row.Correct+row.Wrong > 0 {
		accuracy = fmt.Sprintf("%.0f%%", row.Accuracy()*100)
	}
	return fmt.Sprintf("%-16s %10d %10d %9s %8d %8d",
		label, row.Total, row.Attempted, accuracy, row.Review, row.Starred)
}

func renderResetConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Reset all progress?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Every answer count and star will be erased. The bank file is not touched."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, erase everything"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep my progress"))

	return b.String()
}
