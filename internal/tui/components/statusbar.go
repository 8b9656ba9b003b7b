package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/payoff/internal/theme"
)

// RenderStatusBar renders the bottom bar: key hints on the left, a status
// message on the right. isErr colors the message as an error.
func RenderStatusBar(t theme.Theme, width int, hints, status string, isErr bool) string {
	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	statusColor := t.Paid
	if isErr {
		statusColor = t.Danger
	}
	statusStyle := lipgloss.NewStyle().Foreground(statusColor).Background(t.Surface).Bold(true)

	left := base.Render(" " + hints)
	right := ""
	if status != "" {
		right = statusStyle.Render(status + " ")
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
