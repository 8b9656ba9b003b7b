// Package components provides reusable TUI widgets for the payoff dashboard.
// Every widget takes the theme to draw with.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/payoff/internal/theme"
)

// LayoutRow splits total into n column widths summing to total. The
// leftmost columns take the extra cells.
func LayoutRow(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
		if i < total%n {
			widths[i]++
		}
	}
	return widths
}

// frame is the rounded, surface-filled border shared by every card.
func frame(t theme.Theme, outerWidth int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

func onSurface(t theme.Theme, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(t.Surface)
}

// Metric is one headline number on the dashboard.
type Metric struct {
	Label string
	Value string
	Note  string // optional third line
	Color lipgloss.Color
}

// MetricCard renders label, value, and optional note in a card of the
// given outer width.
func MetricCard(t theme.Theme, m Metric, outerWidth int) string {
	fg := m.Color
	if fg == "" {
		fg = t.TextPrimary
	}
	lines := []string{
		onSurface(t, t.TextMuted).Render(m.Label),
		onSurface(t, fg).Bold(true).Render(m.Value),
	}
	if m.Note != "" {
		lines = append(lines, onSurface(t, t.TextDim).Render(m.Note))
	}
	return frame(t, outerWidth).Render(strings.Join(lines, "\n"))
}

// MetricCardRow renders metric cards side by side, summing to totalWidth.
func MetricCardRow(t theme.Theme, metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		rendered[i] = MetricCard(t, m, widths[i])
	}
	return CardRow(t, rendered)
}

// ContentCard wraps body in a card, headed by title when one is given.
func ContentCard(t theme.Theme, title, body string, outerWidth int) string {
	if title != "" {
		body = onSurface(t, t.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return frame(t, outerWidth).Render(body)
}

// CardRow joins rendered cards horizontally. Shorter cards are padded with
// the background color so the row stays rectangular.
func CardRow(t theme.Theme, cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}
	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.PlaceVertical(tallest, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(t.Background))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth is the text width left inside a card after border and padding.
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
