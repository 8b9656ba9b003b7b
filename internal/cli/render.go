package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/payoff/internal/theme"
)

// Renderer draws CLI output in one theme's colors.
type Renderer struct {
	t theme.Theme

	title  lipgloss.Style
	header lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	dim    lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
}

// NewRenderer builds styles for t.
func NewRenderer(t theme.Theme) *Renderer {
	return &Renderer{
		t:      t,
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Align(lipgloss.Center),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		dim:    lipgloss.NewStyle().Foreground(t.TextDim),
		good:   lipgloss.NewStyle().Foreground(t.Paid),
		warn:   lipgloss.NewStyle().Foreground(t.Interest),
		bad:    lipgloss.NewStyle().Foreground(t.Danger),
	}
}

// Muted renders secondary text.
func (r *Renderer) Muted(s string) string { return r.muted.Render(s) }

// Good renders positive text (paid, earned).
func (r *Renderer) Good(s string) string { return r.good.Render(s) }

// Warn renders cautionary text.
func (r *Renderer) Warn(s string) string { return r.warn.Render(s) }

// Bad renders error text.
func (r *Renderer) Bad(s string) string { return r.bad.Render(s) }

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// SeparatorRow renders as a horizontal rule inside a table.
var SeparatorRow = []string{"---"}

// Title renders a centered title bar in a bordered box.
func (r *Renderer) Title(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.t.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(r.title.Render(title))
}

// KeyValues renders aligned "label  value" lines indented two spaces.
func (r *Renderer) KeyValues(pairs [][2]string) string {
	w := 0
	for _, p := range pairs {
		w = max(w, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", r.muted.Render(fmt.Sprintf("%-*s", w, p[0])), r.value.Render(p[1]))
	}
	return b.String()
}

// Table renders a bordered table with headers and rows. The first column
// is left-aligned; the rest are numeric and right-aligned.
func (r *Renderer) Table(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return r.dim.Render(b.String()) + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + r.header.Render(t.Title) + "\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(r.dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(r.header.Render(" " + pad(h, widths[i], i > 0) + " "))
			b.WriteString(r.dim.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == SeparatorRow[0] {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(r.dim.Render("│"))
		for i := range numCols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(r.value.Render(" " + pad(cell, widths[i], i > 0) + " "))
			b.WriteString(r.dim.Render("│"))
		}
		b.WriteString("\n")
	}
	b.WriteString(rule("╰", "┴", "╯"))

	return b.String()
}

// pad fits s to w display cells, truncating with an ellipsis when too long.
func pad(s string, w int, right bool) string {
	sw := lipgloss.Width(s)
	if sw > w {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
			runes = runes[:len(runes)-1]
		}
		return string(runes) + "…"
	}
	gap := strings.Repeat(" ", w-sw)
	if right {
		return gap + s
	}
	return s + gap
}

// ProgressBar renders a filled bar for a 0-1 fraction followed by the percent.
func (r *Renderer) ProgressBar(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	filled := int(pct * float64(width))
	bar := r.good.Render(strings.Repeat("█", filled)) + r.dim.Render(strings.Repeat("░", width-filled))
	return bar + " " + r.muted.Render(FormatPercent(pct))
}

// Sparkline generates a unicode block sparkline from a series of values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	hi := values[0]
	for _, v := range values[1:] {
		hi = max(hi, v)
	}
	if hi <= 0 {
		hi = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / hi * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// Downsample keeps at most n evenly spaced values, always including the last.
func Downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	if n == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	return out
}
