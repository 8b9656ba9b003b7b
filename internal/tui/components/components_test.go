package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/payoff/internal/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7} {
		sum := 0
		for _, w := range LayoutRow(101, n) {
			sum += w
		}
		if sum != 101 {
			t.Fatalf("LayoutRow(101, %d) sums to %d", n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(10, 0) != nil")
	}
}

func TestCardRowPadsShortCards(t *testing.T) {
	th := theme.FlexokiDark
	short := ContentCard(th, "Short", "Content", 22)
	tall := ContentCard(th, "Tall", "1\n2\n3\n4\n5", 22)

	joined := CardRow(th, []string{tall, short})
	lines := strings.Split(joined, "\n")
	if len(lines) != lipgloss.Height(tall) {
		t.Fatalf("joined height = %d, want %d", len(lines), lipgloss.Height(tall))
	}

	for i := lipgloss.Height(short); i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Fatalf("line %d has no background styling: %q", i, lines[i])
		}
		if got := lipgloss.Width(lines[i]); got != 44 {
			t.Fatalf("line %d width = %d, want 44", i, got)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow(theme.TokyoNight, []Metric{
		{Label: "Owed", Value: "$6,000.00"},
		{Label: "Monthly", Value: "$150.00"},
		{Label: "Debt-free", Value: "4y 10m", Note: "Jan 2031"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Fatalf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabBarWidths(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(theme.Terminal, active, 80)
		if w := lipgloss.Width(bar); w != 80 {
			t.Fatalf("active=%d: tab bar width = %d, want 80", active, w)
		}
	}
	if got := TabIdxByKey('i'); got != 2 {
		t.Fatalf("TabIdxByKey('i') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestStatusBarFillsWidth(t *testing.T) {
	bar := RenderStatusBar(theme.FlexokiDark, 60, "[q]uit", "Saved", false)
	if w := lipgloss.Width(bar); w != 60 {
		t.Fatalf("status bar width = %d, want 60", w)
	}
}

func TestProgressBarClamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 2} {
		bar := ProgressBar(theme.FlexokiDark, pct, 20)
		// 20 cells of bar, a space, and up to "100%".
		if w := lipgloss.Width(bar); w < 23 || w > 25 {
			t.Fatalf("ProgressBar(%v) width = %d", pct, w)
		}
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	vals := []float64{1, 2, 3}
	if got, want := BarChart(theme.Terminal, vals, nil, theme.Terminal.Paid, 10, 2), Sparkline(theme.Terminal, vals, theme.Terminal.Paid); got != want {
		t.Fatalf("small BarChart = %q, want sparkline %q", got, want)
	}
}

func TestBarChartHeight(t *testing.T) {
	vals := []float64{1200, 2500, 3900, 5400}
	chart := BarChart(theme.FlexokiDark, vals, []string{"1", "2", "3", "4"}, theme.FlexokiDark.Paid, 40, 6)
	// rows + axis + labels
	if got := lipgloss.Height(chart); got != 8 {
		t.Fatalf("chart height = %d, want 8:\n%s", got, chart)
	}
}

func TestChartLabel(t *testing.T) {
	tests := map[float64]string{500: "$500", 2000: "$2k", 12500: "$12.5k", 3e6: "$3M"}
	for in, want := range tests {
		if got := chartLabel(in); got != want {
			t.Fatalf("chartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}
