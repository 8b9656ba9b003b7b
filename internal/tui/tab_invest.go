package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/tui/components"
)

// investState holds the projection assumptions, seeded from config.
type investState struct {
	monthly   float64
	returnPct float64
	years     float64
}

func (a App) renderInvestTab(cw int) string {
	t := a.theme()
	in := a.invest
	g := calc.InvestmentBreakdown(in.monthly, in.returnPct, in.years)
	if !g.Finite() {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard(t, "Growth",
			muted.Render("This projection is too large to show. Lower the return or the years.\n\nPress e to edit."), cw)
	}

	metrics := []components.Metric{
		{Label: "Future value", Value: cli.FormatCurrency(g.FutureValue), Note: fmt.Sprintf("after %g years", in.years), Color: t.Paid},
		{Label: "Contributed", Value: cli.FormatCurrency(g.Contributed), Note: cli.FormatCurrency(in.monthly) + "/mo"},
		{Label: "Earnings", Value: cli.FormatCurrency(g.Earnings), Note: cli.FormatRate(in.returnPct) + " a year", Color: t.Accent},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(t, metrics, cw))
	b.WriteString("\n")

	byYear := calc.GrowthByYear(in.monthly, in.returnPct, in.years)
	if len(byYear) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard(t, "Growth",
			muted.Render("Set a monthly contribution and a horizon to see a projection.\n\nPress e to edit."), cw))
		return b.String()
	}

	labels := make([]string, len(byYear))
	for i := range byYear {
		labels[i] = fmt.Sprintf("Y%d", i+1)
	}
	inner := components.CardInnerWidth(cw)
	chartH := 8
	if a.height > 0 {
		chartH = max(min(a.height-18, 14), 4)
	}
	chart := components.BarChart(t, byYear, labels, t.Paid, inner, chartH)
	b.WriteString(components.ContentCard(t, "Growth by year", chart, cw))
	return b.String()
}
