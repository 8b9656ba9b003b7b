package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/tui/components"
)

// renderBudgetTab is a placeholder until budgeting lands; it only restates
// the committed monthly minimums.
func (a App) renderBudgetTab(cw int) string {
	t := a.theme()
	sum := calc.Summarize(a.debts)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(muted.Render("Budgeting is coming soon."))
	b.WriteString("\n\n")
	b.WriteString(muted.Render("Committed to debt minimums: "))
	b.WriteString(value.Render(cli.FormatCurrency(sum.TotalMinPayment) + "/mo"))
	return components.ContentCard(t, "Budget", b.String(), cw)
}
