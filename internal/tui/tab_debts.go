package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/tui/components"
)

// debtsState tracks the debts tab selection.
type debtsState struct {
	cursor int
}

func (a *App) clampCursor() {
	a.debtsState.cursor = min(a.debtsState.cursor, len(a.debts)-1)
	a.debtsState.cursor = max(a.debtsState.cursor, 0)
}

func (a App) selectedDebt() (model.Debt, bool) {
	if len(a.debts) == 0 {
		return model.Debt{}, false
	}
	return a.debts[a.debtsState.cursor], true
}

func (a App) handleDebtsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.debtsState.cursor < len(a.debts)-1 {
			a.debtsState.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.debtsState.cursor > 0 {
			a.debtsState.cursor--
		}
		return a, nil, true
	case "g":
		a.debtsState.cursor = 0
		return a, nil, true
	case "G":
		a.debtsState.cursor = max(len(a.debts)-1, 0)
		return a, nil, true
	case "a":
		m, cmd := a.openForm(formAddDebt, newAddDebtForm(a.formVals))
		return m, cmd, true
	}

	d, ok := a.selectedDebt()
	if !ok {
		return a, nil, false
	}
	switch key {
	case "p":
		m, cmd := a.openForm(formPay, newPayForm(a.formVals, d))
		return m, cmd, true
	case "e", "enter":
		m, cmd := a.openForm(formEditDebt, newEditDebtForm(a.formVals, d))
		return m, cmd, true
	case "D":
		*a.formVals = formValues{target: d}
		m, cmd := a.openForm(formDeleteDebt, newConfirmForm(a.formVals,
			"Delete "+d.Name+"?",
			"Its recorded payments stay in your history.",
			"Delete"))
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) renderDebtsTab(cw int) string {
	t := a.theme()
	now := a.now()

	sum := calc.Summarize(a.debts)
	freeNote := cli.FormatPayoffDate(now, sum.DebtFreeIn)
	freeColor := t.Paid
	if sum.DebtFreeIn.IsNever() {
		freeColor = t.Danger
		freeNote = "raise a minimum payment"
	}

	metrics := []components.Metric{
		{Label: "Total owed", Value: cli.FormatCurrency(sum.TotalBalance), Note: fmt.Sprintf("%d debts", sum.Debts), Color: t.Owed},
		{Label: "Monthly minimum", Value: cli.FormatCurrency(sum.TotalMinPayment)},
		{Label: "Paid off", Value: cli.FormatPercent(sum.PercentPaid), Note: "of " + cli.FormatCurrency(sum.TotalOriginal), Color: t.Paid},
		{Label: "Debt-free in", Value: cli.FormatMonths(sum.DebtFreeIn), Note: freeNote, Color: freeColor},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(t, metrics, cw))
	b.WriteString("\n")

	if len(a.debts) == 0 {
		hello := fmt.Sprintf("Hi %s. No debts tracked yet.\n\nPress a to add your first one.", a.prefs.Account().Name())
		b.WriteString(components.ContentCard(t, "Debts", hello, cw))
		return b.String()
	}

	if a.isCompactLayout() {
		b.WriteString(a.renderDebtList(cw))
		b.WriteString("\n")
		b.WriteString(a.renderDebtDetail(cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow(t, []string{
		a.renderDebtList(widths[0]),
		a.renderDebtDetail(widths[1]),
	}))
	return b.String()
}

func (a App) renderDebtList(w int) string {
	t := a.theme()
	inner := components.CardInnerWidth(w)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	paidStyle := lipgloss.NewStyle().Foreground(t.Paid).Background(t.Surface)

	amountW := 14
	nameW := max(inner-amountW-10, 6)

	var b strings.Builder
	for i, d := range a.debts {
		marker := "  "
		if i == a.debtsState.cursor {
			marker = "▸ "
		}
		amount := cli.FormatCurrency(d.Balance)
		if d.PaidOff() {
			amount = "paid off ✓"
		}
		line := fmt.Sprintf("%s%-*s %*s %7s", marker, nameW, truncStr(d.Name, nameW), amountW, amount, cli.FormatRate(d.Rate))
		line = fmt.Sprintf("%-*s", inner, line)

		switch {
		case i == a.debtsState.cursor:
			b.WriteString(selStyle.Render(line))
		case d.PaidOff():
			b.WriteString(paidStyle.Render(line))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		if i < len(a.debts)-1 {
			b.WriteString("\n")
		}
	}
	return components.ContentCard(t, fmt.Sprintf("Debts (%d)", len(a.debts)), b.String(), w)
}

func (a App) renderDebtDetail(w int) string {
	t := a.theme()
	d, ok := a.selectedDebt()
	if !ok {
		return ""
	}
	inner := components.CardInnerWidth(w)
	now := a.now()

	months := calc.MonthsToPayoff(d.Balance, d.Rate, d.MinPayment)
	interest := calc.TotalInterest(d.Balance, d.Rate, d.MinPayment)
	paidPct := calc.PercentPaid(d.Balance, d.OriginalBalance)
	payments := model.PaymentsFor(a.payments, d.ID)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Danger).Background(t.Surface).Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("Balance", cli.FormatCurrency(d.Balance)+" of "+cli.FormatCurrency(d.OriginalBalance)))
	b.WriteString(row("APR", cli.FormatRate(d.Rate)))
	b.WriteString(row("Minimum", cli.FormatCurrency(d.MinPayment)+"/mo"))
	if months.IsNever() {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "Payoff")))
		b.WriteString(warnStyle.Render("never: minimum doesn't cover interest"))
		b.WriteString("\n")
	} else {
		b.WriteString(row("Payoff", cli.FormatMonths(months)+" ("+cli.FormatPayoffDate(now, months)+")"))
		b.WriteString(row("Interest left", cli.FormatCurrency(interest)))
	}
	b.WriteString(row("Payments", fmt.Sprintf("%d totaling %s", len(payments), cli.FormatCurrency(model.TotalPaid(payments)))))
	b.WriteString("\n")
	b.WriteString(components.PaidBar(t, "Paid", paidPct, 6, max(inner-12, 10)))

	if sched := calc.PayoffSchedule(d.Balance, d.Rate, d.MinPayment); len(sched) > 1 {
		balances := make([]float64, len(sched))
		for i, e := range sched {
			balances[i] = e.RemainingBalance
		}
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Balance over time") + "\n")
		b.WriteString(components.Sparkline(t, cli.Downsample(balances, inner), t.Owed))
	}

	if n := len(payments); n > 0 {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Recent payments") + "\n")
		for i := n - 1; i >= max(0, n-3); i-- {
			p := payments[i]
			b.WriteString(valueStyle.Render(fmt.Sprintf("%12s", cli.FormatCurrency(p.Amount))))
			b.WriteString(labelStyle.Render("  " + cli.FormatWhen(p.Date, now)))
			if i > max(0, n-3) {
				b.WriteString("\n")
			}
		}
	}

	return components.ContentCard(t, d.Name, b.String(), w)
}
