package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/cli"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Debt totals and per-debt payoff forecast",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	debts, err := a.ledger.LoadDebts(cmd.Context())
	if err != nil {
		return err
	}
	r := a.renderer()
	name := a.prefs.Account().Name()

	if len(debts) == 0 {
		fmt.Printf("\n  Hi %s. No debts tracked yet.\n", name)
		fmt.Println("  Add one with: payoff debts add \"Visa\" --balance 1200 --rate 19.9 --min 50")
		if !a.prefs.Account().OnboardingComplete {
			fmt.Println("  Or run the setup wizard: payoff setup")
		}
		return nil
	}

	now := time.Now()
	sum := calc.Summarize(debts)

	fmt.Println()
	fmt.Println(r.Title("PAYOFF  " + name))
	fmt.Println()

	freeIn := cli.FormatMonths(sum.DebtFreeIn)
	if sum.DebtFreeIn.IsNever() {
		freeIn = r.Bad("never at current minimums")
	} else {
		freeIn += "  (" + cli.FormatPayoffDate(now, sum.DebtFreeIn) + ")"
	}
	fmt.Print(r.KeyValues([][2]string{
		{"Total owed", cli.FormatCurrency(sum.TotalBalance)},
		{"Started at", cli.FormatCurrency(sum.TotalOriginal)},
		{"Monthly minimum", cli.FormatCurrency(sum.TotalMinPayment)},
		{"Interest ahead", cli.FormatCurrency(sum.TotalInterest)},
		{"Paid off", cli.FormatPercent(sum.PercentPaid) + "  " + r.ProgressBar(sum.PercentPaid, 20)},
		{"Debt-free in", freeIn},
	}))
	fmt.Println()

	rows := make([][]string, 0, len(debts))
	for _, d := range debts {
		m := calc.MonthsToPayoff(d.Balance, d.Rate, d.MinPayment)
		payoff := cli.FormatPayoffDate(now, m)
		interest := cli.FormatCurrency(calc.TotalInterest(d.Balance, d.Rate, d.MinPayment))
		if m.IsNever() {
			payoff = r.Bad("never")
			interest = "-"
		}
		rows = append(rows, []string{
			d.Name,
			cli.FormatCurrency(d.Balance),
			cli.FormatRate(d.Rate),
			cli.FormatCurrency(d.MinPayment),
			cli.FormatPercent(calc.PercentPaid(d.Balance, d.OriginalBalance)),
			payoff,
			interest,
		})
	}
	fmt.Print(r.Table(cli.Table{
		Title:   "Debts",
		Headers: []string{"Debt", "Balance", "APR", "Minimum", "Paid", "Payoff", "Interest"},
		Rows:    rows,
	}))

	if sum.DebtFreeIn.IsNever() {
		fmt.Println()
		fmt.Println("  " + r.Warn("A minimum payment doesn't cover its interest. Raise it with: payoff debts edit <debt> --min <amount>"))
	}
	return nil
}
