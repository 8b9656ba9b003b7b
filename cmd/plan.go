package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/cli"
)

var (
	flagPlanPayment string
	flagPlanLimit   int
)

var planCmd = &cobra.Command{
	Use:   "plan <debt>",
	Short: "Month-by-month payoff schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagPlanPayment, "payment", "", "Monthly payment (default the debt's minimum)")
	planCmd.Flags().IntVarP(&flagPlanLimit, "limit", "n", 24, "Show at most n months (0 = all)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	debts, err := a.ledger.LoadDebts(cmd.Context())
	if err != nil {
		return err
	}
	d, err := resolveDebt(debts, args[0])
	if err != nil {
		return err
	}

	payment := d.MinPayment
	if flagPlanPayment != "" {
		if payment, err = parseFlagAmount("payment", flagPlanPayment); err != nil {
			return err
		}
	}

	r := a.renderer()
	now := time.Now()
	months := calc.MonthsToPayoff(d.Balance, d.Rate, payment)

	fmt.Println()
	fmt.Println(r.Title(fmt.Sprintf("PLAN  %s at %s/mo", d.Name, cli.FormatCurrency(payment))))
	fmt.Println()

	if months.IsNever() {
		monthlyInterest := d.Balance * d.Rate / 100 / 12
		fmt.Println("  " + r.Bad("This payment never pays the debt off."))
		fmt.Printf("  Interest accrues %s a month; pay more than that to make progress.\n", cli.FormatCurrency(monthlyInterest))
		return nil
	}

	schedule := calc.PayoffSchedule(d.Balance, d.Rate, payment)
	fmt.Print(r.KeyValues([][2]string{
		{"Balance", cli.FormatCurrency(d.Balance)},
		{"APR", cli.FormatRate(d.Rate)},
		{"Months", cli.FormatMonths(months)},
		{"Payoff", cli.FormatPayoffDate(now, months)},
		{"Interest", cli.FormatCurrency(calc.TotalInterest(d.Balance, d.Rate, payment))},
	}))
	if len(schedule) > 1 {
		balances := make([]float64, len(schedule))
		for i, e := range schedule {
			balances[i] = e.RemainingBalance
		}
		fmt.Printf("  %s\n", r.Muted(cli.Sparkline(cli.Downsample(balances, 48))))
	}
	fmt.Println()

	shown := schedule
	if flagPlanLimit > 0 && len(shown) > flagPlanLimit {
		shown = shown[:flagPlanLimit]
	}
	rows := make([][]string, 0, len(shown)+1)
	for _, e := range shown {
		date, _ := calc.PayoffDate(now, calc.Months(e.Month))
		rows = append(rows, []string{
			strconv.Itoa(e.Month),
			date.Format("Jan 2006"),
			cli.FormatCurrency(e.Interest),
			cli.FormatCurrency(e.Principal),
			cli.FormatCurrency(e.RemainingBalance),
		})
	}
	if hidden := len(schedule) - len(shown); hidden > 0 {
		rows = append(rows, []string{"", r.Muted(fmt.Sprintf("+%d more", hidden)), "", "", ""})
	}
	fmt.Print(r.Table(cli.Table{
		Headers: []string{"Month", "Date", "Interest", "Principal", "Remaining"},
		Rows:    rows,
	}))
	return nil
}
