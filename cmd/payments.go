package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
)

var (
	flagPaymentsDebt  string
	flagPaymentsLimit int
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Payment history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPayments,
}

func init() {
	paymentsCmd.Flags().StringVar(&flagPaymentsDebt, "debt", "", "Only payments for this debt")
	paymentsCmd.Flags().IntVarP(&flagPaymentsLimit, "limit", "n", 0, "Show at most n payments (0 = all)")
	rootCmd.AddCommand(paymentsCmd)
}

func runPayments(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	debts, err := a.ledger.LoadDebts(ctx)
	if err != nil {
		return err
	}
	payments, err := a.ledger.LoadPayments(ctx)
	if err != nil {
		return err
	}

	if flagPaymentsDebt != "" {
		d, err := resolveDebt(debts, flagPaymentsDebt)
		if err != nil {
			return err
		}
		payments = model.PaymentsFor(payments, d.ID)
	}
	if len(payments) == 0 {
		fmt.Println("\n  No payments recorded.")
		return nil
	}

	names := make(map[string]string, len(debts))
	for _, d := range debts {
		names[d.ID] = d.Name
	}

	r := a.renderer()
	now := time.Now()
	rows := make([][]string, 0, len(payments)+2)
	for i := len(payments) - 1; i >= 0; i-- {
		if flagPaymentsLimit > 0 && len(rows) >= flagPaymentsLimit {
			break
		}
		p := payments[i]
		name, ok := names[p.DebtID]
		if !ok {
			name = r.Muted("(deleted) " + shortID(p.DebtID))
		}
		rows = append(rows, []string{
			p.Date.Local().Format("2006-01-02"),
			cli.FormatWhen(p.Date, now),
			name,
			cli.FormatCurrency(p.Amount),
		})
	}
	rows = append(rows, cli.SeparatorRow,
		[]string{"Total", fmt.Sprintf("%d payments", len(payments)), "", cli.FormatCurrency(model.TotalPaid(payments))})

	fmt.Println()
	fmt.Print(r.Table(cli.Table{
		Headers: []string{"Date", "When", "Debt", "Amount"},
		Rows:    rows,
	}))
	return nil
}
