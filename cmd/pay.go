package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
)

var (
	flagPayDate  string
	flagPayForce bool
)

var payCmd = &cobra.Command{
	Use:   "pay <debt> <amount>",
	Short: "Record a payment and reduce the debt's balance",
	Args:  cobra.ExactArgs(2),
	RunE:  runPay,
}

func init() {
	payCmd.Flags().StringVar(&flagPayDate, "date", "", "Payment date, YYYY-MM-DD (default now)")
	payCmd.Flags().BoolVar(&flagPayForce, "force", false, "Record against a debt id that matches no tracked debt")
	rootCmd.AddCommand(payCmd)
}

func runPay(cmd *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[1], err)
	}
	p := model.Payment{Amount: amount}
	if flagPayDate != "" {
		date, err := time.ParseInLocation("2006-01-02", flagPayDate, time.Local)
		if err != nil {
			return fmt.Errorf("--date %q: %w", flagPayDate, err)
		}
		p.Date = date.UTC()
	}

	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	debts, err := a.ledger.LoadDebts(cmd.Context())
	if err != nil {
		return err
	}
	if p.DebtID, err = paymentTarget(debts, args[0], flagPayForce); err != nil {
		return err
	}

	snap, err := a.ledger.RecordPayment(cmd.Context(), p)
	if err != nil {
		return err
	}

	var updated *model.Debt
	for i := range snap.Debts {
		if snap.Debts[i].ID == p.DebtID {
			updated = &snap.Debts[i]
		}
	}
	if updated == nil {
		fmt.Printf("  Warning: recorded %s against %s, which matches no tracked debt.\n", cli.FormatCurrency(amount), p.DebtID)
		return nil
	}

	fmt.Printf("  Paid %s toward %s. Remaining: %s\n",
		cli.FormatCurrency(amount), updated.Name, cli.FormatCurrency(updated.Balance))
	if updated.PaidOff() {
		fmt.Printf("  %s is paid off!\n", updated.Name)
		return nil
	}
	printForecast(*updated)
	return nil
}

// paymentTarget resolves ref to a debt id. With force, a reference that
// matches nothing becomes the orphan payment's debt id; an ambiguous reference
// is always an error.
func paymentTarget(debts []model.Debt, ref string, force bool) (string, error) {
	d, err := resolveDebt(debts, ref)
	switch {
	case err == nil:
		return d.ID, nil
	case force && errors.Is(err, errNoDebtMatch):
		return strings.TrimSpace(ref), nil
	}
	return "", err
}
