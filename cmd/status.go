package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/cli"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the ledger lives and what it holds",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
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
	keys, err := a.store.Keys(ctx, "")
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}

	size := "unknown"
	if fi, err := os.Stat(a.dbPath); err == nil {
		size = humanize.Bytes(uint64(fi.Size())) //nolint:gosec // file sizes are non-negative
	}

	lastPayment := "none"
	if n := len(payments); n > 0 {
		lastPayment = cli.FormatCurrency(payments[n-1].Amount) + ", " + cli.FormatWhen(payments[n-1].Date, time.Now())
	}

	fmt.Print(a.renderer().KeyValues([][2]string{
		{"Database", a.dbPath},
		{"Size", size},
		{"Keys", strings.Join(keys, ", ")},
		{"Account", a.prefs.Account().Name() + " (" + a.prefs.Account().ID + ")"},
		{"Theme", a.prefs.ThemeID()},
		{"Debts", cli.FormatNumber(int64(len(debts)))},
		{"Payments", cli.FormatNumber(int64(len(payments)))},
		{"Last payment", lastPayment},
	}))
	return nil
}
