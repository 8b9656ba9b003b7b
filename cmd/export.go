package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/model"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump account, theme, debts, and payments as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

// exportDoc is the export file layout.
type exportDoc struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Account    model.UserAccount `json:"account"`
	Theme      string            `json:"theme"`
	Debts      []model.Debt      `json:"debts"`
	Payments   []model.Payment   `json:"payments"`
	StoreKeys  []string          `json:"storeKeys"`
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	doc := exportDoc{
		ExportedAt: time.Now().UTC(),
		Account:    a.prefs.Account(),
		Theme:      a.prefs.ThemeID(),
	}
	if doc.Debts, err = a.ledger.LoadDebts(ctx); err != nil {
		return err
	}
	if doc.Payments, err = a.ledger.LoadPayments(ctx); err != nil {
		return err
	}
	if doc.StoreKeys, err = a.store.Keys(ctx, "payoff/"); err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}

	var w io.Writer = os.Stdout
	if flagExportOut != "" {
		f, err := os.OpenFile(flagExportOut, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen export path
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if flagExportOut != "" {
		fmt.Fprintf(os.Stderr, "  Exported %d debts and %d payments to %s\n", len(doc.Debts), len(doc.Payments), flagExportOut)
	}
	return nil
}
