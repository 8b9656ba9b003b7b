package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
)

var (
	flagDebtBalance string
	flagDebtRate    string
	flagDebtMin     string
	flagDebtName    string
	flagDebtYes     bool
)

var debtsCmd = &cobra.Command{
	Use:     "debts",
	Aliases: []string{"debt"},
	Short:   "List and manage debts",
	RunE:    runDebtsList,
}

var debtsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts with ids",
	Args:  cobra.NoArgs,
	RunE:  runDebtsList,
}

var debtsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Track a new debt",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtsAdd,
}

var debtsEditCmd = &cobra.Command{
	Use:   "edit <debt>",
	Short: "Change a debt's name, balance, rate, or minimum payment",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtsEdit,
}

var debtsRmCmd = &cobra.Command{
	Use:     "rm <debt>",
	Aliases: []string{"delete"},
	Short:   "Stop tracking a debt (its payments are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runDebtsRm,
}

func init() {
	for _, c := range []*cobra.Command{debtsAddCmd, debtsEditCmd} {
		c.Flags().StringVar(&flagDebtBalance, "balance", "", "Current balance")
		c.Flags().StringVar(&flagDebtRate, "rate", "", "APR in percent")
		c.Flags().StringVar(&flagDebtMin, "min", "", "Minimum monthly payment")
	}
	_ = debtsAddCmd.MarkFlagRequired("balance")
	_ = debtsAddCmd.MarkFlagRequired("min")
	debtsEditCmd.Flags().StringVar(&flagDebtName, "name", "", "New name")
	debtsRmCmd.Flags().BoolVarP(&flagDebtYes, "yes", "y", false, "Skip confirmation")

	debtsCmd.AddCommand(debtsListCmd, debtsAddCmd, debtsEditCmd, debtsRmCmd)
	rootCmd.AddCommand(debtsCmd)
}

func runDebtsList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	debts, err := a.ledger.LoadDebts(cmd.Context())
	if err != nil {
		return err
	}
	if len(debts) == 0 {
		fmt.Println("\n  No debts tracked yet.")
		return nil
	}

	r := a.renderer()
	rows := make([][]string, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, []string{
			d.Name,
			shortID(d.ID),
			cli.FormatCurrency(d.Balance),
			cli.FormatCurrency(d.OriginalBalance),
			cli.FormatRate(d.Rate),
			cli.FormatCurrency(d.MinPayment),
			d.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	fmt.Println()
	fmt.Print(r.Table(cli.Table{
		Headers: []string{"Debt", "Id", "Balance", "Original", "APR", "Minimum", "Added"},
		Rows:    rows,
	}))
	return nil
}

func runDebtsAdd(cmd *cobra.Command, args []string) error {
	nd := model.NewDebt{Name: args[0]}
	var err error
	if nd.Balance, err = parseFlagAmount("balance", flagDebtBalance); err != nil {
		return err
	}
	if flagDebtRate != "" {
		if nd.Rate, err = parseFlagAmount("rate", flagDebtRate); err != nil {
			return err
		}
	}
	if nd.MinPayment, err = parseFlagAmount("min", flagDebtMin); err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	debts, err := a.ledger.AddDebt(cmd.Context(), nd)
	if err != nil {
		return err
	}
	d := debts[len(debts)-1]
	fmt.Printf("  Added %s (%s): %s at %s, %s/mo minimum\n",
		d.Name, shortID(d.ID), cli.FormatCurrency(d.Balance), cli.FormatRate(d.Rate), cli.FormatCurrency(d.MinPayment))
	printForecast(d)
	return nil
}

func runDebtsEdit(cmd *cobra.Command, args []string) error {
	var patch model.DebtPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		name := strings.TrimSpace(flagDebtName)
		patch.Name = &name
	}
	for _, f := range []struct {
		name string
		raw  string
		dst  **float64
	}{
		{"balance", flagDebtBalance, &patch.Balance},
		{"rate", flagDebtRate, &patch.Rate},
		{"min", flagDebtMin, &patch.MinPayment},
	} {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := parseFlagAmount(f.name, f.raw)
		if err != nil {
			return err
		}
		*f.dst = &v
	}
	if patch.IsEmpty() {
		return errors.New("nothing to change: pass --name, --balance, --rate, or --min")
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
	d, err := resolveDebt(debts, args[0])
	if err != nil {
		return err
	}
	debts, err = a.ledger.UpdateDebt(cmd.Context(), d.ID, patch)
	if err != nil {
		return err
	}
	for _, updated := range debts {
		if updated.ID == d.ID {
			fmt.Printf("  Updated %s: %s at %s, %s/mo minimum\n",
				updated.Name, cli.FormatCurrency(updated.Balance), cli.FormatRate(updated.Rate), cli.FormatCurrency(updated.MinPayment))
			printForecast(updated)
		}
	}
	return nil
}

func runDebtsRm(cmd *cobra.Command, args []string) error {
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

	if !flagDebtYes {
		ok, err := confirm(fmt.Sprintf("Delete %s (%s owed)?", d.Name, cli.FormatCurrency(d.Balance)),
			"Its recorded payments stay in your history.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	if _, err := a.ledger.DeleteDebt(cmd.Context(), d.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s\n", d.Name)
	return nil
}

func printForecast(d model.Debt) {
	m := calc.MonthsToPayoff(d.Balance, d.Rate, d.MinPayment)
	if m.IsNever() {
		fmt.Println("  Warning: the minimum payment doesn't cover the monthly interest; this debt never clears.")
		return
	}
	fmt.Printf("  Paid off in %s (%s), %s interest at the minimum\n",
		cli.FormatMonths(m), cli.FormatPayoffDate(time.Now(), m),
		cli.FormatCurrency(calc.TotalInterest(d.Balance, d.Rate, d.MinPayment)))
}

func parseFlagAmount(name, raw string) (float64, error) {
	v, err := cli.ParseAmount(raw)
	if err != nil {
		return 0, fmt.Errorf("--%s %q: %w", name, raw, err)
	}
	return v, nil
}

// confirm asks a yes/no question on the terminal.
func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
