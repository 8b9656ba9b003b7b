package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagResetYes     bool
	flagResetAccount bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every debt and payment",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip confirmation")
	resetCmd.Flags().BoolVar(&flagResetAccount, "account", false, "Also delete the account (name, onboarding)")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if !flagResetYes {
		desc := "Your name and theme are kept."
		if flagResetAccount {
			desc = "Your account is deleted too; the next launch starts onboarding again."
		}
		ok, err := confirm("Delete all debts and payments? This cannot be undone.", desc)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	ctx := cmd.Context()
	if err := a.ledger.ClearAllData(ctx); err != nil {
		return err
	}
	fmt.Println("  Cleared all debts and payments.")

	if flagResetAccount {
		acct, err := a.prefs.DeleteAccount(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("  Account reset (new id %s).\n", acct.ID)
	}
	return nil
}
