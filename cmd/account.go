package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/cli"
)

var flagAccountName string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show or rename the device account",
	Args:  cobra.NoArgs,
	RunE:  runAccount,
}

func init() {
	accountCmd.Flags().StringVar(&flagAccountName, "name", "", "Set the display name (empty string clears it)")
	rootCmd.AddCommand(accountCmd)
}

func runAccount(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	acct := a.prefs.Account()
	if cmd.Flags().Changed("name") {
		if acct, err = a.prefs.SetDisplayName(cmd.Context(), flagAccountName); err != nil {
			return err
		}
		fmt.Printf("  Display name set to %s\n\n", acct.Name())
	}

	onboarding := "complete"
	if !acct.OnboardingComplete {
		onboarding = "pending (run payoff setup)"
	}
	fmt.Print(a.renderer().KeyValues([][2]string{
		{"Name", acct.Name()},
		{"Account id", acct.ID},
		{"Created", acct.CreatedAt.Local().Format("2006-01-02") + "  (" + cli.FormatWhen(acct.CreatedAt, time.Now()) + ")"},
		{"Onboarding", onboarding},
		{"Theme", a.prefs.ThemeID()},
	}))
	return nil
}
