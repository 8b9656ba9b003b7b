package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	name := a.prefs.Account().DisplayName
	themeID := a.prefs.ThemeID()

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Label, t.ID)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to payoff").
				Description("Track what you owe, record payments, and see when you'll be debt-free.\n\nEverything stays on this device."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Description("Leave blank to stay anonymous.").
				Placeholder(model.DefaultDisplayName).
				Value(&name),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeID),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	ctx := cmd.Context()
	if _, err := a.prefs.SetDisplayName(ctx, name); err != nil {
		return err
	}
	if _, err := a.prefs.SetTheme(ctx, themeID); err != nil {
		return err
	}
	acct, err := a.prefs.CompleteOnboarding(ctx)
	if err != nil {
		return err
	}

	if !config.Exists(flagConfigPath) {
		cfg := a.cfg
		cfg.Appearance.Theme = themeID
		if err := config.Save(flagConfigPath, cfg); err != nil {
			a.log.Warnw("writing default config", "error", err)
		} else {
			fmt.Printf("  Wrote config to %s\n", configPathOrDefault())
		}
	}

	fmt.Printf("\n  All set, %s.\n", acct.Name())
	fmt.Println("  Add a debt:      payoff debts add \"Visa\" --balance 1200 --rate 19.9 --min 50")
	fmt.Println("  Open dashboard:  payoff tui")
	return nil
}

func configPathOrDefault() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}
	return config.ConfigPath()
}
