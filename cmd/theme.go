package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the color theme",
	Args:  cobra.NoArgs,
	RunE:  runThemeShow,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeSetCmd = &cobra.Command{
	Use:       "set <id>",
	Short:     "Switch the color theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: theme.Names(),
	RunE:      runThemeSet,
}

func init() {
	themeCmd.AddCommand(themeListCmd, themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeShow(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	t := a.prefs.Theme()
	fmt.Printf("  %s (%s)  %s\n", t.Label, t.ID, swatch(t))
	return nil
}

func runThemeList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	current := a.prefs.ThemeID()
	for _, t := range theme.All {
		marker := " "
		if t.ID == current {
			marker = "*"
		}
		fmt.Printf("  %s %-18s %-18s %s\n", marker, t.ID, t.Label, swatch(t))
	}
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.prefs.SetTheme(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("%w (choose from %s)", err, strings.Join(theme.Names(), ", "))
	}
	fmt.Printf("  Theme set to %s  %s\n", t.Label, swatch(t))
	return nil
}

// swatch previews a theme's paid, owed, interest, and accent colors.
func swatch(t theme.Theme) string {
	var out string
	for _, c := range []lipgloss.Color{t.Paid, t.Owed, t.Interest, t.Accent} {
		out += lipgloss.NewStyle().Foreground(c).Render("██")
	}
	return out
}
