package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// newOnboardingForm builds the first-run wizard: a welcome note, a display
// name, and a theme.
func newOnboardingForm(v *formValues, currentName, currentTheme string) *huh.Form {
	*v = formValues{displayName: currentName, themeID: currentTheme}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to payoff").
				Description("Track what you owe, record payments, and see when you'll be debt-free.\n\nEverything stays on this device."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Description("Leave blank to stay anonymous.").
				Placeholder("Friend").
				Value(&v.displayName),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions()...).
				Value(&v.themeID),
		),
	)
}

func (a App) startOnboarding() (App, tea.Cmd) {
	acct := a.prefs.Account()
	return a.openForm(formOnboarding, newOnboardingForm(a.formVals, acct.DisplayName, a.prefs.ThemeID()))
}

// finishOnboarding persists the wizard answers when save is true, and marks
// onboarding complete either way so it is not shown again.
func (a App) finishOnboarding(save bool) (tea.Model, tea.Cmd) {
	v := *a.formVals
	a = a.closeForm()

	return a, func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()

		if save {
			if _, err := a.prefs.SetDisplayName(ctx, v.displayName); err != nil {
				return prefsChangedMsg{err: err}
			}
			if v.themeID != "" {
				if _, err := a.prefs.SetTheme(ctx, v.themeID); err != nil {
					return prefsChangedMsg{err: err}
				}
			}
		}
		acct, err := a.prefs.CompleteOnboarding(ctx)
		if err != nil {
			return prefsChangedMsg{err: err}
		}
		return prefsChangedMsg{status: fmt.Sprintf("Welcome, %s", acct.Name())}
	}
}
