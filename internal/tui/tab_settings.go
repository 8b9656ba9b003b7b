package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/theme"
	"github.com/theirongolddev/payoff/internal/tui/components"
)

const (
	settingsFieldName = iota
	settingsFieldTheme
	settingsFieldClearData
	settingsFieldResetAccount
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func newSettingsState() settingsState {
	return settingsState{input: newSettingsInput()}
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = model.DefaultDisplayName
	return ti
}

func (a App) handleSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter", " ":
		return a.settingsActivate()
	case "t":
		return a, a.setThemeCmd(theme.Next(a.prefs.ThemeID()).ID), true
	}
	return a, nil, false
}

func (a App) settingsActivate() (tea.Model, tea.Cmd, bool) {
	switch a.settings.cursor {
	case settingsFieldName:
		ti := newSettingsInput()
		ti.SetValue(a.prefs.Account().DisplayName)
		ti.Focus()
		a.settings.input = ti
		a.settings.editing = true
		return a, ti.Cursor.BlinkCmd(), true

	case settingsFieldTheme:
		return a, a.setThemeCmd(theme.Next(a.prefs.ThemeID()).ID), true

	case settingsFieldClearData:
		*a.formVals = formValues{}
		m, cmd := a.openForm(formReset, newConfirmForm(a.formVals,
			"Clear all debts and payments?",
			"Your name and theme are kept. This cannot be undone.",
			"Clear"))
		return m, cmd, true

	case settingsFieldResetAccount:
		*a.formVals = formValues{}
		m, cmd := a.openForm(formResetAccount, newConfirmForm(a.formVals,
			"Delete your account?",
			"Clears every debt and payment and starts onboarding again.",
			"Delete"))
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(a.settings.input.Value())
		a.settings.editing = false
		a.settings.input.Blur()
		if name == a.prefs.Account().DisplayName {
			return a, nil
		}
		return a, a.setDisplayNameCmd(name)
	case "esc":
		a.settings.editing = false
		a.settings.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a App) renderSettingsTab(cw int) string {
	t := a.theme()
	acct := a.prefs.Account()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	dangerStyle := lipgloss.NewStyle().Foreground(t.Danger).Background(t.Surface)

	nameDisplay := acct.DisplayName
	if nameDisplay == "" {
		nameDisplay = "(not set)"
	}

	fields := []struct {
		label  string
		value  string
		danger bool
	}{
		{"Display name", nameDisplay, false},
		{"Theme", t.Label + "  (" + t.ID + ")", false},
		{"Clear data", "debts and payments", true},
		{"Delete account", "everything, then onboarding", true},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			if f.danger {
				formBody.WriteString(dangerStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			} else {
				formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			}
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change  [t] next theme  [Esc] cancel"))

	onboarding := "complete"
	if !acct.OnboardingComplete {
		onboarding = "pending"
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Account id:      ") + valueStyle.Render(acct.ID) + "\n")
	infoBody.WriteString(labelStyle.Render("Created:         ") + valueStyle.Render(cli.FormatWhen(acct.CreatedAt, a.now())) + "\n")
	infoBody.WriteString(labelStyle.Render("Onboarding:      ") + valueStyle.Render(onboarding) + "\n")
	infoBody.WriteString(labelStyle.Render("Data directory:  ") + valueStyle.Render(a.dataDir) + "\n")
	infoBody.WriteString(labelStyle.Render("Tracked:         ") +
		valueStyle.Render(fmt.Sprintf("%d debts, %d payments", len(a.debts), len(a.payments))))

	var b strings.Builder
	b.WriteString(components.ContentCard(t, "Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard(t, "About", infoBody.String(), cw))
	return b.String()
}
