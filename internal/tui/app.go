// Package tui provides the interactive Bubble Tea dashboard for payoff.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/prefs"
	"github.com/theirongolddev/payoff/internal/theme"
	"github.com/theirongolddev/payoff/internal/tui/components"
)

const (
	tabDebts = iota
	tabBudget
	tabInvest
	tabSettings
)

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 160
	minContentHeight = 5
)

// Options wires the dashboard to its stores.
type Options struct {
	Ledger  *ledger.Ledger
	Prefs   *prefs.Prefs
	Log     *zap.SugaredLogger
	Invest  config.InvestConfig
	DataDir string
	// Now defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	ctx    context.Context
	ledger *ledger.Ledger
	prefs  *prefs.Prefs
	log    *zap.SugaredLogger
	now    func() time.Time

	// Data
	debts    []model.Debt
	payments []model.Payment
	loaded   bool
	loadErr  error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	debtsState debtsState
	invest     investState
	settings   settingsState
	dataDir    string

	// Active huh form, if any
	form     *huh.Form
	formKind formKind
	formVals *formValues

	// Flash message in the status bar
	status    string
	statusErr bool
	statusSeq int
}

// NewApp creates the dashboard model. ctx bounds every store operation.
func NewApp(ctx context.Context, opts Options) App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return App{
		ctx:     ctx,
		ledger:  opts.Ledger,
		prefs:   opts.Prefs,
		log:     log,
		now:     now,
		dataDir: opts.DataDir,
		invest: investState{
			monthly:   opts.Invest.MonthlyContribution,
			returnPct: opts.Invest.AnnualReturnPct,
			years:     opts.Invest.Years,
		},
		settings: newSettingsState(),
		formVals: &formValues{},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.loadLedgerCmd()
}

func (a App) theme() theme.Theme {
	return a.prefs.Theme()
}

// flash shows msg in the status bar for a few seconds.
func (a App) flash(msg string, isErr bool) (App, tea.Cmd) {
	a.statusSeq++
	a.status = msg
	a.statusErr = isErr
	return a, clearStatusAfter(a.statusSeq)
}

func (a App) flashErr(err error) (App, tea.Cmd) {
	a.log.Errorw("dashboard operation failed", "error", err)
	return a.flash(describeErr(err), true)
}

// describeErr turns a store error into a short status line.
func describeErr(err error) string {
	switch {
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return "Storage unavailable; nothing was saved"
	case errors.Is(err, ledger.ErrMalformedData):
		return "Stored data is unreadable"
	case errors.Is(err, ledger.ErrInvalidDebt), errors.Is(err, ledger.ErrInvalidPayment):
		return "Invalid input: " + err.Error()
	case errors.Is(err, prefs.ErrUnknownTheme):
		return "Unknown theme"
	default:
		return err.Error()
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72)).WithHeight(msg.Height)
		}
		return a, nil

	case ledgerLoadedMsg:
		a.loaded = true
		if msg.err != nil {
			a.loadErr = msg.err
			a.log.Errorw("loading ledger", "error", msg.err)
		} else {
			a.loadErr = nil
			a.debts = msg.debts
			a.payments = msg.payments
			a.clampCursor()
		}
		if !a.prefs.Account().OnboardingComplete {
			return a.startOnboarding()
		}
		return a, nil

	case debtsChangedMsg:
		if msg.err != nil {
			return a.flashErr(msg.err)
		}
		a.debts = msg.debts
		a.clampCursor()
		return a.flash(msg.status, false)

	case paymentRecordedMsg:
		if msg.err != nil {
			// The payment may have been persisted before the failure.
			var cmd tea.Cmd
			a, cmd = a.flashErr(msg.err)
			return a, tea.Batch(cmd, a.loadLedgerCmd())
		}
		a.debts = msg.snap.Debts
		a.payments = msg.snap.Payments
		a.clampCursor()
		return a.flash(msg.status, false)

	case prefsChangedMsg:
		if msg.err != nil {
			return a.flashErr(msg.err)
		}
		return a.flash(msg.status, false)

	case dataClearedMsg:
		if msg.err != nil {
			return a.flashErr(msg.err)
		}
		a.debts = nil
		a.payments = nil
		a.debtsState = debtsState{}
		a.settings.cursor = 0
		if msg.accountReset {
			return a.startOnboarding()
		}
		return a.flash("All data cleared", false)

	case statusClearMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
			a.statusErr = false
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.form != nil || !a.loaded {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil
	}

	// Forward everything else (cursor blinks, form internals).
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabDebts:
		if m, cmd, ok := a.handleDebtsKey(key); ok {
			return m, cmd
		}
	case tabInvest:
		if key == "e" || key == "enter" {
			return a.openForm(formInvest, newInvestForm(a.formVals, a.invest))
		}
	case tabSettings:
		if m, cmd, ok := a.handleSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadLedgerCmd()
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  payoff needs at least %d columns.\n", a.width, minTerminalWidth)
	}
	t := a.theme()
	if !a.loaded {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("Loading ledger..."),
			lipgloss.WithWhitespaceBackground(t.Background))
	}
	if a.form != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.form.View())
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	t := a.theme()
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(t, a.activeTab, w)
	statusBar := components.RenderStatusBar(t, w, a.hints(), a.status, a.statusErr)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	if a.loadErr != nil {
		content = components.ContentCard(t, "Could not load your ledger",
			lipgloss.NewStyle().Foreground(t.Danger).Background(t.Surface).Render(describeErr(a.loadErr))+
				"\n\nPress r to retry.", cw)
	} else {
		switch a.activeTab {
		case tabDebts:
			content = a.renderDebtsTab(cw)
		case tabBudget:
			content = a.renderBudgetTab(cw)
		case tabInvest:
			content = a.renderInvestTab(cw)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch a.activeTab {
	case tabDebts:
		return "[a]dd [p]ay [e]dit [D]elete  [?]help [q]uit"
	case tabInvest:
		return "[e]dit assumptions  [?]help [q]uit"
	case tabSettings:
		return "[j/k] move [enter] change  [?]help [q]uit"
	}
	return "[?]help [q]uit"
}

func (a App) viewHelp() string {
	t := a.theme()

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"d b i x", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move selection"},
		}},
		{"Debts", [][2]string{
			{"a", "Add a debt"},
			{"p", "Record a payment"},
			{"e", "Edit selected debt"},
			{"D", "Delete selected debt"},
		}},
		{"General", [][2]string{
			{"r", "Reload from disk"},
			{"esc", "Cancel form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n" + sectionStyle.Render(s.title) + "\n")
		for _, kv := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", kv[0])), descStyle.Render(kv[1]))
		}
	}
	b.WriteString("\n" + dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	n := strings.Count(s, "\n") + 1
	if n >= h {
		return s
	}
	return s + strings.Repeat("\n", h-n)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
