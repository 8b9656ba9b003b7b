package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
)

// opTimeout bounds a single store round trip from the dashboard.
const opTimeout = 5 * time.Second

// ledgerLoadedMsg carries the initial (or refreshed) ledger contents.
type ledgerLoadedMsg struct {
	debts    []model.Debt
	payments []model.Payment
	err      error
}

// debtsChangedMsg is sent after any debt mutation.
type debtsChangedMsg struct {
	debts  []model.Debt
	status string
	err    error
}

// paymentRecordedMsg is sent after RecordPayment.
type paymentRecordedMsg struct {
	snap   ledger.Snapshot
	status string
	err    error
}

// prefsChangedMsg is sent after an account or theme write.
type prefsChangedMsg struct {
	status string
	err    error
}

// dataClearedMsg is sent after a reset.
type dataClearedMsg struct {
	accountReset bool
	err          error
}

func (a App) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.ctx, opTimeout)
}

func (a App) loadLedgerCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()

		debts, err := a.ledger.LoadDebts(ctx)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}
		payments, err := a.ledger.LoadPayments(ctx)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}
		return ledgerLoadedMsg{debts: debts, payments: payments}
	}
}

func (a App) addDebtCmd(nd model.NewDebt) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		debts, err := a.ledger.AddDebt(ctx, nd)
		return debtsChangedMsg{debts: debts, status: "Added " + nd.Name, err: err}
	}
}

func (a App) updateDebtCmd(id string, patch model.DebtPatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		debts, err := a.ledger.UpdateDebt(ctx, id, patch)
		return debtsChangedMsg{debts: debts, status: "Saved", err: err}
	}
}

func (a App) deleteDebtCmd(d model.Debt) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		debts, err := a.ledger.DeleteDebt(ctx, d.ID)
		return debtsChangedMsg{debts: debts, status: "Deleted " + d.Name, err: err}
	}
}

func (a App) recordPaymentCmd(d model.Debt, amount float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		snap, err := a.ledger.RecordPayment(ctx, model.Payment{DebtID: d.ID, Amount: amount})
		return paymentRecordedMsg{snap: snap, status: "Payment recorded for " + d.Name, err: err}
	}
}

func (a App) setDisplayNameCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		_, err := a.prefs.SetDisplayName(ctx, name)
		return prefsChangedMsg{status: "Name saved", err: err}
	}
}

func (a App) setThemeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		t, err := a.prefs.SetTheme(ctx, id)
		return prefsChangedMsg{status: "Theme: " + t.Label, err: err}
	}
}

func (a App) clearDataCmd(resetAccount bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.ledger.ClearAllData(ctx); err != nil {
			return dataClearedMsg{err: err}
		}
		if resetAccount {
			if _, err := a.prefs.DeleteAccount(ctx); err != nil {
				return dataClearedMsg{err: err}
			}
		}
		return dataClearedMsg{accountReset: resetAccount}
	}
}

type statusClearMsg struct{ seq int }

// clearStatusAfter expires the flash message unless a newer one replaced it.
func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
