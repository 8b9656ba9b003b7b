package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/theme"
)

type formKind int

const (
	formNone formKind = iota
	formOnboarding
	formAddDebt
	formEditDebt
	formPay
	formDeleteDebt
	formInvest
	formReset
	formResetAccount
)

// formValues is shared by pointer with the active huh form, so it must
// outlive the App value copies Bubble Tea makes on every Update.
type formValues struct {
	name       string
	balance    string
	rate       string
	minPayment string
	amount     string

	displayName string
	themeID     string

	monthly string
	ret     string
	years   string

	confirm bool
	target  model.Debt
}

func validateNonNegative(s string) error {
	v, err := cli.ParseAmount(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("must be zero or more")
	}
	return nil
}

func validatePositive(s string) error {
	v, err := cli.ParseAmount(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return errors.New("must be more than zero")
	}
	return nil
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func themeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		opts[i] = huh.NewOption(t.Label, t.ID)
	}
	return opts
}

func debtFields(v *formValues) []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("Name").Placeholder("Visa").Value(&v.name).Validate(validateName),
		huh.NewInput().Title("Balance").Placeholder("1000.00").Value(&v.balance).Validate(validateNonNegative),
		huh.NewInput().Title("APR %").Placeholder("19.9").Value(&v.rate).Validate(validateNonNegative),
		huh.NewInput().Title("Minimum payment").Placeholder("50.00").Value(&v.minPayment).Validate(validatePositive),
	}
}

func newAddDebtForm(v *formValues) *huh.Form {
	*v = formValues{}
	return huh.NewForm(huh.NewGroup(debtFields(v)...).Title("Add a debt"))
}

func newEditDebtForm(v *formValues, d model.Debt) *huh.Form {
	*v = formValues{
		target:     d,
		name:       d.Name,
		balance:    strconv.FormatFloat(d.Balance, 'f', 2, 64),
		rate:       strconv.FormatFloat(d.Rate, 'f', -1, 64),
		minPayment: strconv.FormatFloat(d.MinPayment, 'f', 2, 64),
	}
	return huh.NewForm(huh.NewGroup(debtFields(v)...).
		Title("Edit " + d.Name).
		Description(fmt.Sprintf("Balance is capped at the original %s.", cli.FormatCurrency(d.OriginalBalance))))
}

func newPayForm(v *formValues, d model.Debt) *huh.Form {
	*v = formValues{target: d, amount: strconv.FormatFloat(d.MinPayment, 'f', 2, 64)}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Payment toward " + d.Name).
			Description("Balance " + cli.FormatCurrency(d.Balance)).
			Value(&v.amount).
			Validate(validatePositive),
	))
}

func newConfirmForm(v *formValues, title, description, affirm string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative(affirm).
			Negative("Cancel").
			Value(&v.confirm),
	))
}

func newInvestForm(v *formValues, in investState) *huh.Form {
	*v = formValues{
		monthly: strconv.FormatFloat(in.monthly, 'f', -1, 64),
		ret:     strconv.FormatFloat(in.returnPct, 'f', -1, 64),
		years:   strconv.FormatFloat(in.years, 'f', -1, 64),
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Monthly contribution").Value(&v.monthly).Validate(validateNonNegative),
		huh.NewInput().Title("Annual return %").Value(&v.ret).Validate(validateNonNegative),
		huh.NewInput().Title("Years").Value(&v.years).Validate(validateNonNegative),
	).Title("Investment assumptions"))
}

// openForm activates f sized to the window.
func (a App) openForm(kind formKind, f *huh.Form) (App, tea.Cmd) {
	f = f.WithTheme(huh.ThemeCharm()).WithShowHelp(true)
	if a.width > 0 {
		f = f.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
	a.form = f
	a.formKind = kind
	return a, f.Init()
}

func (a App) closeForm() App {
	a.form = nil
	a.formKind = formNone
	return a
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		if a.formKind == formOnboarding {
			// Skipping onboarding still marks it done.
			return a.finishOnboarding(false)
		}
		return a.closeForm(), nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submitForm()
	case huh.StateAborted:
		if a.formKind == formOnboarding {
			return a.finishOnboarding(false)
		}
		return a.closeForm(), nil
	}
	return a, cmd
}

// submitForm turns a completed form into the matching store operation.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	v := a.formVals
	kind := a.formKind
	a = a.closeForm()

	switch kind {
	case formOnboarding:
		return a.finishOnboarding(true)

	case formAddDebt:
		nd := model.NewDebt{Name: strings.TrimSpace(v.name)}
		nd.Balance, _ = cli.ParseAmount(v.balance)
		nd.Rate, _ = cli.ParseAmount(v.rate)
		nd.MinPayment, _ = cli.ParseAmount(v.minPayment)
		return a, a.addDebtCmd(nd)

	case formEditDebt:
		var patch model.DebtPatch
		name := strings.TrimSpace(v.name)
		if name != v.target.Name {
			patch.Name = &name
		}
		if bal, err := cli.ParseAmount(v.balance); err == nil && bal != v.target.Balance {
			patch.Balance = &bal
		}
		if rate, err := cli.ParseAmount(v.rate); err == nil && rate != v.target.Rate {
			patch.Rate = &rate
		}
		if minPay, err := cli.ParseAmount(v.minPayment); err == nil && minPay != v.target.MinPayment {
			patch.MinPayment = &minPay
		}
		if patch.IsEmpty() {
			return a, nil
		}
		return a, a.updateDebtCmd(v.target.ID, patch)

	case formPay:
		amt, err := cli.ParseAmount(v.amount)
		if err != nil {
			return a, nil
		}
		return a, a.recordPaymentCmd(v.target, amt)

	case formDeleteDebt:
		if !v.confirm {
			return a, nil
		}
		return a, a.deleteDebtCmd(v.target)

	case formInvest:
		a.invest.monthly, _ = cli.ParseAmount(v.monthly)
		a.invest.returnPct, _ = cli.ParseAmount(v.ret)
		a.invest.years, _ = cli.ParseAmount(v.years)
		return a, nil

	case formReset, formResetAccount:
		if !v.confirm {
			return a, nil
		}
		return a, a.clearDataCmd(kind == formResetAccount)
	}
	return a, nil
}
