// Package model defines domain types for payoff debts, payments, and the device account.
package model

import "time"

// Upper bounds on stored amounts and rates, mirrored in the validate tags.
const (
	MaxAmount = 1e12 // dollars
	MaxRate   = 1000 // APR percent
)

// Debt is a tracked liability with a shrinking balance.
type Debt struct {
	ID              string    `json:"id"`
	Name            string    `json:"name" validate:"required"`
	Balance         float64   `json:"balance" validate:"gte=0,lte=1000000000000"`
	OriginalBalance float64   `json:"originalBalance" validate:"gte=0,lte=1000000000000"`
	Rate            float64   `json:"rate" validate:"gte=0,lte=1000"` // APR, percent
	MinPayment      float64   `json:"minPayment" validate:"gt=0,lte=1000000000000"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewDebt is the caller-supplied part of a debt; the ledger assigns
// the id, creation time, and original balance.
type NewDebt struct {
	Name       string  `json:"name" validate:"required" binding:"required"`
	Balance    float64 `json:"balance" validate:"gte=0,lte=1000000000000"`
	Rate       float64 `json:"rate" validate:"gte=0,lte=1000"`
	MinPayment float64 `json:"minPayment" validate:"gt=0,lte=1000000000000"`
}

// DebtPatch holds the editable fields of a debt. Nil fields are left alone.
type DebtPatch struct {
	Name       *string  `json:"name,omitempty"`
	Balance    *float64 `json:"balance,omitempty"`
	Rate       *float64 `json:"rate,omitempty"`
	MinPayment *float64 `json:"minPayment,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p DebtPatch) IsEmpty() bool {
	return p.Name == nil && p.Balance == nil && p.Rate == nil && p.MinPayment == nil
}

// Apply returns d with the patch merged in. Identity fields are never touched.
func (p DebtPatch) Apply(d Debt) Debt {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Balance != nil {
		d.Balance = *p.Balance
	}
	if p.Rate != nil {
		d.Rate = *p.Rate
	}
	if p.MinPayment != nil {
		d.MinPayment = *p.MinPayment
	}
	return d
}

// Clamp pins Balance into [0, OriginalBalance].
func (d Debt) Clamp() Debt {
	if d.Balance < 0 {
		d.Balance = 0
	}
	if d.Balance > d.OriginalBalance {
		d.Balance = d.OriginalBalance
	}
	return d
}

// PaidOff reports whether nothing is owed.
func (d Debt) PaidOff() bool {
	return d.Balance <= 0
}
