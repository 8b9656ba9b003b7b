package model

import "time"

// Payment is an immutable record of money applied toward a debt.
// DebtID is not a live reference: the debt may since have been deleted.
type Payment struct {
	ID     string    `json:"id"`
	DebtID string    `json:"debtId"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// PaymentsFor returns the payments recorded against debtID, in ledger order.
func PaymentsFor(payments []Payment, debtID string) []Payment {
	var out []Payment
	for _, p := range payments {
		if p.DebtID == debtID {
			out = append(out, p)
		}
	}
	return out
}

// TotalPaid sums the amounts of payments.
func TotalPaid(payments []Payment) float64 {
	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}
