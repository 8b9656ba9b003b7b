package calc

import "github.com/theirongolddev/payoff/internal/model"

// Summary is the portfolio-wide view across all debts.
type Summary struct {
	Debts           int     `json:"debts"`
	TotalBalance    float64 `json:"totalBalance"`
	TotalOriginal   float64 `json:"totalOriginal"`
	TotalMinPayment float64 `json:"totalMinPayment"`
	TotalInterest   float64 `json:"totalInterest"`
	PercentPaid     float64 `json:"percentPaid"`
	DebtFreeIn      Months  `json:"debtFreeIn"` // longest payoff horizon; Never if any debt never clears
}

// Summarize aggregates debts assuming each is paid at its minimum payment.
func Summarize(debts []model.Debt) Summary {
	s := Summary{Debts: len(debts)}
	for _, d := range debts {
		s.TotalBalance += d.Balance
		s.TotalOriginal += d.OriginalBalance
		s.TotalMinPayment += d.MinPayment

		m := MonthsToPayoff(d.Balance, d.Rate, d.MinPayment)
		switch {
		case m.IsNever():
			s.DebtFreeIn = Never
		case !s.DebtFreeIn.IsNever() && m > s.DebtFreeIn:
			s.DebtFreeIn = m
		}
		s.TotalInterest += TotalInterest(d.Balance, d.Rate, d.MinPayment)
	}
	s.PercentPaid = PercentPaid(s.TotalBalance, s.TotalOriginal)
	return s
}
