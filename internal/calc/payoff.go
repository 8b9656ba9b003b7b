// Package calc holds the payoff and projection math shared by every payoff front-end.
//
// Every function is total: degenerate input yields 0 or Never instead of an
// error, so display code can call these without checking anything.
package calc

import (
	"math"
	"strconv"
	"time"
)

// Months is a payoff horizon in whole months, or Never.
type Months int

// Never marks a debt whose payment does not outpace its interest.
const Never Months = -1

// MaxMonths is the largest finite horizon MonthsToPayoff reports. Longer
// horizons saturate here instead of overflowing int.
const MaxMonths Months = math.MaxInt32

// MaxScheduleMonths caps PayoffSchedule output at 50 years.
const MaxScheduleMonths = 600

// IsNever reports whether the horizon is infinite.
func (m Months) IsNever() bool {
	return m < 0
}

func (m Months) String() string {
	if m.IsNever() {
		return "never"
	}
	return strconv.Itoa(int(m))
}

// monthlyRate converts an APR in percent to a per-month fraction.
func monthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 100 / 12
}

// MonthsToPayoff returns how many monthly payments retire balance at the
// given APR, rounding a partial final month up.
func MonthsToPayoff(balance, annualRatePct, monthlyPayment float64) Months {
	if balance <= 0 {
		return 0
	}
	if monthlyPayment <= 0 {
		return Never
	}

	r := monthlyRate(annualRatePct)
	if r == 0 {
		return ceilMonths(balance / monthlyPayment)
	}
	if monthlyPayment <= balance*r {
		return Never
	}

	return ceilMonths(-math.Log(1-balance*r/monthlyPayment) / math.Log(1+r))
}

func ceilMonths(n float64) Months {
	switch {
	case math.IsNaN(n):
		return Never
	case n >= float64(MaxMonths):
		return MaxMonths
	}
	return Months(math.Ceil(n))
}

// TotalInterest estimates the interest paid over the life of the debt.
func TotalInterest(balance, annualRatePct, monthlyPayment float64) float64 {
	months := MonthsToPayoff(balance, annualRatePct, monthlyPayment)
	if months.IsNever() || months == 0 {
		return 0
	}
	return math.Max(0, monthlyPayment*float64(months)-balance)
}

// ScheduleEntry is one month of an amortization schedule.
type ScheduleEntry struct {
	Month            int     `json:"month"`
	RemainingBalance float64 `json:"remainingBalance"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
}

// PayoffSchedule walks the balance down month by month. It stops when the
// balance reaches zero, when a payment no longer covers the month's interest,
// or after MaxScheduleMonths entries.
func PayoffSchedule(balance, annualRatePct, monthlyPayment float64) []ScheduleEntry {
	r := monthlyRate(annualRatePct)
	remaining := balance

	var schedule []ScheduleEntry
	for month := 1; month <= MaxScheduleMonths && remaining > 0; month++ {
		interest := remaining * r
		principal := math.Min(monthlyPayment-interest, remaining)
		if principal <= 0 {
			break
		}
		remaining -= principal
		schedule = append(schedule, ScheduleEntry{
			Month:            month,
			RemainingBalance: remaining,
			Interest:         interest,
			Principal:        principal,
		})
	}
	return schedule
}

// PercentPaid returns the paid-off share of originalBalance in [0, 1].
func PercentPaid(balance, originalBalance float64) float64 {
	if originalBalance <= 0 {
		return 0
	}
	pct := 1 - balance/originalBalance
	switch {
	case pct < 0:
		return 0
	case pct > 1:
		return 1
	}
	return pct
}

// PayoffDate returns the calendar month the last payment lands in.
// ok is false when the horizon is Never.
func PayoffDate(from time.Time, m Months) (date time.Time, ok bool) {
	if m.IsNever() {
		return time.Time{}, false
	}
	y, mo, _ := from.Date()
	return time.Date(y, mo+time.Month(m), 1, 0, 0, 0, 0, from.Location()), true
}
