// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/payoff/internal/calc"
)

// FormatCurrency renders a USD amount with thousands separators and two
// decimals, rounding half away from zero: 1234.5 -> "$1,234.50",
// -1234.56 -> "-$1,234.56". NaN and infinities render as "$0.00".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}

	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	_, cents, _ := strings.Cut(d.StringFixed(2), ".")
	s := "$" + humanize.BigComma(d.BigInt()) + "." + cents
	if neg {
		return "-" + s
	}
	return s
}

// FormatCurrencyShort drops the cents for whole-dollar displays like
// metric cards: 17308.48 -> "$17,308".
func FormatCurrencyShort(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0"
	}
	d := decimal.NewFromFloat(amount).Round(0)
	s := "$" + humanize.BigComma(d.Abs().BigInt())
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatRate formats an APR already expressed in percent: 19.9 -> "19.90%".
func FormatRate(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatMonths renders a payoff horizon: 0 -> "paid off", 25 -> "2y 1m",
// 7 -> "7 mo", Never -> "never".
func FormatMonths(m calc.Months) string {
	switch {
	case m.IsNever():
		return "never"
	case m == 0:
		return "paid off"
	case m < 12:
		return fmt.Sprintf("%d mo", m)
	}
	years, months := int(m)/12, int(m)%12
	if months == 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dy %dm", years, months)
}

// FormatPayoffDate renders the month a horizon starting at from ends in.
func FormatPayoffDate(from time.Time, m calc.Months) string {
	switch {
	case m.IsNever():
		return "never"
	case m == 0:
		return "now"
	}
	d, _ := calc.PayoffDate(from, m)
	return d.Format("Jan 2006")
}

// FormatWhen renders t relative to now: "3 days ago".
func FormatWhen(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ParseAmount reads a user-typed number such as "$1,200.50" or "19.9%".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, errors.New("required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.New("not a number")
	}
	return d.InexactFloat64(), nil
}
