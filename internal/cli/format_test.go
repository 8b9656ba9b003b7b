package cli

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/theme"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{999.995, "$1,000.00"},
		{1.005, "$1.01"},
		{0.004, "$0.00"},
		{-0.004, "$0.00"},
		{-1234.56, "-$1,234.56"},
		{-0.005, "-$0.01"},
		{100, "$100.00"},
		{1e20, "$100,000,000,000,000,000,000.00"},
		{math.NaN(), "$0.00"},
		{math.Inf(1), "$0.00"},
		{math.Inf(-1), "$0.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCurrencyShort(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{17308.48, "$17,308"},
		{0.5, "$1"},
		{-2500, "-$2,500"},
		{-1e20, "-$100,000,000,000,000,000,000"},
		{math.NaN(), "$0"},
	}
	for _, tt := range tests {
		if got := FormatCurrencyShort(tt.in); got != tt.want {
			t.Errorf("FormatCurrencyShort(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMonths(t *testing.T) {
	tests := []struct {
		in   calc.Months
		want string
	}{
		{calc.Never, "never"},
		{0, "paid off"},
		{7, "7 mo"},
		{12, "1y"},
		{25, "2y 1m"},
	}
	for _, tt := range tests {
		if got := FormatMonths(tt.in); got != tt.want {
			t.Errorf("FormatMonths(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPayoffDate(t *testing.T) {
	from := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatPayoffDate(from, 25); got != "Feb 2028" {
		t.Fatalf("FormatPayoffDate = %q, want Feb 2028", got)
	}
	if got := FormatPayoffDate(from, calc.Never); got != "never" {
		t.Fatalf("FormatPayoffDate(Never) = %q", got)
	}
}

func TestFormatWhen(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	if got := FormatWhen(now.Add(-72*time.Hour), now); got != "3 days ago" {
		t.Fatalf("FormatWhen = %q, want 3 days ago", got)
	}
	if got := FormatWhen(time.Time{}, now); got != "-" {
		t.Fatalf("FormatWhen(zero) = %q", got)
	}
}

func TestFormatRateAndPercent(t *testing.T) {
	if got := FormatRate(19.9); got != "19.90%" {
		t.Fatalf("FormatRate = %q", got)
	}
	if got := FormatPercent(0.3); got != "30.0%" {
		t.Fatalf("FormatPercent = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	r := NewRenderer(theme.Terminal)
	out := r.Table(Table{
		Title:   "Debts",
		Headers: []string{"Name", "Balance"},
		Rows: [][]string{
			{"Visa", "$1,000.00"},
			SeparatorRow,
			{"Total", "$1,000.00"},
		},
	})
	for _, want := range []string{"Debts", "Name", "Visa", "$1,000.00", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 8 {
		t.Fatalf("table has %d lines, want 8:\n%s", got, out)
	}

	if r.Table(Table{}) != "" {
		t.Fatal("empty table rendered output")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100}); got != "▁▄█" {
		t.Fatalf("Sparkline = %q, want ▁▄█", got)
	}
	if got := Sparkline(nil); got != "" {
		t.Fatalf("Sparkline(nil) = %q", got)
	}
}

func TestDownsample(t *testing.T) {
	in := make([]float64, 100)
	for i := range in {
		in[i] = float64(i)
	}
	got := Downsample(in, 10)
	if len(got) != 10 || got[0] != 0 || got[9] != 99 {
		t.Fatalf("Downsample = %v", got)
	}
	if got := Downsample(in[:5], 10); len(got) != 5 {
		t.Fatalf("short input resized to %d", len(got))
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1200", 1200, true},
		{" $1,200.50 ", 1200.5, true},
		{"19.9%", 19.9, true},
		{"-5", -5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseAmount(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
