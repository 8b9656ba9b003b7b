package calc

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/payoff/internal/model"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMonthsToPayoff(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		rate    float64
		payment float64
		want    Months
	}{
		{"card at 19.9%", 1000, 19.9, 50, 25},
		{"car loan", 5000, 6, 100, 58},
		{"zero rate divides", 1000, 0, 300, 4},
		{"zero rate exact", 1200, 0, 100, 12},
		{"payment below interest", 1000, 19.9, 16, Never},
		{"payment equals interest", 1200, 12, 12, Never},
		{"zero payment", 1000, 5, 0, Never},
		{"negative payment", 1000, 5, -10, Never},
		{"already paid", 0, 19.9, 50, 0},
		{"negative balance", -5, 19.9, 50, 0},
		{"one payment clears", 40, 12, 50, 1},
		{"huge ratio saturates", 1e19, 0, 1, MaxMonths},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthsToPayoff(tt.balance, tt.rate, tt.payment)
			if got != tt.want {
				t.Fatalf("MonthsToPayoff(%v, %v, %v) = %v, want %v", tt.balance, tt.rate, tt.payment, got, tt.want)
			}
		})
	}
}

func TestMonthsString(t *testing.T) {
	if got := Never.String(); got != "never" {
		t.Fatalf("Never.String() = %q", got)
	}
	if got := Months(25).String(); got != "25" {
		t.Fatalf("Months(25).String() = %q", got)
	}
}

func TestTotalInterest(t *testing.T) {
	if got := TotalInterest(1000, 19.9, 50); !approx(got, 250, 1e-9) {
		t.Fatalf("TotalInterest(1000, 19.9, 50) = %v, want 250", got)
	}
	if got := TotalInterest(1e19, 0, 1); got != 0 {
		t.Fatalf("TotalInterest(1e19, 0, 1) = %v, want 0 for a saturated zero-rate horizon", got)
	}
	if got := MonthsToPayoff(1e19, 0, 1); got.IsNever() {
		t.Fatalf("MonthsToPayoff(1e19, 0, 1) = never, want a finite horizon")
	}
	if got := TotalInterest(1000, 19.9, 16); got != 0 {
		t.Fatalf("TotalInterest for never-payoff = %v, want 0", got)
	}
	if got := TotalInterest(0, 19.9, 50); got != 0 {
		t.Fatalf("TotalInterest for zero balance = %v, want 0", got)
	}
	// Rounding the last month up at zero rate would otherwise show as interest.
	if got := TotalInterest(1000, 0, 300); got < 0 {
		t.Fatalf("TotalInterest at zero rate = %v, want >= 0", got)
	}
}

func TestPayoffSchedule(t *testing.T) {
	sched := PayoffSchedule(1000, 19.9, 50)
	if len(sched) != 25 {
		t.Fatalf("len(schedule) = %d, want 25", len(sched))
	}

	for i, e := range sched {
		if e.Month != i+1 {
			t.Fatalf("entry %d Month = %d, want %d", i, e.Month, i+1)
		}
		if e.RemainingBalance < 0 {
			t.Fatalf("entry %d RemainingBalance = %v, want >= 0", i, e.RemainingBalance)
		}
		if e.Principal <= 0 {
			t.Fatalf("entry %d Principal = %v, want > 0", i, e.Principal)
		}
		if i > 0 && e.RemainingBalance >= sched[i-1].RemainingBalance {
			t.Fatalf("entry %d balance did not decrease", i)
		}
	}

	first := sched[0]
	if !approx(first.Interest, 16.5833, 1e-3) {
		t.Fatalf("first Interest = %v, want ~16.58", first.Interest)
	}
	if !approx(first.Principal, 50-first.Interest, 1e-9) {
		t.Fatalf("first Principal = %v, want payment minus interest", first.Principal)
	}
	if last := sched[len(sched)-1]; last.RemainingBalance != 0 {
		t.Fatalf("last RemainingBalance = %v, want 0", last.RemainingBalance)
	}
}

func TestPayoffScheduleMatchesMonths(t *testing.T) {
	cases := [][3]float64{{1000, 19.9, 50}, {5000, 6, 100}, {1000, 0, 300}, {250, 24.99, 25}}
	for _, c := range cases {
		want := MonthsToPayoff(c[0], c[1], c[2])
		got := len(PayoffSchedule(c[0], c[1], c[2]))
		if got != int(want) {
			t.Fatalf("len(PayoffSchedule(%v)) = %d, MonthsToPayoff = %d", c, got, want)
		}
	}
}

func TestPayoffScheduleDegenerate(t *testing.T) {
	if got := PayoffSchedule(0, 19.9, 50); len(got) != 0 {
		t.Fatalf("zero balance schedule len = %d, want 0", len(got))
	}
	if got := PayoffSchedule(-10, 19.9, 50); len(got) != 0 {
		t.Fatalf("negative balance schedule len = %d, want 0", len(got))
	}
	if got := PayoffSchedule(1000, 19.9, 16); len(got) != 0 {
		t.Fatalf("underwater schedule len = %d, want 0", len(got))
	}
	if got := PayoffSchedule(1000, 5, 0); len(got) != 0 {
		t.Fatalf("zero payment schedule len = %d, want 0", len(got))
	}
}

func TestPayoffScheduleCapped(t *testing.T) {
	// Payment barely above the monthly interest takes centuries.
	got := PayoffSchedule(1_000_000, 12, 10_001)
	if len(got) != MaxScheduleMonths {
		t.Fatalf("len(schedule) = %d, want %d", len(got), MaxScheduleMonths)
	}
	if got[len(got)-1].Month != MaxScheduleMonths {
		t.Fatalf("last Month = %d, want %d", got[len(got)-1].Month, MaxScheduleMonths)
	}
}

func TestPercentPaid(t *testing.T) {
	tests := []struct {
		balance, original, want float64
	}{
		{70, 100, 0.3},
		{0, 100, 1},
		{100, 100, 0},
		{150, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := PercentPaid(tt.balance, tt.original); !approx(got, tt.want, 1e-9) {
			t.Fatalf("PercentPaid(%v, %v) = %v, want %v", tt.balance, tt.original, got, tt.want)
		}
	}
}

func TestPayoffDate(t *testing.T) {
	from := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

	got, ok := PayoffDate(from, 25)
	if !ok {
		t.Fatal("PayoffDate ok = false, want true")
	}
	want := time.Date(2028, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("PayoffDate = %v, want %v", got, want)
	}

	if _, ok := PayoffDate(from, Never); ok {
		t.Fatal("PayoffDate(Never) ok = true, want false")
	}
}

func TestSummarize(t *testing.T) {
	debts := []model.Debt{
		{Name: "Card", Balance: 1000, OriginalBalance: 2000, Rate: 19.9, MinPayment: 50},
		{Name: "Car", Balance: 5000, OriginalBalance: 8000, Rate: 6, MinPayment: 100},
	}
	s := Summarize(debts)

	if s.Debts != 2 {
		t.Fatalf("Debts = %d, want 2", s.Debts)
	}
	if s.TotalBalance != 6000 || s.TotalOriginal != 10000 || s.TotalMinPayment != 150 {
		t.Fatalf("totals = %v/%v/%v", s.TotalBalance, s.TotalOriginal, s.TotalMinPayment)
	}
	if s.DebtFreeIn != 58 {
		t.Fatalf("DebtFreeIn = %v, want 58", s.DebtFreeIn)
	}
	if !approx(s.PercentPaid, 0.4, 1e-9) {
		t.Fatalf("PercentPaid = %v, want 0.4", s.PercentPaid)
	}

	debts = append(debts, model.Debt{Name: "Loan", Balance: 1000, OriginalBalance: 1000, Rate: 19.9, MinPayment: 16})
	if s := Summarize(debts); !s.DebtFreeIn.IsNever() {
		t.Fatalf("DebtFreeIn = %v, want never", s.DebtFreeIn)
	}

	if s := Summarize(nil); s.Debts != 0 || s.DebtFreeIn != 0 {
		t.Fatalf("Summarize(nil) = %+v, want zero", s)
	}
}
