package calc

import "testing"

func TestInvestmentGrowth(t *testing.T) {
	tests := []struct {
		name                 string
		monthly, rate, years float64
		want                 float64
	}{
		{"seven percent decade", 100, 7, 10, 17308.4807},
		{"zero return", 100, 0, 10, 12000},
		{"zero years", 100, 7, 0, 0},
		{"negative years", 100, 7, -1, 0},
		{"zero contribution", 0, 7, 10, 0},
		{"negative contribution", -50, 7, 10, 0},
		{"half year at zero", 100, 0, 0.5, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvestmentGrowth(tt.monthly, tt.rate, tt.years)
			if !approx(got, tt.want, 1e-3) {
				t.Fatalf("InvestmentGrowth(%v, %v, %v) = %v, want %v", tt.monthly, tt.rate, tt.years, got, tt.want)
			}
		})
	}
}

func TestInvestmentGrowthExceedsContributions(t *testing.T) {
	for _, years := range []float64{1, 5, 20, 40} {
		got := InvestmentGrowth(250, 5, years)
		if contributed := 250 * years * 12; got < contributed {
			t.Fatalf("years=%v: growth %v below contributions %v", years, got, contributed)
		}
	}
}

func TestInvestmentBreakdown(t *testing.T) {
	g := InvestmentBreakdown(100, 7, 10)
	if g.Contributed != 12000 {
		t.Fatalf("Contributed = %v, want 12000", g.Contributed)
	}
	if !approx(g.Earnings, g.FutureValue-12000, 1e-9) {
		t.Fatalf("Earnings = %v, want FutureValue - Contributed", g.Earnings)
	}

	if g := InvestmentBreakdown(0, 7, 10); g != (Growth{}) {
		t.Fatalf("InvestmentBreakdown(0, ...) = %+v, want zero", g)
	}
}

func TestGrowthFinite(t *testing.T) {
	if !InvestmentBreakdown(100, 7, 10).Finite() {
		t.Fatal("ordinary projection reported as non-finite")
	}
	if g := InvestmentBreakdown(100, 1000, 100); g.Finite() {
		t.Fatalf("InvestmentBreakdown(100, 1000, 100) = %+v, want non-finite", g)
	}
}

func TestGrowthByYear(t *testing.T) {
	got := GrowthByYear(100, 7, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if !approx(got[9], InvestmentGrowth(100, 7, 10), 1e-9) {
		t.Fatalf("final year = %v, want %v", got[9], InvestmentGrowth(100, 7, 10))
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("year %d value %v not above year %d value %v", i+1, got[i], i, got[i-1])
		}
	}

	if got := GrowthByYear(100, 7, 2.5); len(got) != 3 || !approx(got[2], InvestmentGrowth(100, 7, 2.5), 1e-9) {
		t.Fatalf("partial-year projection = %v", got)
	}
	if got := GrowthByYear(0, 7, 10); got != nil {
		t.Fatalf("GrowthByYear(0, ...) = %v, want nil", got)
	}
}
