package calc

import "math"

// InvestmentGrowth is the future value of a fixed monthly contribution
// compounded monthly (an ordinary annuity).
func InvestmentGrowth(monthlyContribution, annualReturnPct, years float64) float64 {
	if monthlyContribution <= 0 || years <= 0 {
		return 0
	}

	r := monthlyRate(annualReturnPct)
	totalMonths := years * 12
	if r == 0 {
		return monthlyContribution * totalMonths
	}
	return monthlyContribution * (math.Pow(1+r, totalMonths) - 1) / r
}

// Growth splits a projection into what was put in and what it earned.
type Growth struct {
	FutureValue float64 `json:"futureValue"`
	Contributed float64 `json:"contributed"`
	Earnings    float64 `json:"earnings"`
}

// Finite reports whether the projection fits in a float64. Extreme returns
// over long horizons overflow to +Inf.
func (g Growth) Finite() bool {
	for _, v := range []float64{g.FutureValue, g.Contributed, g.Earnings} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// InvestmentBreakdown projects growth and separates contributions from earnings.
func InvestmentBreakdown(monthlyContribution, annualReturnPct, years float64) Growth {
	fv := InvestmentGrowth(monthlyContribution, annualReturnPct, years)
	if fv == 0 {
		return Growth{}
	}
	contributed := monthlyContribution * years * 12
	return Growth{
		FutureValue: fv,
		Contributed: contributed,
		Earnings:    math.Max(0, fv-contributed),
	}
}

// GrowthByYear returns the projected value at the end of each whole year,
// for charting. A partial final year is included.
func GrowthByYear(monthlyContribution, annualReturnPct, years float64) []float64 {
	if monthlyContribution <= 0 || years <= 0 {
		return nil
	}
	n := int(math.Ceil(years))
	if n > MaxScheduleMonths/12 {
		n = MaxScheduleMonths / 12
	}
	out := make([]float64, n)
	for i := range out {
		y := math.Min(float64(i+1), years)
		out[i] = InvestmentGrowth(monthlyContribution, annualReturnPct, y)
	}
	return out
}
