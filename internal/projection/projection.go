// Package projection compounds an annual inflation rate into a month-by-month
// price series.
package projection

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyRate converts an annual percentage change into the geometric
// monthly growth rate whose twelfth power equals one plus the annual rate.
// An arithmetic annualPercent/12 split would overstate cumulative growth
// when compounded monthly.
func MonthlyRate(annualPercent float64) float64 {
	return math.Pow(1+annualPercent/100, 1.0/12) - 1
}

// Project returns the projected prices for months 0 through months
// inclusive, each rounded to 2 decimal places. Entry 0 is the rounded
// starting amount. A nil annualPercent means the rate is unknown and no
// series can be produced; Project returns nil in that case.
//
// months must be non-negative; callers clamp before invoking.
// An annualPercent of -100 yields a monthly rate of -1, collapsing every
// entry after month 0 to zero. That is total value destruction, not an
// error.
func Project(startAmount float64, annualPercent *float64, months int) []float64 {
	if annualPercent == nil {
		return nil
	}

	monthlyRate := MonthlyRate(*annualPercent)
	series := make([]float64, months+1)
	for m := 0; m <= months; m++ {
		series[m] = round2(startAmount * math.Pow(1+monthlyRate, float64(m)))
	}
	return series
}

// round2 rounds half away from zero at 2 decimal places. Going through
// decimal avoids the float drift of printf-style rounding.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
