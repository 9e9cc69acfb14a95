package calculation

import (
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// growthPrecision bounds the number of fractional digits kept while compounding;
// exact decimal multiplication would otherwise grow the mantissa with every period.
const growthPrecision = 24

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
	decimalTwelve  = decimal.NewFromInt(monthsPerYear)
)

// growthFactor returns (1+rate)^periods by repeated squaring.
func growthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	result := decimalOne
	base := decimalOne.Add(rate)
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(growthPrecision)
		}
		base = base.Mul(base).Round(growthPrecision)
	}
	return result
}

// FutureValue projects a level annual contribution, paid monthly at the end of each
// month, forward over years at annualReturnPercent compounded monthly.
func FutureValue(annualContribution, annualReturnPercent decimal.Decimal, years int) decimal.Decimal {
	if annualContribution.IsZero() || years <= 0 {
		return decimal.Zero
	}
	months := years * monthsPerYear

	if annualReturnPercent.IsZero() {
		// monthly contribution × months
		return annualContribution.Mul(decimal.NewFromInt(int64(months))).Div(decimalTwelve)
	}

	monthlyRate := annualReturnPercent.Div(decimalHundred).Div(decimalTwelve)
	factor := growthFactor(monthlyRate, months)

	// (annual/12) × (factor − 1) / (pct/1200) simplifies to annual × (factor − 1) × 100 / pct
	return annualContribution.Mul(factor.Sub(decimalOne)).Mul(decimalHundred).Div(annualReturnPercent)
}

// AnnualWithdrawal sizes the level end-of-year withdrawal that depletes principal
// over years while the remaining balance earns annualReturn (a fraction, not a percent).
func AnnualWithdrawal(principal, annualReturn decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || principal.IsZero() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(years))
	if annualReturn.IsZero() {
		return principal.Div(n)
	}

	factor := growthFactor(annualReturn, years)
	denominator := factor.Sub(decimalOne)
	if denominator.IsZero() {
		return principal.Div(n)
	}
	return principal.Mul(annualReturn).Mul(factor).Div(denominator)
}

// ProjectBalances returns the future value of a level annual contribution at the end
// of each year from 1 through years.
func ProjectBalances(annualContribution, annualReturnPercent decimal.Decimal, years int) []decimal.Decimal {
	if years <= 0 {
		return nil
	}
	balances := make([]decimal.Decimal, years)
	for y := 1; y <= years; y++ {
		balances[y-1] = FutureValue(annualContribution, annualReturnPercent, y)
	}
	return balances
}
