package calculation

import (
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalCalculator computes net-of-tax outcomes for withdrawing projected balances.
//
// Pre-tax buckets (traditional + employer match) are ordinary income stacked on top
// of the steady retirement income, so only the incremental income tax is charged to
// the withdrawal. Roth buckets are tax free. Brokerage value is taxed at a flat
// capital gains rate: entirely for a lump sum, and on BrokerageGainFraction of each
// periodic withdrawal (no per-lot cost basis tracking).
type WithdrawalCalculator struct {
	TaxCalc               *ComprehensiveTaxCalculator
	CapitalGainsRate      decimal.Decimal
	BrokerageGainFraction decimal.Decimal
}

// NewWithdrawalCalculator creates a withdrawal calculator for a tax year.
func NewWithdrawalCalculator(taxYear domain.TaxYear) *WithdrawalCalculator {
	return &WithdrawalCalculator{
		TaxCalc:               NewComprehensiveTaxCalculator(taxYear),
		CapitalGainsRate:      taxYear.CapitalGainsRate,
		BrokerageGainFraction: taxYear.BrokerageGainFraction,
	}
}

// ordinaryTax is the extra federal+state tax caused by adding amount on top of income.
func (wc *WithdrawalCalculator) ordinaryTax(amount, retirementIncome decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	base := clampZero(retirementIncome)
	return wc.TaxCalc.IncomeTax(base.Add(amount)).Sub(wc.TaxCalc.IncomeTax(base))
}

// LumpSum withdraws every bucket in a single taxable year.
func (wc *WithdrawalCalculator) LumpSum(values domain.Buckets, retirementIncome decimal.Decimal) domain.WithdrawalOutcome {
	total := values.Total()
	ordinary := wc.ordinaryTax(values.PreTax(), retirementIncome)
	gains := clampZero(values.Brokerage).Mul(wc.CapitalGainsRate)
	return newOutcome(total, ordinary.Add(gains))
}

// Annual withdraws a level amount each year, sized to deplete the total over years
// while the remainder keeps earning returnPercent. The withdrawal is attributed to
// buckets in proportion to their share of the total.
func (wc *WithdrawalCalculator) Annual(values domain.Buckets, retirementIncome, returnPercent decimal.Decimal, years int) domain.WithdrawalOutcome {
	total := values.Total()
	if total.LessThanOrEqual(decimal.Zero) || years <= 0 {
		return domain.WithdrawalOutcome{Amount: decimal.Zero, Taxes: decimal.Zero, Net: decimal.Zero, EffectiveRate: decimal.Zero}
	}

	withdrawal := AnnualWithdrawal(total, returnPercent.Div(decimalHundred), years)
	if withdrawal.IsZero() {
		return newOutcome(decimal.Zero, decimal.Zero)
	}

	preTaxShare := withdrawal.Mul(values.PreTax()).Div(total)
	brokerageShare := withdrawal.Mul(clampZero(values.Brokerage)).Div(total)

	ordinary := wc.ordinaryTax(preTaxShare, retirementIncome)
	gains := brokerageShare.Mul(wc.BrokerageGainFraction).Mul(wc.CapitalGainsRate)
	return newOutcome(withdrawal, ordinary.Add(gains))
}

// Plan evaluates both withdrawal strategies.
func (wc *WithdrawalCalculator) Plan(values domain.Buckets, assumptions domain.RetirementAssumptions) domain.WithdrawalPlan {
	return domain.WithdrawalPlan{
		LumpSum: wc.LumpSum(values, assumptions.Income),
		Annual:  wc.Annual(values, assumptions.Income, assumptions.ReturnPercent, assumptions.WithdrawalYears),
		Years:   assumptions.WithdrawalYears,
	}
}

func newOutcome(amount, taxes decimal.Decimal) domain.WithdrawalOutcome {
	rate := decimal.Zero
	if amount.GreaterThan(decimal.Zero) {
		rate = taxes.Div(amount).Mul(decimalHundred)
	}
	return domain.WithdrawalOutcome{
		Amount:        amount,
		Taxes:         taxes,
		Net:           amount.Sub(taxes),
		EffectiveRate: rate,
	}
}
