package calculation

import (
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Single filing status only; brackets are applied directly to taxable income
//    (no standard deduction, credits or phase-outs).
// 2. Federal and state schedules are both progressive bracket tables from the TaxYear.
// 3. FICA: Social Security capped at the wage base, Medicare uncapped, no additional
//    Medicare surtax.
// 4. Negative income must be clamped by the caller; TaxOwed treats it as zero tax
//    but FICA does not clamp.

// TaxOwed computes the progressive tax on income under a bracket table.
func TaxOwed(income decimal.Decimal, table domain.TaxBracketTable) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for _, bracket := range table.Brackets {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		top := income
		if !bracket.Unbounded() && bracket.Max.LessThan(income) {
			top = *bracket.Max
		}
		incomeInBracket := top.Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}

	return totalTax
}

// FICACalculator handles FICA tax calculations
type FICACalculator struct {
	SSWageBase   decimal.Decimal
	SSRate       decimal.Decimal
	MedicareRate decimal.Decimal
}

// NewFICACalculator creates a new FICA calculator with configurable values
func NewFICACalculator(config domain.FICAConfig) *FICACalculator {
	return &FICACalculator{
		SSWageBase:   config.SocialSecurityWageBase,
		SSRate:       config.SocialSecurityRate,
		MedicareRate: config.MedicareRate,
	}
}

// CalculateFICA calculates FICA taxes (Social Security and Medicare)
func (fc *FICACalculator) CalculateFICA(wages decimal.Decimal) decimal.Decimal {
	// Social Security tax (capped)
	ssWages := decimal.Min(wages, fc.SSWageBase)
	ssTax := ssWages.Mul(fc.SSRate)

	// Medicare tax (no cap)
	medicareTax := wages.Mul(fc.MedicareRate)

	return ssTax.Add(medicareTax)
}

// ComprehensiveTaxCalculator aggregates federal, state and FICA tax for one tax year.
type ComprehensiveTaxCalculator struct {
	Federal     domain.TaxBracketTable
	State       domain.TaxBracketTable
	FICATaxCalc *FICACalculator
}

// NewComprehensiveTaxCalculator creates a tax calculator for the given tax year
func NewComprehensiveTaxCalculator(taxYear domain.TaxYear) *ComprehensiveTaxCalculator {
	return &ComprehensiveTaxCalculator{
		Federal:     taxYear.Federal,
		State:       taxYear.State,
		FICATaxCalc: NewFICACalculator(taxYear.FICA),
	}
}

// FederalTax returns federal income tax on income.
func (ctc *ComprehensiveTaxCalculator) FederalTax(income decimal.Decimal) decimal.Decimal {
	return TaxOwed(income, ctc.Federal)
}

// StateTax returns state income tax on income.
func (ctc *ComprehensiveTaxCalculator) StateTax(income decimal.Decimal) decimal.Decimal {
	return TaxOwed(income, ctc.State)
}

// IncomeTax is federal plus state tax, i.e. ordinary income tax without FICA.
func (ctc *ComprehensiveTaxCalculator) IncomeTax(income decimal.Decimal) decimal.Decimal {
	return ctc.FederalTax(income).Add(ctc.StateTax(income))
}

// TotalTax calculates federal, state and FICA tax on earned income.
func (ctc *ComprehensiveTaxCalculator) TotalTax(income decimal.Decimal) domain.TaxBreakdown {
	federal := ctc.FederalTax(income)
	state := ctc.StateTax(income)
	fica := ctc.FICATaxCalc.CalculateFICA(income)

	return domain.TaxBreakdown{
		Federal: federal,
		State:   state,
		FICA:    fica,
		Total:   federal.Add(state).Add(fica),
	}
}
