package calculation

import (
	"github.com/rpgo/contribution-calculator/internal/domain"
	moneypkg "github.com/rpgo/contribution-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ScenarioCalculator builds the with- and without-contribution trajectories.
type ScenarioCalculator struct {
	TaxCalc *ComprehensiveTaxCalculator
	Limits  domain.ContributionLimits
}

// NewScenarioCalculator creates a scenario calculator for a tax year.
func NewScenarioCalculator(taxYear domain.TaxYear) *ScenarioCalculator {
	return &ScenarioCalculator{
		TaxCalc: NewComprehensiveTaxCalculator(taxYear),
		Limits:  taxYear.Limits,
	}
}

// employeeContribution is the requested percent of salary capped at the employee limit.
func (sc *ScenarioCalculator) employeeContribution(in domain.ScenarioInputs) decimal.Decimal {
	requested := moneypkg.NewMoneyFromDecimal(in.GrossSalary).PercentOf(in.ContributionPercent)
	return moneypkg.Min(requested, moneypkg.NewMoneyFromDecimal(sc.Limits.EmployeeAnnualMax)).ClampZero().Decimal
}

func (sc *ScenarioCalculator) rothIRAContribution(in domain.ScenarioInputs) decimal.Decimal {
	return clampZero(decimal.Min(in.RothIRAContribution, sc.Limits.RothIRAAnnualMax))
}

// WithContribution computes the scenario where the employee contributes to the plan.
func (sc *ScenarioCalculator) WithContribution(in domain.ScenarioInputs) domain.ScenarioResult {
	total := sc.employeeContribution(in)

	// Match is a percent of the employee's own contribution and never exceeds it.
	employee := moneypkg.NewMoneyFromDecimal(total)
	employer := moneypkg.Min(employee.PercentOf(in.EmployerMatchPercent), employee).ClampZero().Decimal

	roth := decimal.Zero
	if in.Roth401kCap != nil {
		roth = clampZero(decimal.Min(total, *in.Roth401kCap))
	}
	traditional := total.Sub(roth)
	rothIRA := sc.rothIRAContribution(in)

	// Only the traditional portion defers tax.
	taxable := clampZero(in.GrossSalary.Sub(traditional))
	taxes := sc.TaxCalc.TotalTax(taxable)
	takeHome := taxable.Sub(taxes.Total).Sub(roth).Sub(rothIRA)

	brokerage := decimal.Zero
	if in.TargetTakeHome != nil && takeHome.GreaterThan(*in.TargetTakeHome) {
		brokerage = takeHome.Sub(*in.TargetTakeHome)
	}

	contributions := domain.Buckets{
		Traditional:   traditional,
		Roth401k:      roth,
		EmployerMatch: employer,
		RothIRA:       rothIRA,
		Brokerage:     brokerage,
	}
	futureValues := projectBuckets(contributions, in.ReturnPercent, in.Years)

	return domain.ScenarioResult{
		Kind:              domain.WithContribution,
		GrossSalary:       in.GrossSalary,
		TaxableIncome:     taxable,
		Taxes:             taxes,
		TakeHomePay:       takeHome,
		SpendableTakeHome: takeHome.Sub(brokerage),
		Contributions:     contributions,
		FutureValues:      futureValues,
		TotalFutureValue:  futureValues.Total(),
	}
}

// WithoutContribution computes the scenario where nothing is deferred and the
// equivalent amount is invested in a taxable brokerage account instead.
func (sc *ScenarioCalculator) WithoutContribution(in domain.ScenarioInputs) domain.ScenarioResult {
	salary := clampZero(in.GrossSalary)
	taxes := sc.TaxCalc.TotalTax(salary)
	rothIRA := sc.rothIRAContribution(in)
	takeHome := salary.Sub(taxes.Total).Sub(rothIRA)

	var brokerage decimal.Decimal
	if in.TargetTakeHome != nil {
		brokerage = clampZero(takeHome.Sub(*in.TargetTakeHome))
	} else {
		brokerage = sc.degrossedContribution(in, salary, taxes)
	}

	contributions := domain.Buckets{
		RothIRA:   rothIRA,
		Brokerage: brokerage,
	}
	futureValues := projectBuckets(contributions, in.ReturnPercent, in.Years)

	return domain.ScenarioResult{
		Kind:              domain.WithoutContribution,
		GrossSalary:       in.GrossSalary,
		TaxableIncome:     salary,
		Taxes:             taxes,
		TakeHomePay:       takeHome,
		SpendableTakeHome: takeHome.Sub(brokerage),
		Contributions:     contributions,
		FutureValues:      futureValues,
		TotalFutureValue:  futureValues.Total(),
	}
}

// degrossedContribution approximates the after-tax equivalent of the hypothetical
// contribution using the average federal+state rate on the full salary, not the
// marginal rate. Known approximation; kept for result compatibility.
func (sc *ScenarioCalculator) degrossedContribution(in domain.ScenarioInputs, salary decimal.Decimal, taxes domain.TaxBreakdown) decimal.Decimal {
	if salary.IsZero() {
		return decimal.Zero
	}
	hypothetical := sc.employeeContribution(in)
	averageRate := taxes.Federal.Add(taxes.State).Div(salary)
	return clampZero(hypothetical.Mul(decimalOne.Sub(averageRate)))
}

// Compare runs both trajectories and the year-by-year balance schedule.
func (sc *ScenarioCalculator) Compare(in domain.ScenarioInputs) (domain.ScenarioResult, domain.ScenarioResult, []domain.YearBalance) {
	with := sc.WithContribution(in)
	without := sc.WithoutContribution(in)
	return with, without, BuildSchedule(with.Contributions, without.Contributions, in.ReturnPercent, in.Years)
}

// BuildSchedule projects the total balance of both trajectories for each year.
func BuildSchedule(with, without domain.Buckets, annualReturnPercent decimal.Decimal, years int) []domain.YearBalance {
	if years <= 0 {
		return nil
	}
	withTotals := ProjectBalances(with.Total(), annualReturnPercent, years)
	withoutTotals := ProjectBalances(without.Total(), annualReturnPercent, years)

	schedule := make([]domain.YearBalance, years)
	for i := range schedule {
		schedule[i] = domain.YearBalance{
			Year:                i + 1,
			WithContribution:    withTotals[i],
			WithoutContribution: withoutTotals[i],
		}
	}
	return schedule
}

// projectBuckets compounds every bucket independently at the same return.
func projectBuckets(contributions domain.Buckets, annualReturnPercent decimal.Decimal, years int) domain.Buckets {
	return domain.Buckets{
		Traditional:   FutureValue(contributions.Traditional, annualReturnPercent, years),
		Roth401k:      FutureValue(contributions.Roth401k, annualReturnPercent, years),
		EmployerMatch: FutureValue(contributions.EmployerMatch, annualReturnPercent, years),
		RothIRA:       FutureValue(contributions.RothIRA, annualReturnPercent, years),
		Brokerage:     FutureValue(contributions.Brokerage, annualReturnPercent, years),
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	return moneypkg.NewMoneyFromDecimal(d).ClampZero().Decimal
}
