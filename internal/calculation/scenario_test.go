package calculation

import (
	"testing"

	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workedExampleInputs() domain.ScenarioInputs {
	return domain.ScenarioInputs{
		GrossSalary:          dec("150000"),
		ContributionPercent:  dec("10"),
		EmployerMatchPercent: dec("50"),
		ReturnPercent:        dec("7"),
		Years:                30,
	}
}

func TestWithContributionWorkedExample(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	result := calc.WithContribution(workedExampleInputs())

	assert.Equal(t, domain.WithContribution, result.Kind)
	assertDecimal(t, dec("15000"), result.Contributions.Traditional, "0")
	assertDecimal(t, dec("7500"), result.Contributions.EmployerMatch, "0")
	assert.True(t, result.Contributions.Roth401k.IsZero())
	assert.True(t, result.Contributions.Brokerage.IsZero())
	assertDecimal(t, dec("135000"), result.TaxableIncome, "0")

	// federal 25442.50 + state 9097.362 + FICA 10327.50
	assertDecimal(t, dec("44867.362"), result.Taxes.Total, "0.001")
	assertDecimal(t, dec("90132.638"), result.TakeHomePay, "0.001")
	assert.True(t, result.SpendableTakeHome.Equal(result.TakeHomePay))
	assert.True(t, result.TotalFutureValue.Equal(result.FutureValues.Total()))
	assert.True(t, result.FutureValues.Traditional.Equal(FutureValue(dec("15000"), dec("7"), 30)))
}

func TestWithoutContributionWorkedExample(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	result := calc.WithoutContribution(workedExampleInputs())

	assert.Equal(t, domain.WithoutContribution, result.Kind)
	assertDecimal(t, dec("150000"), result.TaxableIncome, "0")
	assert.True(t, result.Contributions.PreTax().IsZero())
	assert.True(t, result.Contributions.Roth401k.IsZero())

	// 15000 × (1 − (29042.50 + 10492.362) / 150000)
	assertDecimal(t, dec("11046.5138"), result.Contributions.Brokerage, "0.0001")
	assert.True(t, result.SpendableTakeHome.Equal(result.TakeHomePay.Sub(result.Contributions.Brokerage)))
}

func TestCompareFavoursContribution(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	with, without, schedule := calc.Compare(workedExampleInputs())

	assert.True(t, with.TotalFutureValue.GreaterThan(without.TotalFutureValue))
	assert.True(t, with.TakeHomePay.LessThan(without.TakeHomePay))

	require.Len(t, schedule, 30)
	assert.Equal(t, 1, schedule[0].Year)
	assert.Equal(t, 30, schedule[29].Year)
	assertDecimal(t, with.TotalFutureValue, schedule[29].WithContribution, "0.000001")
	assertDecimal(t, without.TotalFutureValue, schedule[29].WithoutContribution, "0.000001")
}

func TestContributionLimitsAndMatch(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	limit := calc.Limits.EmployeeAnnualMax

	tests := []struct {
		name   string
		salary string
		pct    string
		match  string
		roth   *decimal.Decimal
	}{
		{name: "below limit", salary: "80000", pct: "6", match: "100"},
		{name: "capped at employee max", salary: "400000", pct: "20", match: "50"},
		{name: "full salary contributed", salary: "30000", pct: "100", match: "100"},
		{name: "roth carve-out above total", salary: "200000", pct: "15", match: "25", roth: decimalPtr("50000")},
		{name: "partial roth", salary: "120000", pct: "10", match: "0", roth: decimalPtr("4000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := domain.ScenarioInputs{
				GrossSalary:          dec(tt.salary),
				ContributionPercent:  dec(tt.pct),
				EmployerMatchPercent: dec(tt.match),
				ReturnPercent:        dec("7"),
				Years:                10,
				Roth401kCap:          tt.roth,
			}
			result := calc.WithContribution(in)
			employee := result.Contributions.Traditional.Add(result.Contributions.Roth401k)

			assert.True(t, employee.LessThanOrEqual(limit), "employee %s exceeds limit", employee)
			assert.True(t, result.Contributions.EmployerMatch.LessThanOrEqual(employee), "match exceeds employee contribution")
			assert.False(t, result.Contributions.Traditional.IsNegative())
			assert.False(t, result.TaxableIncome.IsNegative())
		})
	}
}

func TestRothCarveOut(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	in := workedExampleInputs().WithRoth401kCap(dec("5000"))

	result := calc.WithContribution(in)
	assertDecimal(t, dec("5000"), result.Contributions.Roth401k, "0")
	assertDecimal(t, dec("10000"), result.Contributions.Traditional, "0")
	assertDecimal(t, dec("140000"), result.TaxableIncome, "0")

	// Roth is post-tax so it reduces take-home on top of the taxes on the larger base
	allTraditional := calc.WithContribution(workedExampleInputs())
	assert.True(t, result.TakeHomePay.LessThan(allTraditional.TakeHomePay))
}

func TestTargetTakeHomeDivertsSurplus(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	in := workedExampleInputs()
	target := dec("80000")
	in.TargetTakeHome = &target

	with := calc.WithContribution(in)
	assertDecimal(t, dec("10132.638"), with.Contributions.Brokerage, "0.001")
	assertDecimal(t, target, with.SpendableTakeHome, "0.000001")

	without := calc.WithoutContribution(in)
	assert.True(t, without.Contributions.Brokerage.Equal(without.TakeHomePay.Sub(target)))

	// an unreachable target diverts nothing
	high := dec("1000000")
	in.TargetTakeHome = &high
	assert.True(t, calc.WithContribution(in).Contributions.Brokerage.IsZero())
	assert.True(t, calc.WithoutContribution(in).Contributions.Brokerage.IsZero())
}

func TestRothIRAContributionIsCapped(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	in := workedExampleInputs()
	in.RothIRAContribution = dec("10000")

	with := calc.WithContribution(in)
	without := calc.WithoutContribution(in)
	assertDecimal(t, dec("7000"), with.Contributions.RothIRA, "0")
	assertDecimal(t, dec("7000"), without.Contributions.RothIRA, "0")
}

func TestZeroInputsDoNotPanic(t *testing.T) {
	calc := NewScenarioCalculator(domain.TaxYear2024())
	in := domain.ScenarioInputs{}

	assert.NotPanics(t, func() {
		with, without, schedule := calc.Compare(in)
		assert.True(t, with.TotalFutureValue.IsZero())
		assert.True(t, without.TotalFutureValue.IsZero())
		assert.True(t, with.TakeHomePay.IsZero())
		assert.Empty(t, schedule)
	})
}

func decimalPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
