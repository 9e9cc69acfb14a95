package calculation

import (
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ContributionSolver finds the largest contribution percent whose take-home pay
// still meets a target.
type ContributionSolver struct {
	Scenarios *ScenarioCalculator
	Settings  domain.SolverSettings
	Logger    Logger
}

// NewContributionSolver creates a solver over a scenario calculator.
func NewContributionSolver(scenarios *ScenarioCalculator, settings domain.SolverSettings, logger Logger) *ContributionSolver {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ContributionSolver{Scenarios: scenarios, Settings: settings, Logger: logger}
}

// searchInputs pins the projection to the solver's own assumption. Take-home does
// not depend on return or horizon, so only the reported future values are affected.
func (cs *ContributionSolver) searchInputs(in domain.ScenarioInputs, pct decimal.Decimal) domain.ScenarioInputs {
	probe := in.WithContributionPercent(pct)
	probe.ReturnPercent = cs.Settings.ReturnPercent
	probe.Years = cs.Settings.Years
	return probe
}

func (cs *ContributionSolver) satisfies(in domain.ScenarioInputs, pct, target decimal.Decimal) (bool, decimal.Decimal) {
	result := cs.Scenarios.WithContribution(cs.searchInputs(in, pct))
	return result.TakeHomePay.GreaterThanOrEqual(target.Sub(cs.Settings.Tolerance)), result.TakeHomePay
}

// Solve binary-searches [0, min(100, employee max / salary × 100)] for a fixed number
// of iterations and returns the best accepted percent rounded down to one decimal.
// It returns 0 when no percent in the range meets the target.
func (cs *ContributionSolver) Solve(in domain.ScenarioInputs, target decimal.Decimal) decimal.Decimal {
	if in.GrossSalary.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	lo := decimal.Zero
	hi := decimal.Min(decimalHundred, cs.Scenarios.Limits.EmployeeAnnualMax.Div(in.GrossSalary).Mul(decimalHundred))
	best := decimal.Zero
	two := decimal.NewFromInt(2)

	for i := 0; i < cs.Settings.Iterations; i++ {
		mid := lo.Add(hi).Div(two)
		if ok, _ := cs.satisfies(in, mid, target); ok {
			best = mid
			lo = mid
		} else {
			hi = mid
		}
	}

	// Rounding down keeps the reported percent inside the accepted region.
	solved := best.Truncate(1)
	cs.Logger.Debugf("solver: target=%s range=[0,%s] best=%s solved=%s", target.StringFixed(2), hi.StringFixed(4), best.StringFixed(6), solved.String())
	return solved
}

// SolveDetailed runs Solve and reports feasibility and the resulting take-home pay.
func (cs *ContributionSolver) SolveDetailed(in domain.ScenarioInputs, target decimal.Decimal) domain.SolverResult {
	pct := cs.Solve(in, target)
	feasible, takeHome := cs.satisfies(in, decimal.Zero, target)
	if feasible {
		_, takeHome = cs.satisfies(in, pct, target)
	}
	return domain.SolverResult{
		TargetTakeHome:      target,
		ContributionPercent: pct,
		Feasible:            feasible,
		TakeHomePay:         takeHome,
	}
}
