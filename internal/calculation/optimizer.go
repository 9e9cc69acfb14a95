package calculation

import (
	"github.com/rpgo/contribution-calculator/internal/domain"
	moneypkg "github.com/rpgo/contribution-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AllocationOptimizer searches Roth/traditional splits of a fixed contribution for
// the one with the highest after-tax net worth.
type AllocationOptimizer struct {
	Scenarios   *ScenarioCalculator
	Withdrawals *WithdrawalCalculator
	Settings    domain.OptimizerSettings
	Logger      Logger
}

// NewAllocationOptimizer creates an optimizer sharing the engine's calculators.
func NewAllocationOptimizer(scenarios *ScenarioCalculator, withdrawals *WithdrawalCalculator, settings domain.OptimizerSettings, logger Logger) *AllocationOptimizer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &AllocationOptimizer{
		Scenarios:   scenarios,
		Withdrawals: withdrawals,
		Settings:    settings,
		Logger:      logger,
	}
}

// candidateAmounts returns 0, every multiple of step below budget, and budget itself.
// A step finer than budget/MaxOptimizerSteps is widened to that size.
func candidateAmounts(budget, step decimal.Decimal) []decimal.Decimal {
	amounts := []decimal.Decimal{decimal.Zero}
	if budget.LessThanOrEqual(decimal.Zero) {
		return amounts
	}
	if step.GreaterThan(decimal.Zero) {
		if minStep := budget.Div(decimal.NewFromInt(domain.MaxOptimizerSteps)); step.LessThan(minStep) {
			step = minStep
		}
		for amt := step; amt.LessThan(budget); amt = amt.Add(step) {
			amounts = append(amounts, amt)
		}
	}
	return append(amounts, budget)
}

// Optimize evaluates each candidate Roth amount at contributionPercent. Net worth is
// the lump-sum net of the with-contribution trajectory under retirement assumptions.
// A Roth 401(k) cap on the inputs bounds the all-Roth end of the grid.
func (ao *AllocationOptimizer) Optimize(in domain.ScenarioInputs, contributionPercent decimal.Decimal, retirement domain.RetirementAssumptions) domain.AllocationResult {
	base := in.WithContributionPercent(contributionPercent)
	budget := ao.Scenarios.employeeContribution(base)

	rothLimit := budget
	if in.Roth401kCap != nil {
		rothLimit = moneypkg.Min(moneypkg.NewMoneyFromDecimal(budget), moneypkg.NewMoneyFromDecimal(*in.Roth401kCap)).ClampZero().Decimal
	}

	amounts := candidateAmounts(rothLimit, ao.Settings.Step)
	candidates := make([]domain.AllocationCandidate, 0, len(amounts))
	var best domain.AllocationCandidate

	for i, roth := range amounts {
		result := ao.Scenarios.WithContribution(base.WithRoth401kCap(roth))
		lump := ao.Withdrawals.LumpSum(result.FutureValues, retirement.Income)
		candidate := domain.AllocationCandidate{
			Roth401k:    result.Contributions.Roth401k,
			Traditional: result.Contributions.Traditional,
			NetWorth:    lump.Net,
		}
		candidates = append(candidates, candidate)

		// strict comparison keeps the lower Roth amount on ties
		if i == 0 || candidate.NetWorth.GreaterThan(best.NetWorth) {
			best = candidate
		}
	}

	ao.Logger.Debugf("optimizer: budget=%s candidates=%d best_roth=%s net_worth=%s",
		budget.StringFixed(2), len(candidates), best.Roth401k.StringFixed(2), best.NetWorth.StringFixed(2))

	return domain.AllocationResult{
		ContributionPercent: contributionPercent,
		Budget:              budget,
		Best:                best,
		Candidates:          candidates,
	}
}
