package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/contribution-calculator/internal/domain"
	moneypkg "github.com/rpgo/contribution-calculator/pkg/decimal"
)

// CalculationEngine orchestrates the contribution comparison for one tax year.
// It holds only immutable configuration and is safe for concurrent use.
type CalculationEngine struct {
	TaxYear     domain.TaxYear
	TaxCalc     *ComprehensiveTaxCalculator
	Scenarios   *ScenarioCalculator
	Withdrawals *WithdrawalCalculator
	Solver      *ContributionSolver
	Optimizer   *AllocationOptimizer
	Logger      Logger
}

// NewCalculationEngine creates an engine for the default tax year and default settings
func NewCalculationEngine() *CalculationEngine {
	ty, _ := domain.LookupTaxYear(domain.DefaultTaxYear)
	return NewCalculationEngineWithConfig(ty, domain.DefaultSolverSettings(), domain.DefaultOptimizerSettings())
}

// NewCalculationEngineWithConfig creates an engine for an explicit tax year and settings
func NewCalculationEngineWithConfig(taxYear domain.TaxYear, solver domain.SolverSettings, optimizer domain.OptimizerSettings) *CalculationEngine {
	logger := NopLogger{}
	scenarios := NewScenarioCalculator(taxYear)
	withdrawals := NewWithdrawalCalculator(taxYear)
	return &CalculationEngine{
		TaxYear:     taxYear,
		TaxCalc:     scenarios.TaxCalc,
		Scenarios:   scenarios,
		Withdrawals: withdrawals,
		Solver:      NewContributionSolver(scenarios, solver, logger),
		Optimizer:   NewAllocationOptimizer(scenarios, withdrawals, optimizer, logger),
		Logger:      logger,
	}
}

// NewCalculationEngineForConfig resolves the configuration's tax year and settings.
func NewCalculationEngineForConfig(config *domain.Configuration) (*CalculationEngine, error) {
	ty, err := config.ResolveTaxYear()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tax year: %w", err)
	}
	return NewCalculationEngineWithConfig(ty, config.Solver, config.Optimizer), nil
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Solver.Logger = l
	ce.Optimizer.Logger = l
}

// RunScenario calculates both trajectories of one named scenario, their withdrawal
// plans, and the optional solver and allocation results.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scenario.Years < 0 {
		return nil, fmt.Errorf("scenario %q: years cannot be negative, got %d", scenario.Name, scenario.Years)
	}
	if scenario.SolveForTarget && scenario.TargetPerPaycheck == nil {
		return nil, fmt.Errorf("scenario %q: solve_for_target requires target_per_paycheck", scenario.Name)
	}

	log := WithScenario(ce.Logger, scenario.Name)
	in := scenario.Inputs(config.PayFrequency)
	comparison := &domain.ScenarioComparison{Name: scenario.Name}

	if scenario.SolveForTarget {
		solved := ce.Solver.SolveDetailed(in, *in.TargetTakeHome)
		if !solved.Feasible {
			log.Warnf("target take-home %s is not reachable even at 0%% contribution", solved.TargetTakeHome.StringFixed(2))
		}
		log.Infof("solved contribution percent %s%% for target %s", solved.ContributionPercent.String(), solved.TargetTakeHome.StringFixed(2))
		in = in.WithContributionPercent(solved.ContributionPercent)
		comparison.Solver = &solved
	}

	with, without, schedule := ce.Scenarios.Compare(in)
	comparison.Inputs = in
	comparison.With = with
	comparison.Without = without
	comparison.Schedule = schedule
	comparison.BreakEven = CalculateBreakEven(schedule, comparison.TakeHomeCost())
	comparison.WithWithdrawal = ce.Withdrawals.Plan(with.FutureValues, config.Retirement)
	comparison.WithoutWithdrawal = ce.Withdrawals.Plan(without.FutureValues, config.Retirement)
	comparison.TakeHomePerPaycheck = moneypkg.NewMoneyFromDecimal(with.TakeHomePay).
		PerPeriod(config.PayFrequency.PeriodsPerYear()).Round().Decimal

	if scenario.OptimizeAllocation {
		allocation := ce.Optimizer.Optimize(in, in.ContributionPercent, config.Retirement)
		comparison.Allocation = &allocation
	}

	log.Debugf("with: take-home=%s fv=%s; without: take-home=%s fv=%s",
		with.TakeHomePay.StringFixed(2), with.TotalFutureValue.StringFixed(2),
		without.TakeHomePay.StringFixed(2), without.TotalFutureValue.StringFixed(2))

	return comparison, nil
}

// RunScenarios runs all scenarios and returns a comparison report
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ComparisonReport, error) {
	scenarios := make([]domain.ScenarioComparison, len(config.Scenarios))

	for i := range config.Scenarios {
		comparison, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios[i] = *comparison
	}

	ce.Logger.Infof("computed %d scenario(s) for tax year %d", len(scenarios), ce.TaxYear.Year)

	return &domain.ComparisonReport{
		TaxYear:      ce.TaxYear.Year,
		PayFrequency: config.PayFrequency,
		Scenarios:    scenarios,
		Assumptions:  config.GenerateAssumptions(ce.TaxYear),
	}, nil
}
