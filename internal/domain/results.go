package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioKind distinguishes the two trajectories being compared.
type ScenarioKind string

const (
	WithContribution    ScenarioKind = "with_contribution"
	WithoutContribution ScenarioKind = "without_contribution"
)

// Buckets partitions an amount by account and tax character. It is used both for
// annual contributions and for projected future values.
type Buckets struct {
	Traditional   decimal.Decimal `json:"traditional"`
	Roth401k      decimal.Decimal `json:"roth_401k"`
	EmployerMatch decimal.Decimal `json:"employer_match"`
	RothIRA       decimal.Decimal `json:"roth_ira"`
	Brokerage     decimal.Decimal `json:"brokerage"`
}

// Total returns the sum of all buckets.
func (b Buckets) Total() decimal.Decimal {
	return b.Traditional.Add(b.Roth401k).Add(b.EmployerMatch).Add(b.RothIRA).Add(b.Brokerage)
}

// PreTax returns the buckets taxed as ordinary income on withdrawal.
func (b Buckets) PreTax() decimal.Decimal {
	return b.Traditional.Add(b.EmployerMatch)
}

// TaxFree returns the Roth buckets.
func (b Buckets) TaxFree() decimal.Decimal {
	return b.Roth401k.Add(b.RothIRA)
}

// TaxBreakdown is the labeled result of an aggregate tax calculation.
type TaxBreakdown struct {
	Federal decimal.Decimal `json:"federal"`
	State   decimal.Decimal `json:"state"`
	FICA    decimal.Decimal `json:"fica"`
	Total   decimal.Decimal `json:"total"`
}

// ScenarioResult is an immutable snapshot of one trajectory.
type ScenarioResult struct {
	Kind          ScenarioKind    `json:"kind"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	Taxes         TaxBreakdown    `json:"taxes"`
	// TakeHomePay is pay after taxes and post-tax retirement contributions.
	TakeHomePay decimal.Decimal `json:"take_home_pay"`
	// SpendableTakeHome is TakeHomePay less the amount diverted to the brokerage bucket.
	SpendableTakeHome decimal.Decimal `json:"spendable_take_home"`
	Contributions     Buckets         `json:"contributions"`
	FutureValues      Buckets         `json:"future_values"`
	TotalFutureValue  decimal.Decimal `json:"total_future_value"`
}

// WithdrawalOutcome is the result of one withdrawal strategy.
type WithdrawalOutcome struct {
	Amount        decimal.Decimal `json:"amount"` // total for lump sum, per-year for annual
	Taxes         decimal.Decimal `json:"taxes"`
	Net           decimal.Decimal `json:"net"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // percent
}

// WithdrawalPlan compares lump-sum and level-annual withdrawal of the same balances.
type WithdrawalPlan struct {
	LumpSum WithdrawalOutcome `json:"lump_sum"`
	Annual  WithdrawalOutcome `json:"annual"`
	Years   int               `json:"years"`
}

// LifetimeAnnualNet returns the net received over the whole annual horizon.
func (wp WithdrawalPlan) LifetimeAnnualNet() decimal.Decimal {
	return wp.Annual.Net.Mul(decimal.NewFromInt(int64(wp.Years)))
}

// YearBalance is the projected total balance of both trajectories at the end of a year.
type YearBalance struct {
	Year                int             `json:"year"`
	WithContribution    decimal.Decimal `json:"with_contribution"`
	WithoutContribution decimal.Decimal `json:"without_contribution"`
}

// SolverResult reports the contribution percent found for a take-home target.
type SolverResult struct {
	TargetTakeHome      decimal.Decimal `json:"target_take_home"`
	ContributionPercent decimal.Decimal `json:"contribution_percent"`
	// Feasible is false when even a 0% contribution misses the target.
	Feasible    bool            `json:"feasible"`
	TakeHomePay decimal.Decimal `json:"take_home_pay"`
}

// AllocationCandidate is one evaluated Roth/traditional split.
type AllocationCandidate struct {
	Roth401k    decimal.Decimal `json:"roth_401k"`
	Traditional decimal.Decimal `json:"traditional"`
	NetWorth    decimal.Decimal `json:"net_worth"`
}

// AllocationResult is the outcome of the allocation grid search.
type AllocationResult struct {
	ContributionPercent decimal.Decimal       `json:"contribution_percent"`
	Budget              decimal.Decimal       `json:"budget"`
	Best                AllocationCandidate   `json:"best"`
	Candidates          []AllocationCandidate `json:"candidates"`
}

// BreakEven marks when the contribution trajectory's balance lead first covers the
// take-home pay given up to fund it.
type BreakEven struct {
	Year int `json:"year"` // 1-based year in which the crossover happens
	// Years is the fractional time to break even, interpolated within Year.
	Years          decimal.Decimal `json:"years"`
	BalanceLead    decimal.Decimal `json:"balance_lead"`
	CumulativeCost decimal.Decimal `json:"cumulative_cost"`
}

// ScenarioComparison holds both trajectories of one named scenario.
type ScenarioComparison struct {
	Name                string            `json:"name"`
	Inputs              ScenarioInputs    `json:"inputs"`
	With                ScenarioResult    `json:"with_contribution"`
	Without             ScenarioResult    `json:"without_contribution"`
	WithWithdrawal      WithdrawalPlan    `json:"with_withdrawal"`
	WithoutWithdrawal   WithdrawalPlan    `json:"without_withdrawal"`
	TakeHomePerPaycheck decimal.Decimal   `json:"take_home_per_paycheck"`
	Schedule            []YearBalance     `json:"schedule"`
	BreakEven           *BreakEven        `json:"break_even,omitempty"`
	Solver              *SolverResult     `json:"solver,omitempty"`
	Allocation          *AllocationResult `json:"allocation,omitempty"`
}

// FutureValueAdvantage is how much larger the contribution trajectory grows.
func (sc ScenarioComparison) FutureValueAdvantage() decimal.Decimal {
	return sc.With.TotalFutureValue.Sub(sc.Without.TotalFutureValue)
}

// NetWorthAdvantage compares the two trajectories after lump-sum taxes.
func (sc ScenarioComparison) NetWorthAdvantage() decimal.Decimal {
	return sc.WithWithdrawal.LumpSum.Net.Sub(sc.WithoutWithdrawal.LumpSum.Net)
}

// TakeHomeCost is the reduction in annual take-home pay caused by contributing.
func (sc ScenarioComparison) TakeHomeCost() decimal.Decimal {
	return sc.Without.TakeHomePay.Sub(sc.With.TakeHomePay)
}

// ComparisonReport is the result handed to presentation sinks.
type ComparisonReport struct {
	TaxYear      int                  `json:"tax_year"`
	PayFrequency PayFrequency         `json:"pay_frequency"`
	Scenarios    []ScenarioComparison `json:"scenarios"`
	Assumptions  []string             `json:"assumptions"`
}
