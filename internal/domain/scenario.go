package domain

import (
	"fmt"
	"strings"

	moneypkg "github.com/rpgo/contribution-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PayFrequency describes how often the employee is paid.
type PayFrequency string

const (
	PayWeekly      PayFrequency = "weekly"
	PayBiweekly    PayFrequency = "biweekly"
	PaySemimonthly PayFrequency = "semimonthly"
	PayMonthly     PayFrequency = "monthly"
	PayAnnual      PayFrequency = "annual"
)

// PeriodsPerYear returns the number of paychecks per year (biweekly when unset).
func (pf PayFrequency) PeriodsPerYear() int {
	switch PayFrequency(strings.ToLower(string(pf))) {
	case PayWeekly:
		return 52
	case PaySemimonthly:
		return 24
	case PayMonthly:
		return 12
	case PayAnnual:
		return 1
	default:
		return 26
	}
}

// ParsePayFrequency validates a user supplied frequency name.
func ParsePayFrequency(s string) (PayFrequency, error) {
	pf := PayFrequency(strings.ToLower(strings.TrimSpace(s)))
	switch pf {
	case PayWeekly, PayBiweekly, PaySemimonthly, PayMonthly, PayAnnual:
		return pf, nil
	case "":
		return PayBiweekly, nil
	}
	return "", fmt.Errorf("unsupported pay frequency %q", s)
}

// ScenarioInputs are the already-parsed numeric inputs of one calculation.
type ScenarioInputs struct {
	GrossSalary          decimal.Decimal  `json:"gross_salary"`
	ContributionPercent  decimal.Decimal  `json:"contribution_percent"`   // 0-100
	EmployerMatchPercent decimal.Decimal  `json:"employer_match_percent"` // 0-100, of the employee contribution
	ReturnPercent        decimal.Decimal  `json:"return_percent"`
	Years                int              `json:"years"`
	TargetTakeHome       *decimal.Decimal `json:"target_take_home,omitempty"` // annual; nil = unconstrained
	Roth401kCap          *decimal.Decimal `json:"roth_401k_cap,omitempty"`
	RothIRAContribution  decimal.Decimal  `json:"roth_ira_contribution"`
}

// WithContributionPercent returns a copy with a different contribution percent.
func (si ScenarioInputs) WithContributionPercent(pct decimal.Decimal) ScenarioInputs {
	si.ContributionPercent = pct
	return si
}

// WithRoth401kCap returns a copy with a different Roth 401(k) carve-out cap.
func (si ScenarioInputs) WithRoth401kCap(limit decimal.Decimal) ScenarioInputs {
	si.Roth401kCap = &limit
	return si
}

// RetirementAssumptions describe the withdrawal phase.
type RetirementAssumptions struct {
	Income          decimal.Decimal `yaml:"income" json:"income" validate:"gte=0"`
	ReturnPercent   decimal.Decimal `yaml:"return_percent" json:"return_percent" validate:"gt=-100,lte=100"`
	WithdrawalYears int             `yaml:"withdrawal_years" json:"withdrawal_years" validate:"gte=1,lte=80"`
}

// SolverSettings tune the inverse contribution search.
type SolverSettings struct {
	Iterations int `yaml:"iterations" json:"iterations" validate:"gte=0,lte=200"`
	// Take-home may fall this far below the target and still be accepted.
	Tolerance decimal.Decimal `yaml:"tolerance" json:"tolerance" validate:"gte=0"`
	// Projection assumption used while searching; independent of the scenario's own return/horizon.
	ReturnPercent decimal.Decimal `yaml:"return_percent" json:"return_percent" validate:"gt=-100,lte=100"`
	Years         int             `yaml:"years" json:"years" validate:"gte=0,lte=80"`
}

// DefaultSolverSettings mirrors the fixed 30-iteration, $1, 7%/30-year search.
func DefaultSolverSettings() SolverSettings {
	return SolverSettings{
		Iterations:    30,
		Tolerance:     decimal.NewFromInt(1),
		ReturnPercent: decimal.NewFromInt(7),
		Years:         30,
	}
}

// MaxOptimizerSteps bounds the number of grid intervals the optimizer will walk.
const MaxOptimizerSteps = 1000

// OptimizerSettings tune the Roth/traditional grid search. A zero step evaluates
// only the all-traditional and all-Roth end points.
type OptimizerSettings struct {
	Step decimal.Decimal `yaml:"step" json:"step" validate:"gte=0"`
}

// DefaultOptimizerSettings uses a $1,000 grid step.
func DefaultOptimizerSettings() OptimizerSettings {
	return OptimizerSettings{Step: decimal.NewFromInt(1000)}
}

// Scenario is one named set of inputs as it appears in a configuration file.
type Scenario struct {
	Name                 string           `yaml:"name" json:"name" validate:"required"`
	GrossSalary          decimal.Decimal  `yaml:"gross_salary" json:"gross_salary" validate:"gt=0"`
	ContributionPercent  decimal.Decimal  `yaml:"contribution_percent" json:"contribution_percent" validate:"gte=0,lte=100"`
	EmployerMatchPercent decimal.Decimal  `yaml:"employer_match_percent" json:"employer_match_percent" validate:"gte=0,lte=100"`
	ReturnPercent        decimal.Decimal  `yaml:"return_percent" json:"return_percent" validate:"gt=-100,lte=100"`
	Years                int              `yaml:"years" json:"years" validate:"gte=0,lte=80"`
	TargetPerPaycheck    *decimal.Decimal `yaml:"target_per_paycheck,omitempty" json:"target_per_paycheck,omitempty" validate:"omitempty,gte=0"`
	Roth401kCap          *decimal.Decimal `yaml:"roth_401k_cap,omitempty" json:"roth_401k_cap,omitempty" validate:"omitempty,gte=0"`
	RothIRAContribution  decimal.Decimal  `yaml:"roth_ira_contribution" json:"roth_ira_contribution" validate:"gte=0"`

	SolveForTarget     bool `yaml:"solve_for_target,omitempty" json:"solve_for_target,omitempty"`
	OptimizeAllocation bool `yaml:"optimize_allocation,omitempty" json:"optimize_allocation,omitempty"`
}

// Inputs converts the scenario to engine inputs, annualizing the per-paycheck target.
func (s Scenario) Inputs(freq PayFrequency) ScenarioInputs {
	in := ScenarioInputs{
		GrossSalary:          s.GrossSalary,
		ContributionPercent:  s.ContributionPercent,
		EmployerMatchPercent: s.EmployerMatchPercent,
		ReturnPercent:        s.ReturnPercent,
		Years:                s.Years,
		RothIRAContribution:  s.RothIRAContribution,
	}
	if s.TargetPerPaycheck != nil {
		annual := moneypkg.NewMoneyFromDecimal(*s.TargetPerPaycheck).FromPerPeriod(freq.PeriodsPerYear()).Decimal
		in.TargetTakeHome = &annual
	}
	if s.Roth401kCap != nil {
		c := *s.Roth401kCap
		in.Roth401kCap = &c
	}
	return in
}

// Configuration represents the complete input configuration
type Configuration struct {
	TaxYear      int                   `yaml:"tax_year" json:"tax_year"`
	TaxRules     *TaxYear              `yaml:"tax_rules,omitempty" json:"tax_rules,omitempty"` // overrides the built-in year
	PayFrequency PayFrequency          `yaml:"pay_frequency" json:"pay_frequency"`
	Retirement   RetirementAssumptions `yaml:"retirement" json:"retirement"`
	Solver       SolverSettings        `yaml:"solver" json:"solver"`
	Optimizer    OptimizerSettings     `yaml:"optimizer" json:"optimizer"`
	Scenarios    []Scenario            `yaml:"scenarios" json:"scenarios" validate:"required,min=1,dive"`
}

// NewConfiguration returns a configuration holding the solver and optimizer defaults.
// Decode over it so that settings a file sets to zero stay zero.
func NewConfiguration() Configuration {
	return Configuration{
		Solver:    DefaultSolverSettings(),
		Optimizer: DefaultOptimizerSettings(),
	}
}

// ResolveTaxYear returns the explicit override when present, otherwise the built-in year.
func (c *Configuration) ResolveTaxYear() (TaxYear, error) {
	if c.TaxRules != nil {
		return *c.TaxRules, nil
	}
	return LookupTaxYear(c.TaxYear)
}

// GenerateAssumptions creates dynamic assumptions list from actual config values
func (c *Configuration) GenerateAssumptions(ty TaxYear) []string {
	hundred := decimal.NewFromInt(100)
	return []string{
		fmt.Sprintf("Tax year %d tables (single filer, federal + state), no inflation indexing", ty.Year),
		fmt.Sprintf("Employee contribution limit: $%s; Roth IRA limit: $%s", ty.Limits.EmployeeAnnualMax.StringFixed(0), ty.Limits.RothIRAAnnualMax.StringFixed(0)),
		fmt.Sprintf("FICA: %.2f%% Social Security up to $%s, %.2f%% Medicare uncapped", ty.FICA.SocialSecurityRate.Mul(hundred).InexactFloat64(), ty.FICA.SocialSecurityWageBase.StringFixed(0), ty.FICA.MedicareRate.Mul(hundred).InexactFloat64()),
		fmt.Sprintf("Capital gains: flat %.1f%%; %.0f%% of periodic brokerage withdrawals treated as gain", ty.CapitalGainsRate.Mul(hundred).InexactFloat64(), ty.BrokerageGainFraction.Mul(hundred).InexactFloat64()),
		fmt.Sprintf("Retirement income $%s, post-retirement return %.1f%% over %d years", c.Retirement.Income.StringFixed(0), c.Retirement.ReturnPercent.InexactFloat64(), c.Retirement.WithdrawalYears),
		fmt.Sprintf("Contribution solver projects at %.1f%% for %d years", c.Solver.ReturnPercent.InexactFloat64(), c.Solver.Years),
	}
}
