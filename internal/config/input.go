package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const defaultWithdrawalYears = 30

var defaultRetirementReturn = decimal.NewFromInt(5)

// InputParser handles parsing of input configuration files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()

	// Struct tags compare decimals as floats; exactness only matters for the engine.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// Report field names as they appear in the YAML file.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &InputParser{validate: v}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML configuration data, fills defaults and validates the result.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.NewConfiguration()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Prepare(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Prepare applies defaults and validates a configuration decoded by any means.
func (ip *InputParser) Prepare(config *domain.Configuration) error {
	if err := ip.ApplyDefaults(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// ApplyDefaults fills settings the file left unset. Retirement assumptions count as
// unset while withdrawal_years is zero. Solver and optimizer settings are not touched
// here; they are seeded by domain.NewConfiguration before decoding.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) error {
	freq, err := domain.ParsePayFrequency(string(config.PayFrequency))
	if err != nil {
		return err
	}
	config.PayFrequency = freq

	if config.TaxYear == 0 && config.TaxRules == nil {
		config.TaxYear = domain.DefaultTaxYear
	}
	if config.TaxRules != nil && config.TaxYear == 0 {
		config.TaxYear = config.TaxRules.Year
	}

	retirement := &config.Retirement
	if retirement.WithdrawalYears == 0 {
		if retirement.ReturnPercent.IsZero() && retirement.Income.IsZero() {
			retirement.ReturnPercent = defaultRetirementReturn
		}
		retirement.WithdrawalYears = defaultWithdrawalYears
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	if err := ip.validate.Struct(config); err != nil {
		return describeValidationError(err)
	}

	if config.TaxRules != nil {
		if err := ip.validateTaxRules(config.TaxRules); err != nil {
			return fmt.Errorf("tax rules validation failed: %w", err)
		}
	}
	taxYear, err := config.ResolveTaxYear()
	if err != nil {
		return err
	}
	if err := validateOptimizerStep(config.Optimizer.Step, taxYear.Limits.EmployeeAnnualMax); err != nil {
		return err
	}

	seen := make(map[string]int, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if j, dup := seen[scenario.Name]; dup {
			return fmt.Errorf("scenario %d: duplicate name %q (also scenario %d)", i, scenario.Name, j)
		}
		seen[scenario.Name] = i

		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}

	return nil
}

// validateOptimizerStep rejects a grid step that would split the largest possible
// contribution into more than domain.MaxOptimizerSteps intervals.
func validateOptimizerStep(step, employeeMax decimal.Decimal) error {
	if !step.IsPositive() {
		return nil
	}
	if employeeMax.Div(step).GreaterThan(decimal.NewFromInt(domain.MaxOptimizerSteps)) {
		return fmt.Errorf("optimizer.step %s splits the %s contribution limit into more than %d steps",
			step, employeeMax, domain.MaxOptimizerSteps)
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.SolveForTarget && scenario.TargetPerPaycheck == nil {
		return fmt.Errorf("%s: solve_for_target requires target_per_paycheck", scenario.Name)
	}
	return nil
}

func (ip *InputParser) validateTaxRules(rules *domain.TaxYear) error {
	if err := validateBrackets(rules.Federal); err != nil {
		return fmt.Errorf("federal: %w", err)
	}
	if err := validateBrackets(rules.State); err != nil {
		return fmt.Errorf("state: %w", err)
	}

	if !rules.Limits.EmployeeAnnualMax.IsPositive() {
		return fmt.Errorf("limits.employee_annual_max must be positive, got %s", rules.Limits.EmployeeAnnualMax)
	}
	if rules.Limits.RothIRAAnnualMax.IsNegative() {
		return fmt.Errorf("limits.roth_ira_annual_max cannot be negative, got %s", rules.Limits.RothIRAAnnualMax)
	}
	if rules.FICA.SocialSecurityWageBase.IsNegative() {
		return fmt.Errorf("fica.social_security_wage_base cannot be negative, got %s", rules.FICA.SocialSecurityWageBase)
	}

	rates := map[string]decimal.Decimal{
		"fica.social_security_rate": rules.FICA.SocialSecurityRate,
		"fica.medicare_rate":        rules.FICA.MedicareRate,
		"capital_gains_rate":        rules.CapitalGainsRate,
		"brokerage_gain_fraction":   rules.BrokerageGainFraction,
	}
	for name, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1, got %s", name, rate)
		}
	}
	return nil
}

// validateBrackets checks that a table is contiguous from zero, strictly increasing,
// has non-decreasing rates and is unbounded only in its last bracket.
func validateBrackets(table domain.TaxBracketTable) error {
	if len(table.Brackets) == 0 {
		return errors.New("at least one bracket is required")
	}
	if !table.Brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", table.Brackets[0].Min)
	}

	last := len(table.Brackets) - 1
	for i, b := range table.Brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate must be in [0, 1), got %s", i, b.Rate)
		}
		if b.Unbounded() != (i == last) {
			return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
		}
		if !b.Unbounded() && !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d: max %s must exceed min %s", i, b.Max, b.Min)
		}
		if i == 0 {
			continue
		}
		prev := table.Brackets[i-1]
		if !prev.Max.Equal(b.Min) {
			return fmt.Errorf("bracket %d: min %s must equal previous max %s", i, b.Min, prev.Max)
		}
		if b.Rate.LessThan(prev.Rate) {
			return fmt.Errorf("bracket %d: rate %s is lower than previous rate %s", i, b.Rate, prev.Rate)
		}
	}
	return nil
}

func describeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Configuration.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// SaveConfiguration writes a configuration as YAML.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	target := decimal.NewFromInt(3500)
	rothCap := decimal.NewFromInt(6000)

	return &domain.Configuration{
		TaxYear:      domain.DefaultTaxYear,
		PayFrequency: domain.PayBiweekly,
		Retirement: domain.RetirementAssumptions{
			Income:          decimal.NewFromInt(40000),
			ReturnPercent:   decimal.NewFromInt(5),
			WithdrawalYears: 30,
		},
		Solver:    domain.DefaultSolverSettings(),
		Optimizer: domain.DefaultOptimizerSettings(),
		Scenarios: []domain.Scenario{
			{
				Name:                 "Ten Percent Traditional",
				GrossSalary:          decimal.NewFromInt(150000),
				ContributionPercent:  decimal.NewFromInt(10),
				EmployerMatchPercent: decimal.NewFromInt(50),
				ReturnPercent:        decimal.NewFromInt(7),
				Years:                30,
			},
			{
				Name:                 "Split Roth With IRA",
				GrossSalary:          decimal.NewFromInt(150000),
				ContributionPercent:  decimal.NewFromInt(12),
				EmployerMatchPercent: decimal.NewFromInt(50),
				ReturnPercent:        decimal.NewFromInt(7),
				Years:                30,
				Roth401kCap:          &rothCap,
				RothIRAContribution:  decimal.NewFromInt(7000),
				OptimizeAllocation:   true,
			},
			{
				Name:                 "Paycheck Target",
				GrossSalary:          decimal.NewFromInt(150000),
				EmployerMatchPercent: decimal.NewFromInt(50),
				ReturnPercent:        decimal.NewFromInt(7),
				Years:                30,
				TargetPerPaycheck:    &target,
				SolveForTarget:       true,
			},
		},
	}
}
