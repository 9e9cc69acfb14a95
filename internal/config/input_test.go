package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
	assert.NotNil(t, parser.validate)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(filepath.Join("..", "..", "test", "testdata", "example_config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2024, config.TaxYear)
	assert.Equal(t, domain.PayBiweekly, config.PayFrequency)
	require.Len(t, config.Scenarios, 3)

	split := config.Scenarios[1]
	assert.Equal(t, "Split Roth With IRA", split.Name)
	require.NotNil(t, split.Roth401kCap)
	assert.True(t, split.Roth401kCap.Equal(decimal.NewFromInt(6000)))
	assert.True(t, split.OptimizeAllocation)

	target := config.Scenarios[2]
	require.NotNil(t, target.TargetPerPaycheck)
	assert.True(t, target.TargetPerPaycheck.Equal(decimal.NewFromInt(3500)))
	assert.True(t, target.SolveForTarget)
}

func TestLoadFromFile_CustomTaxRules(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(filepath.Join("..", "..", "test", "testdata", "custom_tax_rules.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2030, config.TaxYear)
	assert.Equal(t, domain.PayMonthly, config.PayFrequency)

	ty, err := config.ResolveTaxYear()
	require.NoError(t, err)
	require.Len(t, ty.Federal.Brackets, 3)
	assert.True(t, ty.Federal.Brackets[2].Unbounded())
	assert.True(t, ty.Limits.EmployeeAnnualMax.Equal(decimal.NewFromInt(25000)))
	assert.True(t, ty.BrokerageGainFraction.Equal(decimal.NewFromFloat(0.6)))
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("does-not-exist.yaml")
	assert.ErrorContains(t, err, "failed to read file")
}

func TestParseAppliesDefaults(t *testing.T) {
	data := []byte(`
scenarios:
  - name: minimal
    gross_salary: 90000
    contribution_percent: 6
`)
	config, err := NewInputParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTaxYear, config.TaxYear)
	assert.Equal(t, domain.PayBiweekly, config.PayFrequency)
	assert.Equal(t, 30, config.Retirement.WithdrawalYears)
	assert.True(t, config.Retirement.ReturnPercent.Equal(decimal.NewFromInt(5)))

	defaults := domain.DefaultSolverSettings()
	assert.Equal(t, defaults.Iterations, config.Solver.Iterations)
	assert.Equal(t, defaults.Years, config.Solver.Years)
	assert.True(t, config.Solver.Tolerance.Equal(defaults.Tolerance))
	assert.True(t, config.Solver.ReturnPercent.Equal(defaults.ReturnPercent))
	assert.True(t, config.Optimizer.Step.Equal(domain.DefaultOptimizerSettings().Step))
}

func TestParseKeepsExplicitZeroSettings(t *testing.T) {
	data := []byte(`
solver:
  tolerance: 0
  years: 0
optimizer:
  step: 0
scenarios:
  - name: minimal
    gross_salary: 90000
`)
	config, err := NewInputParser().Parse(data)
	require.NoError(t, err)

	defaults := domain.DefaultSolverSettings()
	assert.True(t, config.Solver.Tolerance.IsZero())
	assert.Equal(t, 0, config.Solver.Years)
	assert.Equal(t, defaults.Iterations, config.Solver.Iterations)
	assert.True(t, config.Solver.ReturnPercent.Equal(defaults.ReturnPercent))
	assert.True(t, config.Optimizer.Step.IsZero())
}

func TestOptimizerStepBoundFollowsTaxRules(t *testing.T) {
	assert.NoError(t, validateOptimizerStep(decimal.NewFromInt(23), decimal.NewFromInt(23000)))
	assert.NoError(t, validateOptimizerStep(decimal.Zero, decimal.NewFromInt(23000)))
	assert.ErrorContains(t, validateOptimizerStep(decimal.NewFromInt(23), decimal.NewFromInt(100000)), "more than 1000 steps")
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no scenarios",
			yaml:    "tax_year: 2024\n",
			wantErr: "no scenarios provided",
		},
		{
			name:    "bad yaml",
			yaml:    "scenarios: [\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "salary must be positive",
			yaml:    "scenarios:\n  - name: a\n    gross_salary: 0\n",
			wantErr: "scenarios[0].gross_salary failed gt=0",
		},
		{
			name:    "contribution percent over 100",
			yaml:    "scenarios:\n  - name: a\n    gross_salary: 1000\n    contribution_percent: 120\n",
			wantErr: "scenarios[0].contribution_percent failed lte=100",
		},
		{
			name:    "missing name",
			yaml:    "scenarios:\n  - gross_salary: 1000\n",
			wantErr: "scenarios[0].name failed required",
		},
		{
			name:    "negative target",
			yaml:    "scenarios:\n  - name: a\n    gross_salary: 1000\n    target_per_paycheck: -5\n",
			wantErr: "target_per_paycheck failed gte=0",
		},
		{
			name:    "solve without target",
			yaml:    "scenarios:\n  - name: a\n    gross_salary: 1000\n    solve_for_target: true\n",
			wantErr: "solve_for_target requires target_per_paycheck",
		},
		{
			name:    "duplicate names",
			yaml:    "scenarios:\n  - name: a\n    gross_salary: 1000\n  - name: a\n    gross_salary: 2000\n",
			wantErr: "duplicate name",
		},
		{
			name:    "unknown tax year",
			yaml:    "tax_year: 1999\nscenarios:\n  - name: a\n    gross_salary: 1000\n",
			wantErr: "unknown tax year",
		},
		{
			name:    "unknown pay frequency",
			yaml:    "pay_frequency: hourly\nscenarios:\n  - name: a\n    gross_salary: 1000\n",
			wantErr: "unsupported pay frequency",
		},
		{
			name:    "optimizer step too fine",
			yaml:    "optimizer:\n  step: 0.05\nscenarios:\n  - name: a\n    gross_salary: 1000\n",
			wantErr: "optimizer.step 0.05 splits the 23000 contribution limit into more than 1000 steps",
		},
		{
			name:    "retirement years out of range",
			yaml:    "retirement:\n  withdrawal_years: 200\nscenarios:\n  - name: a\n    gross_salary: 1000\n",
			wantErr: "retirement.withdrawal_years failed lte=80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateBrackets(t *testing.T) {
	bound := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	rate := decimal.NewFromFloat

	tests := []struct {
		name     string
		brackets []domain.TaxBracket
		wantErr  string
	}{
		{
			name: "valid",
			brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Max: bound(100), Rate: rate(0.1)},
				{Min: decimal.NewFromInt(100), Rate: rate(0.2)},
			},
		},
		{name: "empty", wantErr: "at least one bracket"},
		{
			name:     "not starting at zero",
			brackets: []domain.TaxBracket{{Min: decimal.NewFromInt(5), Rate: rate(0.1)}},
			wantErr:  "first bracket must start at 0",
		},
		{
			name: "gap",
			brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Max: bound(100), Rate: rate(0.1)},
				{Min: decimal.NewFromInt(150), Rate: rate(0.2)},
			},
			wantErr: "must equal previous max",
		},
		{
			name: "decreasing rate",
			brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Max: bound(100), Rate: rate(0.3)},
				{Min: decimal.NewFromInt(100), Rate: rate(0.2)},
			},
			wantErr: "lower than previous rate",
		},
		{
			name:     "bounded last bracket",
			brackets: []domain.TaxBracket{{Min: decimal.Zero, Max: bound(100), Rate: rate(0.1)}},
			wantErr:  "only the last bracket may be unbounded",
		},
		{
			name: "unbounded middle bracket",
			brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Rate: rate(0.1)},
				{Min: decimal.NewFromInt(100), Rate: rate(0.2)},
			},
			wantErr: "only the last bracket may be unbounded",
		},
		{
			name: "empty bracket",
			brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Max: bound(0), Rate: rate(0.1)},
				{Min: decimal.Zero, Rate: rate(0.2)},
			},
			wantErr: "must exceed min",
		},
		{
			name:     "rate of one",
			brackets: []domain.TaxBracket{{Min: decimal.Zero, Rate: rate(1)}},
			wantErr:  "rate must be in [0, 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBrackets(domain.TaxBracketTable{Name: "test", Brackets: tt.brackets})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuiltInTaxYearsPassBracketValidation(t *testing.T) {
	parser := NewInputParser()
	for _, year := range domain.AvailableTaxYears() {
		ty, err := domain.LookupTaxYear(year)
		require.NoError(t, err)
		assert.NoError(t, parser.validateTaxRules(&ty), "tax year %d", year)
	}
}

func TestExampleConfigurationRoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(example))

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.SaveConfiguration(example, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Paycheck Target")

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, len(example.Scenarios))
	for i := range example.Scenarios {
		assert.Equal(t, example.Scenarios[i].Name, loaded.Scenarios[i].Name)
		assert.True(t, example.Scenarios[i].GrossSalary.Equal(loaded.Scenarios[i].GrossSalary))
	}
	assert.True(t, loaded.Scenarios[2].TargetPerPaycheck.Equal(*example.Scenarios[2].TargetPerPaycheck))
}
