package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTaxYear is returned when no built-in tables exist for a requested year.
var ErrUnknownTaxYear = errors.New("unknown tax year")

// TaxBracket represents one marginal bracket. Max is exclusive; a nil Max marks the
// top (unbounded) bracket.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket extends to infinity.
func (b TaxBracket) Unbounded() bool {
	return b.Max == nil
}

// UnmarshalYAML implements custom YAML unmarshaling for TaxBracket
func (b *TaxBracket) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Min  string  `yaml:"min"`
		Max  *string `yaml:"max,omitempty"`
		Rate string  `yaml:"rate"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	lower, err := decimal.NewFromString(aux.Min)
	if err != nil {
		return fmt.Errorf("invalid bracket min %q: %w", aux.Min, err)
	}
	rate, err := decimal.NewFromString(aux.Rate)
	if err != nil {
		return fmt.Errorf("invalid bracket rate %q: %w", aux.Rate, err)
	}
	b.Min = lower
	b.Rate = rate
	b.Max = nil

	if aux.Max != nil {
		upper, err := decimal.NewFromString(*aux.Max)
		if err != nil {
			return fmt.Errorf("invalid bracket max %q: %w", *aux.Max, err)
		}
		b.Max = &upper
	}

	return nil
}

// TaxBracketTable is a named, ordered bracket schedule for one jurisdiction.
type TaxBracketTable struct {
	Name     string       `yaml:"name" json:"name"`
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`
}

// FICAConfig contains FICA tax configuration (updated annually)
type FICAConfig struct {
	SocialSecurityWageBase decimal.Decimal `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	SocialSecurityRate     decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"` // 0.062
	MedicareRate           decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`               // 0.0145, uncapped
}

// ContributionLimits holds the statutory contribution limits for a tax year.
type ContributionLimits struct {
	EmployeeAnnualMax decimal.Decimal `yaml:"employee_annual_max" json:"employee_annual_max"`
	// TotalAnnualMax (employee + employer) is informational only; it is not enforced.
	TotalAnnualMax   decimal.Decimal `yaml:"total_annual_max" json:"total_annual_max"`
	RothIRAAnnualMax decimal.Decimal `yaml:"roth_ira_annual_max" json:"roth_ira_annual_max"`
}

// TaxYear bundles every year-specific constant the engine needs. It is passed
// explicitly to the calculators so several years can be evaluated side by side.
type TaxYear struct {
	Year    int                `yaml:"year" json:"year"`
	Federal TaxBracketTable    `yaml:"federal" json:"federal"`
	State   TaxBracketTable    `yaml:"state" json:"state"`
	FICA    FICAConfig         `yaml:"fica" json:"fica"`
	Limits  ContributionLimits `yaml:"limits" json:"limits"`

	// Flat long-term capital gains rate applied to brokerage withdrawals.
	CapitalGainsRate decimal.Decimal `yaml:"capital_gains_rate" json:"capital_gains_rate"`
	// Share of a periodic brokerage withdrawal treated as gain (the rest is basis).
	BrokerageGainFraction decimal.Decimal `yaml:"brokerage_gain_fraction" json:"brokerage_gain_fraction"`
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// californiaSingle is the single-filer California schedule used for both built-in years.
func californiaSingle() TaxBracketTable {
	return TaxBracketTable{
		Name: "state",
		Brackets: []TaxBracket{
			{decimal.Zero, bound(10756), decimal.NewFromFloat(0.01)},
			{decimal.NewFromInt(10756), bound(25499), decimal.NewFromFloat(0.02)},
			{decimal.NewFromInt(25499), bound(40245), decimal.NewFromFloat(0.04)},
			{decimal.NewFromInt(40245), bound(55866), decimal.NewFromFloat(0.06)},
			{decimal.NewFromInt(55866), bound(70606), decimal.NewFromFloat(0.08)},
			{decimal.NewFromInt(70606), bound(360659), decimal.NewFromFloat(0.093)},
			{decimal.NewFromInt(360659), bound(432787), decimal.NewFromFloat(0.103)},
			{decimal.NewFromInt(432787), bound(721314), decimal.NewFromFloat(0.113)},
			{decimal.NewFromInt(721314), nil, decimal.NewFromFloat(0.123)},
		},
	}
}

// TaxYear2024 returns the 2024 single-filer tables and limits.
func TaxYear2024() TaxYear {
	return TaxYear{
		Year: 2024,
		Federal: TaxBracketTable{
			Name: "federal",
			Brackets: []TaxBracket{
				{decimal.Zero, bound(11600), decimal.NewFromFloat(0.10)},
				{decimal.NewFromInt(11600), bound(47150), decimal.NewFromFloat(0.12)},
				{decimal.NewFromInt(47150), bound(100525), decimal.NewFromFloat(0.22)},
				{decimal.NewFromInt(100525), bound(191950), decimal.NewFromFloat(0.24)},
				{decimal.NewFromInt(191950), bound(243725), decimal.NewFromFloat(0.32)},
				{decimal.NewFromInt(243725), bound(609350), decimal.NewFromFloat(0.35)},
				{decimal.NewFromInt(609350), nil, decimal.NewFromFloat(0.37)},
			},
		},
		State: californiaSingle(),
		FICA: FICAConfig{
			SocialSecurityWageBase: decimal.NewFromInt(168600),
			SocialSecurityRate:     decimal.NewFromFloat(0.062),
			MedicareRate:           decimal.NewFromFloat(0.0145),
		},
		Limits: ContributionLimits{
			EmployeeAnnualMax: decimal.NewFromInt(23000),
			TotalAnnualMax:    decimal.NewFromInt(69000),
			RothIRAAnnualMax:  decimal.NewFromInt(7000),
		},
		CapitalGainsRate:      decimal.NewFromFloat(0.20),
		BrokerageGainFraction: decimal.NewFromFloat(0.70),
	}
}

// TaxYear2025 returns the 2025 single-filer tables and limits.
func TaxYear2025() TaxYear {
	ty := TaxYear2024()
	ty.Year = 2025
	ty.Federal = TaxBracketTable{
		Name: "federal",
		Brackets: []TaxBracket{
			{decimal.Zero, bound(11925), decimal.NewFromFloat(0.10)},
			{decimal.NewFromInt(11925), bound(48475), decimal.NewFromFloat(0.12)},
			{decimal.NewFromInt(48475), bound(103350), decimal.NewFromFloat(0.22)},
			{decimal.NewFromInt(103350), bound(197300), decimal.NewFromFloat(0.24)},
			{decimal.NewFromInt(197300), bound(250525), decimal.NewFromFloat(0.32)},
			{decimal.NewFromInt(250525), bound(626350), decimal.NewFromFloat(0.35)},
			{decimal.NewFromInt(626350), nil, decimal.NewFromFloat(0.37)},
		},
	}
	ty.FICA.SocialSecurityWageBase = decimal.NewFromInt(176100)
	ty.Limits = ContributionLimits{
		EmployeeAnnualMax: decimal.NewFromInt(23500),
		TotalAnnualMax:    decimal.NewFromInt(70000),
		RothIRAAnnualMax:  decimal.NewFromInt(7000),
	}
	return ty
}

var builtInTaxYears = map[int]func() TaxYear{
	2024: TaxYear2024,
	2025: TaxYear2025,
}

// DefaultTaxYear is used when a configuration does not name one.
const DefaultTaxYear = 2024

// LookupTaxYear returns the built-in tables for a year.
func LookupTaxYear(year int) (TaxYear, error) {
	if year == 0 {
		year = DefaultTaxYear
	}
	build, ok := builtInTaxYears[year]
	if !ok {
		return TaxYear{}, fmt.Errorf("%w: %d (available: %v)", ErrUnknownTaxYear, year, AvailableTaxYears())
	}
	return build(), nil
}

// AvailableTaxYears lists the built-in tax years in ascending order.
func AvailableTaxYears() []int {
	years := make([]int, 0, len(builtInTaxYears))
	for y := range builtInTaxYears {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
