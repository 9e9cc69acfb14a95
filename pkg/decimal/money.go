package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is a currency amount carried at full precision and rounded to cents only for display
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string such as "1500" or "$1,500.25"
func NewMoneyFromString(value string) (Money, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// PerPeriod splits an annual amount across paychecks. Non-positive periods return zero.
func (m Money) PerPeriod(periodsPerYear int) Money {
	if periodsPerYear <= 0 {
		return Zero()
	}
	return Money{m.Decimal.Div(decimal.NewFromInt(int64(periodsPerYear)))}
}

// FromPerPeriod annualizes a per-paycheck amount.
func (m Money) FromPerPeriod(periodsPerYear int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(periodsPerYear)))}
}

// PercentOf returns pct percent (0-100) of the amount
func (m Money) PercentOf(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(pct).Div(hundred)}
}

// ClampZero returns zero for negative amounts
func (m Money) ClampZero() Money {
	if m.Decimal.IsNegative() {
		return Zero()
	}
	return m
}

// Min returns the smaller of two amounts
func Min(a, b Money) Money {
	if a.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as currency with thousands separators, e.g. -$1,234.50
func (m Money) Format() string {
	return formatWithSeparators(m.Decimal, 2)
}

// FormatWhole renders the amount as whole dollars, e.g. $15,000
func (m Money) FormatWhole() string {
	return formatWithSeparators(m.Decimal, 0)
}

func formatWithSeparators(d decimal.Decimal, places int32) string {
	s := d.Abs().StringFixed(places)
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if d.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
