package output

import (
	"strconv"

	moneypkg "github.com/rpgo/contribution-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return moneypkg.NewMoneyFromDecimal(amount).Format()
}

// FormatWholeCurrency formats a decimal as whole dollars, for wide tables.
func FormatWholeCurrency(amount decimal.Decimal) string {
	return moneypkg.NewMoneyFromDecimal(amount).FormatWhole()
}

// FormatPercentage formats a decimal percent (0-100) with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
