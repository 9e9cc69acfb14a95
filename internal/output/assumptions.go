package output

import (
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions rendered when a report carries none.
var DefaultAssumptions = []string{
	"Single filer, federal + one state bracket table, no deductions or credits",
	"Contributions invested monthly and compounded monthly at a constant return",
	"Employer match is a percentage of the employee contribution and is always pre-tax",
	"Brokerage withdrawals taxed at a flat long-term capital gains rate",
	"Tax brackets held constant (no inflation indexing)",
}

func reportAssumptions(assumptions []string) []string {
	if len(assumptions) == 0 {
		return DefaultAssumptions
	}
	return assumptions
}

var decimalHundred = decimal.NewFromInt(100)
