package calculation

import (
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateBreakEven finds the first year in which the contribution trajectory's
// balance lead over the brokerage trajectory covers the cumulative take-home pay
// given up (annualCost per year). The crossing is linearly interpolated within
// that year. It returns nil when the lead never catches up within the schedule.
func CalculateBreakEven(schedule []domain.YearBalance, annualCost decimal.Decimal) *domain.BreakEven {
	if len(schedule) == 0 {
		return nil
	}

	// Contributing costs nothing out of pocket, so the lead is never behind.
	if annualCost.LessThanOrEqual(decimal.Zero) {
		first := schedule[0]
		return &domain.BreakEven{
			Year:           first.Year,
			Years:          decimal.Zero,
			BalanceLead:    first.WithContribution.Sub(first.WithoutContribution),
			CumulativeCost: clampZero(annualCost),
		}
	}

	prevDiff := decimal.Zero
	for i, yb := range schedule {
		lead := yb.WithContribution.Sub(yb.WithoutContribution)
		cost := annualCost.Mul(decimal.NewFromInt(int64(yb.Year)))
		diff := lead.Sub(cost)

		if diff.GreaterThanOrEqual(decimal.Zero) {
			fraction := decimal.Zero
			if i > 0 && prevDiff.IsNegative() {
				// diff(t) = prevDiff + t*(diff − prevDiff); solve diff(t) = 0
				fraction = prevDiff.Neg().Div(diff.Sub(prevDiff))
			}
			return &domain.BreakEven{
				Year:           yb.Year,
				Years:          decimal.NewFromInt(int64(yb.Year - 1)).Add(fraction),
				BalanceLead:    lead,
				CumulativeCost: cost,
			}
		}
		prevDiff = diff
	}

	return nil
}
