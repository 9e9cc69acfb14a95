package output

import (
	"sort"

	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName      string
	NetWorthAdvantage decimal.Decimal
	// AdvantagePercent is the advantage relative to the brokerage-only lump-sum net worth.
	AdvantagePercent   decimal.Decimal
	TakeHomeCost       decimal.Decimal
	FavorsContribution bool
}

// AnalyzeScenarios picks the scenario where contributing beats the brokerage
// alternative by the widest after-tax lump-sum margin. Ties keep input order.
func AnalyzeScenarios(results *domain.ComparisonReport) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}

	ranks := make([]domain.ScenarioComparison, len(results.Scenarios))
	copy(ranks, results.Scenarios)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].NetWorthAdvantage().GreaterThan(ranks[j].NetWorthAdvantage())
	})

	best := ranks[0]
	advantage := best.NetWorthAdvantage()
	pct := decimal.Zero
	if base := best.WithoutWithdrawal.LumpSum.Net; !base.IsZero() {
		pct = advantage.Div(base).Mul(decimalHundred)
	}
	return Recommendation{
		ScenarioName:       best.Name,
		NetWorthAdvantage:  advantage,
		AdvantagePercent:   pct,
		TakeHomeCost:       best.TakeHomeCost(),
		FavorsContribution: advantage.IsPositive(),
	}
}
