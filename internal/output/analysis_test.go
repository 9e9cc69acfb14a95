package output

import (
	"testing"

	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func comparisonWithNets(name string, with, without int64) domain.ScenarioComparison {
	sc := domain.ScenarioComparison{Name: name}
	sc.WithWithdrawal.LumpSum.Net = decimal.NewFromInt(with)
	sc.WithoutWithdrawal.LumpSum.Net = decimal.NewFromInt(without)
	sc.With.TakeHomePay = decimal.NewFromInt(90000)
	sc.Without.TakeHomePay = decimal.NewFromInt(100000)
	return sc
}

func TestAnalyzeScenarios_SelectsLargestAdvantage(t *testing.T) {
	report := &domain.ComparisonReport{
		Scenarios: []domain.ScenarioComparison{
			comparisonWithNets("Scenario A", 1_100_000, 1_000_000),
			comparisonWithNets("Scenario B", 1_250_000, 1_000_000),
			comparisonWithNets("Scenario C", 900_000, 1_000_000),
		},
	}

	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "Scenario B" {
		t.Fatalf("expected Scenario B, got %q", rec.ScenarioName)
	}
	if !rec.NetWorthAdvantage.Equal(decimal.NewFromInt(250_000)) {
		t.Fatalf("unexpected advantage %s", rec.NetWorthAdvantage)
	}
	if !rec.AdvantagePercent.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("unexpected advantage percent %s", rec.AdvantagePercent)
	}
	if !rec.TakeHomeCost.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected take-home cost %s", rec.TakeHomeCost)
	}
	if !rec.FavorsContribution {
		t.Fatalf("expected recommendation to favor contributing")
	}
}

func TestAnalyzeScenarios_BrokerageWins(t *testing.T) {
	report := &domain.ComparisonReport{
		Scenarios: []domain.ScenarioComparison{comparisonWithNets("Only", 900_000, 1_000_000)},
	}
	rec := AnalyzeScenarios(report)
	if rec.FavorsContribution {
		t.Fatalf("expected brokerage to win")
	}
	if !rec.AdvantagePercent.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("unexpected advantage percent %s", rec.AdvantagePercent)
	}
}

func TestAnalyzeScenarios_TiesKeepInputOrder(t *testing.T) {
	report := &domain.ComparisonReport{
		Scenarios: []domain.ScenarioComparison{
			comparisonWithNets("First", 1_100_000, 1_000_000),
			comparisonWithNets("Second", 1_100_000, 1_000_000),
		},
	}
	if rec := AnalyzeScenarios(report); rec.ScenarioName != "First" {
		t.Fatalf("expected tie to keep first scenario, got %q", rec.ScenarioName)
	}
}

func TestAnalyzeScenarios_Empty(t *testing.T) {
	if rec := AnalyzeScenarios(nil); rec.ScenarioName != "" {
		t.Fatalf("expected empty recommendation for nil report")
	}
	if rec := AnalyzeScenarios(&domain.ComparisonReport{}); rec.ScenarioName != "" {
		t.Fatalf("expected empty recommendation for empty report")
	}
}

func TestAnalyzeScenarios_ZeroBaseline(t *testing.T) {
	report := &domain.ComparisonReport{
		Scenarios: []domain.ScenarioComparison{comparisonWithNets("Zero", 5000, 0)},
	}
	rec := AnalyzeScenarios(report)
	if !rec.AdvantagePercent.IsZero() {
		t.Fatalf("expected zero percent when baseline is zero, got %s", rec.AdvantagePercent)
	}
}
