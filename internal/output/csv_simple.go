package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/contribution-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ComparisonReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "ContributionPercent", "Years",
		"TakeHomeWith", "TakeHomeWithout", "TakeHomePerPaycheck",
		"FutureValueWith", "FutureValueWithout",
		"LumpSumNetWith", "LumpSumNetWithout", "NetWorthAdvantage",
		"AnnualNetWith", "AnnualNetWithout", "BreakEvenYears", "SolverFeasible",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioComparison(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		breakEven := ""
		if sc.BreakEven != nil {
			breakEven = sc.BreakEven.Years.StringFixed(2)
		}
		feasible := ""
		if sc.Solver != nil {
			feasible = boolToString(sc.Solver.Feasible)
		}
		row := []string{
			sc.Name,
			sc.Inputs.ContributionPercent.StringFixed(1),
			intToString(sc.Inputs.Years),
			sc.With.TakeHomePay.StringFixed(2),
			sc.Without.TakeHomePay.StringFixed(2),
			sc.TakeHomePerPaycheck.StringFixed(2),
			sc.With.TotalFutureValue.StringFixed(2),
			sc.Without.TotalFutureValue.StringFixed(2),
			sc.WithWithdrawal.LumpSum.Net.StringFixed(2),
			sc.WithoutWithdrawal.LumpSum.Net.StringFixed(2),
			sc.NetWorthAdvantage().StringFixed(2),
			sc.WithWithdrawal.Annual.Net.StringFixed(2),
			sc.WithoutWithdrawal.Annual.Net.StringFixed(2),
			breakEven,
			feasible,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
