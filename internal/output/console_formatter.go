package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rpgo/contribution-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ComparisonReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CONTRIBUTION VS BROKERAGE SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Tax Year: %d  Pay Frequency: %s\n", results.TaxYear, results.PayFrequency)
	fmt.Fprintln(&buf)
	scenarios := append([]domain.ScenarioComparison(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		fmt.Fprintf(&buf, "%s: Contribution=%s%% TakeHome/Paycheck=%s FV With=%s Without=%s\n",
			sc.Name,
			sc.Inputs.ContributionPercent.String(),
			FormatCurrency(sc.TakeHomePerPaycheck),
			FormatCurrency(sc.With.TotalFutureValue),
			FormatCurrency(sc.Without.TotalFutureValue),
		)
		fmt.Fprintf(&buf, "  LumpSumNet With=%s Without=%s Advantage=%s\n",
			FormatCurrency(sc.WithWithdrawal.LumpSum.Net),
			FormatCurrency(sc.WithoutWithdrawal.LumpSum.Net),
			FormatCurrency(sc.NetWorthAdvantage()),
		)
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.NetWorthAdvantage), FormatPercentage(rec.AdvantagePercent))
	}
	return buf.Bytes(), nil
}
