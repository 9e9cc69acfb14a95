package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/contribution-calculator/internal/domain"
)

// CSVScheduleExporter writes the year-by-year balance schedule per scenario.
type CSVScheduleExporter struct{}

func (c CSVScheduleExporter) Name() string { return "detailed-csv" }

func (c CSVScheduleExporter) Format(results *domain.ComparisonReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "WithContribution", "WithoutContribution", "Difference", "PastBreakEven"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioComparison(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		for _, yr := range sc.Schedule {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				yr.WithContribution.StringFixed(2),
				yr.WithoutContribution.StringFixed(2),
				yr.WithContribution.Sub(yr.WithoutContribution).StringFixed(2),
				boolToString(sc.BreakEven != nil && yr.Year >= sc.BreakEven.Year),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
