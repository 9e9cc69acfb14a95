package output

import (
	"github.com/goccy/go-json"
	"github.com/rpgo/contribution-calculator/internal/domain"
)

// JSONFormatter serializes the comparison report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ComparisonReport) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
