package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/goccy/go-json"
	"github.com/rpgo/contribution-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report. Schedule data is embedded as JSON
// for client-side charting; no chart is rendered server-side.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"whole": FormatWholeCurrency,
	"pct":   FormatPercentage,
	"add":   func(i, j int) int { return i + j },
	"json": func(v any) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.ComparisonReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ComparisonReport
		Recommendation Recommendation
		Assumptions    []string
	}{results, AnalyzeScenarios(results), reportAssumptions(results.Assumptions)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
