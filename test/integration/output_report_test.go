package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	stddec "github.com/shopspring/decimal"

	"github.com/rpgo/contribution-calculator/internal/calculation"
	"github.com/rpgo/contribution-calculator/internal/config"
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/rpgo/contribution-calculator/internal/output"
)

func TestFormatters(t *testing.T) {
	d1 := stddec.NewFromFloat(123.45)
	if got := output.FormatCurrency(d1); got != "$123.45" {
		t.Fatalf("FormatCurrency got %s", got)
	}
	// FormatPercentage expects the value already in percentage units (not a 0-1 fraction)
	d2 := stddec.NewFromFloat(12.34)
	if got := output.FormatPercentage(d2); got != "12.34%" {
		t.Fatalf("FormatPercentage got %s", got)
	}
}

func TestSaveConfiguration_WritesFile(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	out := filepath.Join(t.TempDir(), "config.yaml")
	if err := parser.SaveConfiguration(cfg, out); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		t.Fatalf("expected file exists, err: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatalf("expected non-empty file")
	}
}

func TestJSONReportMatchesEngine(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	engine, err := calculation.NewCalculationEngineForConfig(cfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	results, err := engine.RunScenarios(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunScenarios: %v", err)
	}

	var sb strings.Builder
	if err := output.WriteReport(&sb, results, "json"); err != nil {
		t.Fatalf("WriteReport json: %v", err)
	}
	var decoded domain.ComparisonReport
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, sc := range decoded.Scenarios {
		want := results.Scenarios[i]
		if sc.Name != want.Name {
			t.Fatalf("scenario %d name = %q, want %q", i, sc.Name, want.Name)
		}
		if !sc.NetWorthAdvantage().Equal(want.NetWorthAdvantage()) {
			t.Fatalf("%s: advantage %s, want %s", sc.Name, sc.NetWorthAdvantage(), want.NetWorthAdvantage())
		}
	}
}

func TestReportGenerator_EmptyReport(t *testing.T) {
	// formatters must tolerate a report with no scenarios
	empty := &domain.ComparisonReport{TaxYear: 2024, PayFrequency: domain.PayBiweekly}
	for _, format := range output.AvailableFormatterNames() {
		var sb strings.Builder
		if err := output.WriteReport(&sb, empty, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
	}
}
