package output_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stddec "github.com/shopspring/decimal"

	"github.com/rpgo/contribution-calculator/internal/calculation"
	"github.com/rpgo/contribution-calculator/internal/config"
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/rpgo/contribution-calculator/internal/output"
)

func exampleReport(t *testing.T) *domain.ComparisonReport {
	t.Helper()
	cfg := config.NewInputParser().CreateExampleConfiguration()
	engine, err := calculation.NewCalculationEngineForConfig(cfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	report, err := engine.RunScenarios(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunScenarios: %v", err)
	}
	return report
}

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(stddec.NewFromFloat(123.45)); got != "$123.45" {
		t.Fatalf("FormatCurrency = %q", got)
	}
	if got := output.FormatPercentage(stddec.NewFromFloat(12.34)); got != "12.34%" {
		t.Fatalf("FormatPercentage = %q", got)
	}
}

func TestReportGenerator_JSON_CSV(t *testing.T) {
	report := exampleReport(t)
	dir := t.TempDir()

	for _, format := range []string{"json", "csv", "detailed-csv"} {
		paths, err := output.GenerateReport(report, format, dir)
		if err != nil {
			t.Fatalf("%s: GenerateReport error: %v", format, err)
		}
		if len(paths) != 1 {
			t.Fatalf("%s: expected one file, got %v", format, paths)
		}
		if filepath.Ext(paths[0]) != "."+output.ExtensionFor(format) {
			t.Fatalf("%s: unexpected extension in %s", format, paths[0])
		}
		info, err := os.Stat(paths[0])
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s: expected non-empty file at %s (%v)", format, paths[0], err)
		}
	}
}

func TestGenerateReportAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	paths, err := output.GenerateReport(exampleReport(t), "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("expected 4 files, got %d: %v", len(paths), paths)
	}
	exts := map[string]bool{}
	for _, p := range paths {
		if !strings.HasPrefix(filepath.Base(p), "contribution_report_") {
			t.Fatalf("unexpected file name %s", p)
		}
		exts[filepath.Ext(p)] = true
	}
	for _, ext := range []string{".txt", ".csv", ".html", ".json"} {
		if !exts[ext] {
			t.Fatalf("missing %s output in %v", ext, paths)
		}
	}
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	_, err := output.GenerateReport(exampleReport(t), "pdf", t.TempDir())
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "Try one of:") || !strings.Contains(err.Error(), "detailed-csv") {
		t.Fatalf("expected formatter list in error, got %v", err)
	}
}

func TestWriteReport(t *testing.T) {
	report := exampleReport(t)

	var buf bytes.Buffer
	if err := output.WriteReport(&buf, report, "verbose"); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	for _, sc := range report.Scenarios {
		if !strings.Contains(buf.String(), sc.Name) {
			t.Fatalf("expected scenario %q in output", sc.Name)
		}
	}

	buf.Reset()
	if err := output.WriteReport(&buf, report, "all"); !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected \"all\" to be rejected for a single writer, got %v", err)
	}
}
