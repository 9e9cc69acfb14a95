package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/contribution-calculator/internal/domain"
)

// allFormats are the files written for the "all" pseudo-format.
var allFormats = []string{"console", "detailed-csv", "html", "json"}

// GenerateReport writes the report in format to a timestamped file under outputDir
// and returns the written paths. "all" writes every file-friendly format.
func GenerateReport(results *domain.ComparisonReport, format, outputDir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		paths := make([]string, 0, len(allFormats))
		for _, name := range allFormats {
			path, err := WriteFormatted(GetFormatterByName(name), results, outputDir, ExtensionFor(name))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f, err := lookup(format)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormatted(f, results, outputDir, ExtensionFor(format))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// WriteReport renders the report in format directly to w.
func WriteReport(w io.Writer, results *domain.ComparisonReport, format string) error {
	f, err := lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

func lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
