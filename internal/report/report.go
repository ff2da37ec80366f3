// Package report renders a ranked scan into tabular output files.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hsulin/stockscan/internal/contracts"
	"github.com/hsulin/stockscan/pkg/logger"
)

// Writer serializes scan reports into the output directory. File
// names carry the generation timestamp so runs never overwrite each
// other.
type Writer struct {
	outputDir string
	logger    *logger.Logger
}

// NewWriter creates a report writer for the given directory.
func NewWriter(outputDir string, log *logger.Logger) *Writer {
	return &Writer{outputDir: outputDir, logger: log}
}

// WriteFiles renders the report as CSV and HTML files and returns
// both paths.
func (w *Writer) WriteFiles(report *contracts.ScanReport) (csvPath, htmlPath string, err error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	stamp := report.GeneratedAt.Format("20060102_1504")
	csvPath = filepath.Join(w.outputDir, fmt.Sprintf("scan_%s.csv", stamp))
	htmlPath = filepath.Join(w.outputDir, fmt.Sprintf("scan_%s.html", stamp))

	if err := writeFile(csvPath, func(f *os.File) error {
		return renderCSV(f, report)
	}); err != nil {
		return "", "", fmt.Errorf("write CSV: %w", err)
	}

	if err := writeFile(htmlPath, func(f *os.File) error {
		return renderHTMLPage(f, report)
	}); err != nil {
		return "", "", fmt.Errorf("write HTML: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"csv":  csvPath,
		"html": htmlPath,
		"rows": len(report.Records),
	}).Info("Report files written")

	return csvPath, htmlPath, nil
}

// WriteErrorReport writes a plain-text failure report so a broken run
// still leaves something to inspect.
func (w *Writer) WriteErrorReport(runErr error) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.outputDir, "error.txt")
	content := fmt.Sprintf("Time: %s\nError: %v\n", time.Now().Format(time.RFC3339), runErr)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write error report: %w", err)
	}

	w.logger.WithField("path", path).Warn("Error report written")
	return path, nil
}

func writeFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// formatOpt renders an optional value, empty when absent. Fields are
// rounded at record construction, so plain shortest formatting is
// stable across repeated serialization.
func formatOpt(v contracts.OptFloat) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}

// formatPrice renders the last price.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
