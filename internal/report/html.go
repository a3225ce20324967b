package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/scan-io-git/depscout/internal/inventory"
)

//go:embed templates/report.html
var reportTemplate string

// htmlReportData is the payload handed to the HTML template.
type htmlReportData struct {
	Result      *inventory.ScanResult
	GeneratedAt time.Time
}

// add adds two integers and returns the result.
// helper function for html template
func add(a, b int) int {
	return a + b
}

// formatPercent renders a language percentage.
// helper function for html template
func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// formatDateTime formats a time.Time object into the report header format.
// helper function for html template
func formatDateTime(t time.Time) string {
	return t.UTC().Format("2 Jan 2006 15:04:05 MST")
}

// NewTemplate parses the embedded report template.
func NewTemplate() (*template.Template, error) {
	return template.New("report.html").
		Funcs(template.FuncMap{
			"add":            add,
			"formatPercent":  formatPercent,
			"formatDateTime": formatDateTime,
		}).
		Parse(reportTemplate)
}

// WriteHTML renders the scan result into a standalone HTML report.
func WriteHTML(result *inventory.ScanResult, outputFile string) error {
	tmpl, err := NewTemplate()
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed creating file: %w", err)
	}
	defer file.Close()

	data := htmlReportData{
		Result:      result,
		GeneratedAt: time.Now(),
	}
	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
