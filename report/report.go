package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/dbrecon/dbrecon/compare"
)

// -----------------------------
// Report Generator Interfaces
// -----------------------------

// ReportGenerator renders a comparison result for humans or machines.
type ReportGenerator interface {
	GenerateComparisonReport(result compare.ComparisonResult) ([]byte, error)
	SaveReportToFile(result compare.ComparisonResult, filePath string) error
}

// -----------------------------
// JSON Report Generator
// -----------------------------

// JSONReportGenerator generates JSON reports.
type JSONReportGenerator struct{}

func (j *JSONReportGenerator) GenerateComparisonReport(result compare.ComparisonResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (j *JSONReportGenerator) SaveReportToFile(result compare.ComparisonResult, filePath string) error {
	data, err := j.GenerateComparisonReport(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// ReportFromFilePath loads a previously saved report.
func (j *JSONReportGenerator) ReportFromFilePath(path string) (compare.ComparisonResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return compare.ComparisonResult{}, err
	}

	var result compare.ComparisonResult
	if err := json.Unmarshal(data, &result); err != nil {
		return compare.ComparisonResult{}, err
	}
	return result, nil
}

// -----------------------------
// HTML Report Generator
// -----------------------------

// HTMLReportGenerator generates HTML reports.
type HTMLReportGenerator struct{}

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Comparison Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f4f4f4; }
        .passed { color: #2e7d32; font-weight: bold; }
        .failed { color: #c62828; font-weight: bold; }
    </style>
</head>
<body>
    <h1>Comparison Report</h1>
    <p>Status: <span class="{{.Summary.ComparisonStatus}}">{{.Summary.ComparisonStatus}}</span></p>
    <p>Execution time: {{.ExecutionTimeMs}} ms</p>
    <table>
        <tr><th>Source rows</th><td>{{.Summary.SourceRowCount}}</td></tr>
        <tr><th>Target rows</th><td>{{.Summary.TargetRowCount}}</td></tr>
        <tr><th>Matched</th><td>{{.Summary.MatchedRows}}</td></tr>
        <tr><th>Mismatched</th><td>{{.Summary.MismatchedRows}}</td></tr>
        <tr><th>Source only</th><td>{{.Summary.SourceOnlyRows}}</td></tr>
        <tr><th>Target only</th><td>{{.Summary.TargetOnlyRows}}</td></tr>
    </table>
    {{if .SampleMismatches}}
    <h2>Sample Mismatches</h2>
    <table>
        <tr><th>Side</th><th>Row</th></tr>
        {{range .SampleMismatches}}
        <tr><td>{{.Type}}</td><td>{{printf "%v" .Row}}</td></tr>
        {{end}}
    </table>
    {{end}}
</body>
</html>
`

func (h *HTMLReportGenerator) GenerateComparisonReport(result compare.ComparisonResult) ([]byte, error) {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, result); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

func (h *HTMLReportGenerator) SaveReportToFile(result compare.ComparisonResult, filePath string) error {
	data, err := h.GenerateComparisonReport(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
