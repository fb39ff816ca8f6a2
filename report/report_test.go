package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbrecon/dbrecon/compare"
	"github.com/dbrecon/dbrecon/executor"
)

func sampleResult() compare.ComparisonResult {
	return compare.ComparisonResult{
		Summary: compare.Summary{
			SourceRowCount:   10,
			TargetRowCount:   9,
			MatchedRows:      9,
			MismatchedRows:   1,
			SourceOnlyRows:   1,
			TargetOnlyRows:   0,
			ComparisonStatus: compare.StatusFailed,
		},
		SampleMismatches: []compare.SampleMismatch{
			{Type: compare.MismatchSourceOnly, Row: executor.Row{"id": 7}},
		},
		ExecutionTimeMs: 42,
	}
}

func TestJSONReportRoundTrip(t *testing.T) {
	gen := &JSONReportGenerator{}
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, gen.SaveReportToFile(sampleResult(), path))

	loaded, err := gen.ReportFromFilePath(path)
	require.NoError(t, err)
	assert.Equal(t, sampleResult().Summary, loaded.Summary)
	assert.Equal(t, int64(42), loaded.ExecutionTimeMs)
}

func TestHTMLReportContainsSummary(t *testing.T) {
	gen := &HTMLReportGenerator{}
	data, err := gen.GenerateComparisonReport(sampleResult())
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "failed")
	assert.Contains(t, html, "<td>10</td>")
	assert.Contains(t, html, "source_only")
}
