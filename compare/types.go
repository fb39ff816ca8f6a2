package compare

import "github.com/dbrecon/dbrecon/executor"

// Status is the overall outcome of a comparison.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// MismatchType tags which side a sampled row was found on.
type MismatchType string

const (
	MismatchSourceOnly MismatchType = "source_only"
	MismatchTargetOnly MismatchType = "target_only"
)

// maxSampleMismatches caps how many differing rows a result carries.
const maxSampleMismatches = 10

// ComparisonRequest describes one source-vs-target reconciliation.
type ComparisonRequest struct {
	Source      executor.ConnectionConfig `json:"sourceConnection"`
	Target      executor.ConnectionConfig `json:"targetConnection"`
	SourceQuery string                    `json:"sourceQuery"`
	TargetQuery string                    `json:"targetQuery"`

	// KeyColumns optionally restricts matching to a column subset; when
	// empty, all columns common to both sides are compared.
	KeyColumns []string `json:"keyColumns,omitempty"`
}

// Summary holds the reconciliation counts.
type Summary struct {
	SourceRowCount   int    `json:"sourceRowCount"`
	TargetRowCount   int    `json:"targetRowCount"`
	MatchedRows      int    `json:"matchedRows"`
	MismatchedRows   int    `json:"mismatchedRows"`
	SourceOnlyRows   int    `json:"sourceOnlyRows"`
	TargetOnlyRows   int    `json:"targetOnlyRows"`
	ComparisonStatus Status `json:"comparisonStatus"`
}

// SampleMismatch is one differing row carried in the result.
type SampleMismatch struct {
	Type MismatchType `json:"type"`
	Row  executor.Row `json:"row"`
}

// ComparisonResult is immutable once built; ownership passes to the control
// plane when the job reports.
type ComparisonResult struct {
	Summary          Summary          `json:"summary"`
	SampleMismatches []SampleMismatch `json:"sampleMismatches"`
	ExecutionTimeMs  int64            `json:"executionTimeMs"`
}
