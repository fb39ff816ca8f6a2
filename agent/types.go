package agent

import "encoding/json"

// JobType names the work an agent knows how to dispatch.
type JobType string

const (
	JobTestConnection JobType = "test_connection"
	JobFetchMetadata  JobType = "fetch_metadata"
	JobETLComparison  JobType = "etl_comparison"
)

// JobStatus values reported back to the control plane.
type JobStatus string

const (
	JobStatusStarted   JobStatus = "started"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job is one unit of pending work handed out by the control plane. The
// agent only reads it; all state changes go through the report calls.
type Job struct {
	ID      string          `json:"id"`
	Type    JobType         `json:"job_type"`
	Payload json.RawMessage `json:"payload"`
}

// JobReport is the terminal result submitted for a job.
type JobReport struct {
	Status       JobStatus       `json:"status"`
	ResultData   json.RawMessage `json:"result_data,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// ProbeResult is the payload of a completed test_connection job. A failed
// probe is a normal completion, not an agent failure.
type ProbeResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
