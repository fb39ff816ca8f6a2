package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dbrecon/dbrecon/metrics"
)

// agentKeyHeader carries the static per-agent key on every call.
const agentKeyHeader = "X-Agent-Key"

// HeartbeatPayload is the periodic capacity report.
type HeartbeatPayload struct {
	CurrentCapacity int                `json:"current_capacity"`
	MaxCapacity     int                `json:"max_capacity"`
	ActiveJobs      int                `json:"active_jobs"`
	SystemInfo      metrics.SystemInfo `json:"system_info"`
}

// Client talks to the control plane. All calls authenticate with the same
// opaque agent key; rotation is the control plane's concern.
type Client struct {
	baseURL  string
	agentKey string
	http     *http.Client
}

// NewClient builds a control-plane client for the given base URL and key.
func NewClient(baseURL, agentKey string) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		agentKey: agentKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Poll fetches pending jobs. Zero jobs is a normal, empty response.
func (c *Client) Poll(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.do(ctx, http.MethodGet, "/api/agent/jobs", nil, &jobs); err != nil {
		return nil, fmt.Errorf("polling for jobs: %w", err)
	}
	return jobs, nil
}

// Start marks a job started. The call is idempotent and carries no payload.
func (c *Client) Start(ctx context.Context, jobID string) error {
	path := fmt.Sprintf("/api/agent/jobs/%s/start", jobID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("marking job %s started: %w", jobID, err)
	}
	return nil
}

// Report submits a job's terminal status and result or error message.
func (c *Client) Report(ctx context.Context, jobID string, report JobReport) error {
	path := fmt.Sprintf("/api/agent/jobs/%s/result", jobID)
	if err := c.do(ctx, http.MethodPost, path, report, nil); err != nil {
		return fmt.Errorf("reporting job %s: %w", jobID, err)
	}
	return nil
}

// Heartbeat reports current capacity and system metrics.
func (c *Client) Heartbeat(ctx context.Context, payload HeartbeatPayload) error {
	if err := c.do(ctx, http.MethodPost, "/api/agent/heartbeat", payload, nil); err != nil {
		return fmt.Errorf("sending heartbeat: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(agentKeyHeader, c.agentKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("control plane returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
