// Package agent implements the job runtime: a poll loop that fetches work
// from the control plane, dispatches it by job type, and reports outcomes,
// plus an independent heartbeat loop.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dbrecon/dbrecon/compare"
	"github.com/dbrecon/dbrecon/executor"
	"github.com/dbrecon/dbrecon/logger"
	"github.com/dbrecon/dbrecon/metrics"
)

// Options configures an Agent's timers and optional snapshot store.
type Options struct {
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	SnapshotStore     metrics.SnapshotStore
}

// Agent runs one job at a time. A poll result arriving while a job is in
// flight is dropped, not queued; the heartbeat loop keeps its own timer and
// is never blocked by job execution.
type Agent struct {
	client   *Client
	opts     Options
	execute  compare.QueryFunc
	probe    func(ctx context.Context, cfg executor.ConnectionConfig) error
	busy     atomic.Bool
	counters metrics.JobCounters
	logger   *zap.Logger
}

// NewAgent builds an agent around a control-plane client.
func NewAgent(client *Client, opts Options) *Agent {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = 30 * time.Second
	}
	return &Agent{
		client:  client,
		opts:    opts,
		execute: executor.ExecuteQuery,
		probe:   executor.TestConnection,
		logger:  logger.GetLogger(),
	}
}

// Busy reports whether a job is currently in flight.
func (a *Agent) Busy() bool { return a.busy.Load() }

// Counters returns a snapshot of the job counters.
func (a *Agent) Counters() metrics.CountersSnapshot { return a.counters.Snapshot() }

// Run drives the poll and heartbeat loops until the context is canceled.
// Transport errors are logged and retried on the next tick at the fixed
// interval; nothing that happens inside a job stops the loops.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("Agent started",
		zap.Duration("pollInterval", a.opts.PollInterval),
		zap.Duration("heartbeatInterval", a.opts.HeartbeatInterval))

	pollTicker := time.NewTicker(a.opts.PollInterval)
	defer pollTicker.Stop()
	heartbeatTicker := time.NewTicker(a.opts.HeartbeatInterval)
	defer heartbeatTicker.Stop()

	a.heartbeat(ctx)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Agent stopping")
			return ctx.Err()
		case <-pollTicker.C:
			a.pollOnce(ctx)
		case <-heartbeatTicker.C:
			a.heartbeat(ctx)
		}
	}
}

// pollOnce fetches pending jobs and claims at most one.
func (a *Agent) pollOnce(ctx context.Context) {
	if a.busy.Load() {
		return
	}

	jobs, err := a.client.Poll(ctx)
	if err != nil {
		a.logger.Warn("Poll failed", zap.Error(err))
		return
	}
	if len(jobs) == 0 {
		return
	}

	job := jobs[0]
	if !a.busy.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer a.busy.Store(false)
		a.runJob(ctx, job)
	}()
}

// runJob walks one job through started → completed|failed. Every dispatch
// error is converted into a failed report here; the agent process survives.
func (a *Agent) runJob(ctx context.Context, job Job) {
	a.logger.Info("Job received", zap.String("id", job.ID), zap.String("type", string(job.Type)))

	if err := a.client.Start(ctx, job.ID); err != nil {
		a.logger.Warn("Failed to mark job started", zap.String("id", job.ID), zap.Error(err))
	}

	result, err := a.safeDispatch(ctx, job)
	if err != nil {
		a.counters.RecordFailed()
		a.report(ctx, job.ID, JobReport{Status: JobStatusFailed, ErrorMessage: err.Error()})
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		a.counters.RecordFailed()
		a.report(ctx, job.ID, JobReport{Status: JobStatusFailed, ErrorMessage: fmt.Sprintf("encoding result: %v", err)})
		return
	}

	a.counters.RecordCompleted()
	a.report(ctx, job.ID, JobReport{Status: JobStatusCompleted, ResultData: data})
}

func (a *Agent) report(ctx context.Context, jobID string, rep JobReport) {
	if err := a.client.Report(ctx, jobID, rep); err != nil {
		a.logger.Error("Failed to report job result", zap.String("id", jobID), zap.Error(err))
		return
	}
	a.logger.Info("Job reported", zap.String("id", jobID), zap.String("status", string(rep.Status)))
}

// safeDispatch shields the agent from panics inside job execution.
func (a *Agent) safeDispatch(ctx context.Context, job Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return a.dispatch(ctx, job)
}

type connectionPayload struct {
	Connection executor.ConnectionConfig `json:"connection"`
}

func (a *Agent) dispatch(ctx context.Context, job Job) (any, error) {
	switch job.Type {
	case JobTestConnection:
		var payload connectionPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decoding test_connection payload: %w", err)
		}
		// A failed probe is a normal completed job.
		if err := a.probe(ctx, payload.Connection); err != nil {
			return ProbeResult{Success: false, Error: err.Error()}, nil
		}
		return ProbeResult{Success: true}, nil

	case JobFetchMetadata:
		var payload connectionPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decoding fetch_metadata payload: %w", err)
		}
		return FetchMetadata(ctx, a.execute, payload.Connection)

	case JobETLComparison:
		var req compare.ComparisonRequest
		if err := json.Unmarshal(job.Payload, &req); err != nil {
			return nil, fmt.Errorf("decoding etl_comparison payload: %w", err)
		}
		return compare.NewEngineWithExecutor(a.execute).Compare(ctx, req)

	default:
		return nil, fmt.Errorf("Unknown job type: %s", job.Type)
	}
}

// heartbeat reports capacity and system metrics; it never touches the job
// slot beyond reading the busy flag.
func (a *Agent) heartbeat(ctx context.Context) {
	activeJobs := 0
	capacity := 1
	if a.busy.Load() {
		activeJobs = 1
		capacity = 0
	}

	payload := HeartbeatPayload{
		CurrentCapacity: capacity,
		MaxCapacity:     1,
		ActiveJobs:      activeJobs,
		SystemInfo:      metrics.CollectSystemInfo(),
	}
	if err := a.client.Heartbeat(ctx, payload); err != nil {
		a.logger.Warn("Heartbeat failed", zap.Error(err))
		return
	}

	if a.opts.SnapshotStore != nil {
		snap := metrics.HeartbeatSnapshot{
			Timestamp:       time.Now().UTC(),
			CurrentCapacity: payload.CurrentCapacity,
			MaxCapacity:     payload.MaxCapacity,
			ActiveJobs:      payload.ActiveJobs,
			SystemInfo:      payload.SystemInfo,
			Counters:        a.counters.Snapshot(),
		}
		if err := a.opts.SnapshotStore.SaveWithContext(ctx, snap); err != nil {
			a.logger.Warn("Failed to store heartbeat snapshot", zap.Error(err))
		}
	}
}
