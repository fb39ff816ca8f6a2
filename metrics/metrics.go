package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"
)

// -----------------------------
// System Info
// -----------------------------

// SystemInfo carries the coarse host metrics reported with each heartbeat.
type SystemInfo struct {
	Hostname      string `json:"hostname"`
	Platform      string `json:"platform"`
	Arch          string `json:"arch"`
	NumCPU        int    `json:"num_cpu"`
	GoVersion     string `json:"go_version"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	NumGoroutine  int    `json:"num_goroutine"`
}

// CollectSystemInfo samples the current process and host.
func CollectSystemInfo() SystemInfo {
	hostname, _ := os.Hostname()
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return SystemInfo{
		Hostname:      hostname,
		Platform:      runtime.GOOS,
		Arch:          runtime.GOARCH,
		NumCPU:        runtime.NumCPU(),
		GoVersion:     runtime.Version(),
		MemoryAllocMB: mem.Alloc / 1024 / 1024,
		NumGoroutine:  runtime.NumGoroutine(),
	}
}

// -----------------------------
// Job Counters
// -----------------------------

// JobCounters tracks jobs processed by one agent instance. Safe for use
// from the poll and heartbeat loops concurrently.
type JobCounters struct {
	mu        sync.Mutex
	processed int64
	completed int64
	failed    int64
	lastJobAt time.Time
}

// CountersSnapshot is an immutable copy of the counters.
type CountersSnapshot struct {
	Processed int64     `json:"processed"`
	Completed int64     `json:"completed"`
	Failed    int64     `json:"failed"`
	LastJobAt time.Time `json:"last_job_at"`
}

func (c *JobCounters) RecordCompleted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed++
	c.completed++
	c.lastJobAt = time.Now().UTC()
}

func (c *JobCounters) RecordFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed++
	c.failed++
	c.lastJobAt = time.Now().UTC()
}

func (c *JobCounters) Snapshot() CountersSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountersSnapshot{
		Processed: c.processed,
		Completed: c.completed,
		Failed:    c.failed,
		LastJobAt: c.lastJobAt,
	}
}

// -----------------------------
// Heartbeat Snapshot Storage
// -----------------------------

// HeartbeatSnapshot is what the agent last reported to the control plane.
type HeartbeatSnapshot struct {
	Timestamp       time.Time        `json:"timestamp"`
	CurrentCapacity int              `json:"current_capacity"`
	MaxCapacity     int              `json:"max_capacity"`
	ActiveJobs      int              `json:"active_jobs"`
	SystemInfo      SystemInfo       `json:"system_info"`
	Counters        CountersSnapshot `json:"counters"`
}

// SnapshotStore abstracts heartbeat snapshot storage.
type SnapshotStore interface {
	Save(snap HeartbeatSnapshot) error
	SaveWithContext(ctx context.Context, snap HeartbeatSnapshot) error
}

// JSONSnapshotStore stores the latest snapshot as JSON.
type JSONSnapshotStore struct {
	FilePath string
}

func (j *JSONSnapshotStore) Save(snap HeartbeatSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if j.FilePath != "" {
		return os.WriteFile(j.FilePath, data, 0644)
	}
	fmt.Println(string(data))
	return nil
}

func (j *JSONSnapshotStore) SaveWithContext(ctx context.Context, snap HeartbeatSnapshot) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return j.Save(snap)
	}
}

// Load reads the last stored snapshot back.
func (j *JSONSnapshotStore) Load() (HeartbeatSnapshot, error) {
	var snap HeartbeatSnapshot
	data, err := os.ReadFile(j.FilePath)
	if err != nil {
		return snap, err
	}
	err = json.Unmarshal(data, &snap)
	return snap, err
}
