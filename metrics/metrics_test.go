package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollectSystemInfo(t *testing.T) {
	info := CollectSystemInfo()
	if info.NumCPU <= 0 {
		t.Errorf("Expected positive CPU count, got %d", info.NumCPU)
	}
	if info.Platform == "" || info.GoVersion == "" {
		t.Errorf("Expected platform and go version to be populated, got %+v", info)
	}
}

func TestJobCounters(t *testing.T) {
	var c JobCounters
	c.RecordCompleted()
	c.RecordCompleted()
	c.RecordFailed()

	snap := c.Snapshot()
	if snap.Processed != 3 {
		t.Errorf("Expected 3 processed, got %d", snap.Processed)
	}
	if snap.Completed != 2 || snap.Failed != 1 {
		t.Errorf("Expected 2 completed / 1 failed, got %+v", snap)
	}
	if snap.LastJobAt.IsZero() {
		t.Error("Expected LastJobAt to be set")
	}
}

// TestJSONSnapshotStore ensures snapshots are written to and read from a file.
func TestJSONSnapshotStore(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "heartbeat.json")
	defer os.Remove(testFile)

	store := &JSONSnapshotStore{FilePath: testFile}
	snap := HeartbeatSnapshot{
		Timestamp:       time.Now().UTC(),
		CurrentCapacity: 1,
		MaxCapacity:     1,
		SystemInfo:      CollectSystemInfo(),
	}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded.CurrentCapacity != snap.CurrentCapacity {
		t.Errorf("Expected capacity %d, got %d", snap.CurrentCapacity, loaded.CurrentCapacity)
	}
	if loaded.SystemInfo.NumCPU != snap.SystemInfo.NumCPU {
		t.Errorf("Expected CPU count %d, got %d", snap.SystemInfo.NumCPU, loaded.SystemInfo.NumCPU)
	}
}
