package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbrecon/dbrecon/executor"
)

func TestValidateConfig(t *testing.T) {
	validConfig := &Config{
		ControlPlane: ControlPlaneConfig{
			URL:               "https://control.example.com",
			AgentKey:          "agent-key-1",
			PollInterval:      5 * time.Second,
			HeartbeatInterval: 30 * time.Second,
		},
		Connections: map[string]executor.ConnectionConfig{
			"warehouse": {Type: "postgresql", Host: "db1", Port: 5432, Database: "dw"},
			"scratch":   {Type: "sqlite", Database: "/tmp/scratch.db"},
		},
	}
	assert.NoError(t, validConfig.Validate())

	invalidConfig := &Config{}
	assert.Error(t, invalidConfig.Validate())
}

func TestValidateControlPlane(t *testing.T) {
	cp := ControlPlaneConfig{
		URL: "https://control.example.com", AgentKey: "k",
		PollInterval: time.Second, HeartbeatInterval: time.Second,
	}
	assert.NoError(t, cp.Validate())

	cp.AgentKey = ""
	assert.Error(t, cp.Validate())
}

func TestValidateConnection(t *testing.T) {
	assert.NoError(t, ValidateConnection(executor.ConnectionConfig{Type: "mysql", Host: "h"}))
	assert.Error(t, ValidateConnection(executor.ConnectionConfig{Type: "mysql"}))
	assert.Error(t, ValidateConnection(executor.ConnectionConfig{Host: "h"}))
	assert.NoError(t, ValidateConnection(executor.ConnectionConfig{Type: "sqlite", Database: "x.db"}))
	assert.Error(t, ValidateConnection(executor.ConnectionConfig{Type: "sqlite"}))
}

func TestLoadConfig(t *testing.T) {
	yml := `
control_plane:
  url: https://control.example.com
  agent_key: key-123
connections:
  source:
    type: postgresql
    host: pg1
    port: 5432
    database: sales
    username: app
    password: secret
  target:
    type: mssql
    host: winbox\SQLEXPRESS
    port: 1433
    database: sales
    trusted: true
`
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	// Defaults apply when intervals are omitted.
	assert.Equal(t, 5*time.Second, cfg.ControlPlane.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.ControlPlane.HeartbeatInterval)
	assert.Equal(t, "8488", cfg.API.Port)

	src, err := cfg.Connection("source")
	require.NoError(t, err)
	assert.Equal(t, "postgresql", src.Type)

	tgt, err := cfg.Connection("target")
	require.NoError(t, err)
	assert.True(t, tgt.Trusted)

	_, err = cfg.Connection("missing")
	assert.Error(t, err)
}
