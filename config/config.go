package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/dbrecon/dbrecon/executor"
)

// --- Configuration Structs ---

type ControlPlaneConfig struct {
	URL               string        `mapstructure:"url"`
	AgentKey          string        `mapstructure:"agent_key"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
}

type APIConfig struct {
	Port string `mapstructure:"port"`
}

type Config struct {
	ControlPlane ControlPlaneConfig                   `mapstructure:"control_plane"`
	API          APIConfig                            `mapstructure:"api"`
	Connections  map[string]executor.ConnectionConfig `mapstructure:"connections"`
}

// --- Load Configuration ---

func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("control_plane.poll_interval", 5*time.Second)
	viper.SetDefault("control_plane.heartbeat_interval", 30*time.Second)
	viper.SetDefault("api.port", "8488")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Connection resolves a named connection from the config.
func (c *Config) Connection(name string) (executor.ConnectionConfig, error) {
	conn, ok := c.Connections[name]
	if !ok {
		return executor.ConnectionConfig{}, fmt.Errorf("connection %q is not configured", name)
	}
	return conn, nil
}

// --- Validation Functions ---

// validate is a helper function to reduce repetition.
func validate(condition bool, format string, a ...any) error {
	if !condition {
		return fmt.Errorf(format, a...)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.ControlPlane.Validate(); err != nil {
		return fmt.Errorf("control plane validation failed: %w", err)
	}
	for name, conn := range c.Connections {
		if err := ValidateConnection(conn); err != nil {
			return fmt.Errorf("connection '%s' validation failed: %w", name, err)
		}
	}
	return nil
}

func (cp *ControlPlaneConfig) Validate() error {
	if err := validate(cp.URL != "", "control plane URL is required"); err != nil {
		return err
	}
	if err := validate(cp.AgentKey != "", "agent key is required"); err != nil {
		return err
	}
	if err := validate(cp.PollInterval > 0, "poll interval must be positive"); err != nil {
		return err
	}
	return validate(cp.HeartbeatInterval > 0, "heartbeat interval must be positive")
}

func ValidateConnection(conn executor.ConnectionConfig) error {
	if err := validate(conn.Type != "", "engine type is required"); err != nil {
		return err
	}
	if conn.Type == "sqlite" {
		return validate(conn.Database != "", "sqlite requires a database file path")
	}
	return validate(conn.Host != "", "host is required")
}
