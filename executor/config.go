package executor

import "strings"

// ConnectionConfig identifies one database endpoint. The shape matches the
// etl_comparison and test_connection job payloads; it is treated as
// immutable once a query has executed against it.
type ConnectionConfig struct {
	Type     string `json:"type" yaml:"type" mapstructure:"type"`
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port"`
	Database string `json:"database" yaml:"database" mapstructure:"database"`
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	Password string `json:"password" yaml:"password" mapstructure:"password"`
	SSL      bool   `json:"ssl" yaml:"ssl" mapstructure:"ssl"`

	// Instance names a SQL Server instance; for Databricks it carries the
	// warehouse HTTP path.
	Instance string `json:"instance,omitempty" yaml:"instance,omitempty" mapstructure:"instance"`

	// Trusted selects integrated auth for the SQL Server family.
	Trusted bool `json:"trusted,omitempty" yaml:"trusted,omitempty" mapstructure:"trusted"`
}

// normalized returns a copy with any `host\instance` target split into
// separate host and instance fields. An instance already set explicitly wins.
func (c ConnectionConfig) normalized() ConnectionConfig {
	if host, instance, found := strings.Cut(c.Host, `\`); found {
		c.Host = host
		if c.Instance == "" {
			c.Instance = instance
		}
	}
	return c
}

// Target renders the endpoint for log and error messages, without
// credentials.
func (c ConnectionConfig) Target() string {
	host := c.Host
	if c.Instance != "" {
		host += `\` + c.Instance
	}
	return host
}
