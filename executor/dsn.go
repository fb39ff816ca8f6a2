package executor

import (
	"fmt"
	"net/url"
	"runtime"
	"strings"

	"github.com/go-sql-driver/mysql"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/snowflakedb/gosnowflake"
)

// dsnBuilder turns a connection config into a database/sql driver name and
// DSN. One entry per engine type, selected once per execution; unknown
// engines are a configuration error, never a guessed fallback.
type dsnBuilder func(ConnectionConfig) (driverName, dsn string, err error)

var dsnBuilders = map[string]dsnBuilder{
	"postgresql": postgresDSN,
	"redshift":   postgresDSN,
	"mysql":      mysqlDSN,
	"mariadb":    mysqlDSN,
	"mssql":      sqlServerDSN,
	"azuresql":   sqlServerDSN,
	"oracle":     oracleDSN,
	"snowflake":  snowflakeDSN,
	"databricks": databricksDSN,
	"sqlite":     sqliteDSN,
}

// BuildDSN resolves the driver and DSN for a connection config. Host strings
// of the form `host\instance` are split before the engine-specific builder
// runs.
func BuildDSN(cfg ConnectionConfig) (string, string, error) {
	build, ok := dsnBuilders[cfg.Type]
	if !ok {
		return "", "", &ConfigurationError{
			Reason: fmt.Sprintf("unsupported engine type %q", cfg.Type),
		}
	}
	return build(cfg.normalized())
}

func postgresDSN(c ConnectionConfig) (string, string, error) {
	sslMode := "disable"
	if c.SSL {
		sslMode = "require"
	}
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, sslMode)
	return "postgres", dsn, nil
}

func mysqlDSN(c ConnectionConfig) (string, string, error) {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.Database
	if c.SSL {
		mc.TLSConfig = "true"
	}
	return "mysql", mc.FormatDSN(), nil
}

func sqlServerDSN(c ConnectionConfig) (string, string, error) {
	query := url.Values{}
	query.Set("database", c.Database)
	if c.SSL {
		query.Set("encrypt", "true")
	} else {
		query.Set("encrypt", "disable")
	}

	u := &url.URL{Scheme: "sqlserver", Host: fmt.Sprintf("%s:%d", c.Host, c.Port)}
	if c.Instance != "" {
		// With a named instance the SQL Browser service resolves the port.
		u.Host = c.Host
		u.Path = c.Instance
	}

	if c.Trusted {
		if runtime.GOOS != "windows" {
			return "", "", &ConfigurationError{
				Reason: fmt.Sprintf(
					"integrated authentication requested for %s but no integrated-auth driver is available on %s; supply username/password instead",
					c.Target(), runtime.GOOS),
			}
		}
		query.Set("trusted_connection", "yes")
	} else {
		u.User = url.UserPassword(c.Username, c.Password)
	}

	u.RawQuery = query.Encode()
	return "sqlserver", u.String(), nil
}

func oracleDSN(c ConnectionConfig) (string, string, error) {
	opts := map[string]string{}
	if c.SSL {
		opts["SSL"] = "true"
	}
	return "oracle", go_ora.BuildUrl(c.Host, c.Port, c.Database, c.Username, c.Password, opts), nil
}

func snowflakeDSN(c ConnectionConfig) (string, string, error) {
	dsn, err := gosnowflake.DSN(&gosnowflake.Config{
		Account:  strings.TrimSuffix(c.Host, ".snowflakecomputing.com"),
		User:     c.Username,
		Password: c.Password,
		Database: c.Database,
	})
	if err != nil {
		return "", "", &ConfigurationError{Reason: "building snowflake DSN", Err: err}
	}
	return "snowflake", dsn, nil
}

func databricksDSN(c ConnectionConfig) (string, string, error) {
	if c.Instance == "" {
		return "", "", &ConfigurationError{
			Reason: "databricks connections require the warehouse HTTP path in the instance field",
		}
	}
	path := c.Instance
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "databricks", fmt.Sprintf("token:%s@%s:%d%s", c.Password, c.Host, c.Port, path), nil
}

func sqliteDSN(c ConnectionConfig) (string, string, error) {
	if c.Database == "" {
		return "", "", &ConfigurationError{
			Reason: "sqlite connections require a file path in the database field",
		}
	}
	return "sqlite3", c.Database, nil
}

// ProbeStatement returns the trivial statement used by test_connection jobs.
func ProbeStatement(engineType string) (string, error) {
	if _, ok := dsnBuilders[engineType]; !ok {
		return "", &ConfigurationError{
			Reason: fmt.Sprintf("unsupported engine type %q", engineType),
		}
	}
	if engineType == "oracle" {
		return "SELECT 1 FROM DUAL", nil
	}
	return "SELECT 1", nil
}
