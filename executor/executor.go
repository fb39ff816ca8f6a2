// Package executor opens a short-lived connection to a concrete engine,
// runs one statement, and normalizes the result. A connection lives for a
// single statement: no pool is shared across jobs.
package executor

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/dbrecon/dbrecon/logger"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"
	_ "github.com/sijms/go-ora/v2"
	_ "github.com/snowflakedb/gosnowflake"
)

// Row is a single record keyed by column name.
type Row = map[string]any

// ResultSet is a fully materialized query result.
type ResultSet struct {
	Rows     []Row    `json:"rows"`
	RowCount int      `json:"rowCount"`
	Fields   []string `json:"fields"`
}

// ExecuteQuery runs one statement against the configured engine and
// materializes the full result. The connection is closed on every exit
// path, including mid-query failures.
func ExecuteQuery(ctx context.Context, cfg ConnectionConfig, statement string) (*ResultSet, error) {
	driverName, dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, &ConnectionError{Engine: cfg.Type, Target: cfg.Target(), Err: err}
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, &ConnectionError{Engine: cfg.Type, Target: cfg.Target(), Err: err}
	}

	logger.GetLogger().Debug("executing statement",
		zap.String("engine", cfg.Type),
		zap.String("target", cfg.Target()))

	rows, err := db.QueryContext(ctx, statement)
	if err != nil {
		return nil, &QueryError{Engine: cfg.Type, Err: err}
	}
	defer rows.Close()

	return collectRows(cfg.Type, rows)
}

// TestConnection probes the endpoint with the engine's trivial statement.
func TestConnection(ctx context.Context, cfg ConnectionConfig) error {
	probe, err := ProbeStatement(cfg.Type)
	if err != nil {
		return err
	}
	_, err = ExecuteQuery(ctx, cfg, probe)
	return err
}

// collectRows drains a sql.Rows into a ResultSet, decoding driver byte
// slices to strings so rows serialize cleanly.
func collectRows(engine string, rows *sql.Rows) (*ResultSet, error) {
	fields, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Engine: engine, Err: err}
	}

	result := &ResultSet{Fields: fields, Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(fields))
		ptrs := make([]any, len(fields))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Engine: engine, Err: err}
		}

		row := make(Row, len(fields))
		for i, field := range fields {
			row[field] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Engine: engine, Err: err}
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
