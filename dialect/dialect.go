// Package dialect provides per-engine SQL syntax rules: identifier and
// string quoting, pagination clauses, and schema-introspection statements.
package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedEngine is returned when no dialect is registered for an
// engine type. It is a configuration error and is never retried.
var ErrUnsupportedEngine = errors.New("unsupported engine type")

// Dialect describes the engine-specific SQL syntax for one database product.
type Dialect interface {
	// Name returns the engine type the dialect was registered under.
	Name() string

	// QuoteIdentifier quotes a single identifier segment, escaping the
	// engine's quote character by doubling it.
	QuoteIdentifier(name string) string

	// QuoteString quotes a string literal, escaping embedded single quotes.
	QuoteString(value string) string

	// LimitClause returns the trailing pagination fragment for the engine.
	LimitClause(limit, offset int) string

	// CurrentTimestamp returns the engine's current-timestamp expression.
	CurrentTimestamp() string

	// SupportsThreePartNames reports whether the engine accepts
	// database.schema.table qualification.
	SupportsThreePartNames() bool

	// TablesQuery returns a statement listing base tables, optionally
	// filtered by schema. Result columns are (table_schema, table_name).
	TablesQuery(database, schema string) string

	// ColumnsQuery returns a statement listing the columns of one table.
	ColumnsQuery(database, schema, table string) string
}

// TopLimiter is implemented by SQL-Server-family dialects, which use a
// leading TOP clause instead of a trailing LIMIT when no offset is requested.
type TopLimiter interface {
	TopClause(n int) string
}

// registry maps engine type strings to their dialect. Adding an engine means
// adding one entry here plus its implementation; call sites never branch on
// the engine type themselves.
var registry = map[string]Dialect{
	"postgresql": &Postgres{name: "postgresql"},
	"redshift":   &Postgres{name: "redshift"},
	"mysql":      &MySQL{name: "mysql"},
	"mariadb":    &MySQL{name: "mariadb"},
	"mssql":      &SQLServer{name: "mssql"},
	"azuresql":   &SQLServer{name: "azuresql"},
	"oracle":     &Oracle{},
	"snowflake":  &Snowflake{},
	"databricks": &Databricks{},
	"sqlite":     &SQLite{},
}

// Lookup resolves the dialect for an engine type. Unregistered types fail
// with ErrUnsupportedEngine; the caller must not guess a fallback.
func Lookup(engineType string) (Dialect, error) {
	d, ok := registry[engineType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngine, engineType)
	}
	return d, nil
}

// Registered returns the engine types with a registered dialect.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// escapeByDoubling doubles every occurrence of the quote character, the
// escaping rule shared by all supported engines.
func escapeByDoubling(s, quoteChar string) string {
	return strings.ReplaceAll(s, quoteChar, quoteChar+quoteChar)
}

// quoteStringLiteral wraps a value in single quotes, doubling embedded
// single quotes. Every supported engine shares this literal syntax.
func quoteStringLiteral(value string) string {
	return "'" + escapeByDoubling(value, "'") + "'"
}
