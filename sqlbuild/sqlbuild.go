// Package sqlbuild assembles SQL statements from a dialect plus table and
// column identifiers. Every function is a pure string producer: nothing here
// executes SQL, and identifiers and literals always pass through the
// dialect's quoting functions.
package sqlbuild

import (
	"strings"

	"github.com/dbrecon/dbrecon/dialect"
)

// TableRef names a table as [database.]schema.table. Empty segments are
// omitted from the qualified name.
type TableRef struct {
	Database string
	Schema   string
	Table    string
}

// QualifyTable renders a TableRef with each segment quoted per the dialect.
// The database segment is only emitted for engines with three-part naming.
func QualifyTable(d dialect.Dialect, ref TableRef) string {
	segments := make([]string, 0, 3)
	if ref.Database != "" && d.SupportsThreePartNames() {
		segments = append(segments, d.QuoteIdentifier(ref.Database))
	}
	if ref.Schema != "" {
		segments = append(segments, d.QuoteIdentifier(ref.Schema))
	}
	segments = append(segments, d.QuoteIdentifier(ref.Table))
	return strings.Join(segments, ".")
}

// CountQuery builds a row-count statement for a table.
func CountQuery(d dialect.Dialect, ref TableRef) string {
	return "SELECT COUNT(*) AS row_count FROM " + QualifyTable(d, ref)
}

// SampleQuery builds a bounded SELECT over a table. SQL-Server-family
// dialects use a leading TOP clause when no offset is requested; all other
// engines take a trailing limit clause.
func SampleQuery(d dialect.Dialect, ref TableRef, limit, offset int) string {
	table := QualifyTable(d, ref)
	if top, ok := d.(dialect.TopLimiter); ok && offset == 0 {
		return "SELECT " + top.TopClause(limit) + " * FROM " + table
	}
	return "SELECT * FROM " + table + " " + d.LimitClause(limit, offset)
}

// TablesQuery builds the statement listing base tables for a database and
// optional schema filter.
func TablesQuery(d dialect.Dialect, database, schema string) string {
	return d.TablesQuery(database, schema)
}

// ColumnsQuery builds the statement describing one table's columns.
func ColumnsQuery(d dialect.Dialect, ref TableRef) string {
	return d.ColumnsQuery(ref.Database, ref.Schema, ref.Table)
}
