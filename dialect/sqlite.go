package dialect

import "fmt"

// SQLite uses double-quoted identifiers and LIMIT/OFFSET pagination.
// Introspection goes through sqlite_master and PRAGMA table_info, which
// have no information_schema equivalent.
type SQLite struct{}

func (d *SQLite) Name() string { return "sqlite" }

func (d *SQLite) QuoteIdentifier(name string) string {
	return `"` + escapeByDoubling(name, `"`) + `"`
}

func (d *SQLite) QuoteString(value string) string {
	return quoteStringLiteral(value)
}

func (d *SQLite) LimitClause(limit, offset int) string {
	if offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	return fmt.Sprintf("LIMIT %d", limit)
}

func (d *SQLite) CurrentTimestamp() string { return "CURRENT_TIMESTAMP" }

func (d *SQLite) SupportsThreePartNames() bool { return false }

func (d *SQLite) TablesQuery(database, schema string) string {
	return `SELECT 'main' AS table_schema, name AS table_name FROM sqlite_master ` +
		`WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
}

func (d *SQLite) ColumnsQuery(database, schema, table string) string {
	return "PRAGMA table_info(" + d.QuoteString(table) + ")"
}
