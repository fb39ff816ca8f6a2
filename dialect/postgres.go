package dialect

import "fmt"

// Postgres implements the dialect shared by PostgreSQL and Redshift:
// double-quoted identifiers, LIMIT/OFFSET pagination, two-part naming.
type Postgres struct {
	name string
}

func (d *Postgres) Name() string { return d.name }

func (d *Postgres) QuoteIdentifier(name string) string {
	return `"` + escapeByDoubling(name, `"`) + `"`
}

func (d *Postgres) QuoteString(value string) string {
	return quoteStringLiteral(value)
}

func (d *Postgres) LimitClause(limit, offset int) string {
	if offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	return fmt.Sprintf("LIMIT %d", limit)
}

func (d *Postgres) CurrentTimestamp() string { return "CURRENT_TIMESTAMP" }

func (d *Postgres) SupportsThreePartNames() bool { return false }

func (d *Postgres) TablesQuery(database, schema string) string {
	q := `SELECT table_schema, table_name FROM information_schema.tables ` +
		`WHERE table_type = 'BASE TABLE' ` +
		`AND table_schema NOT IN ('pg_catalog', 'information_schema')`
	if schema != "" {
		q += ` AND table_schema = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY table_schema, table_name`
}

func (d *Postgres) ColumnsQuery(database, schema, table string) string {
	if schema == "" {
		schema = "public"
	}
	return `SELECT column_name, data_type, is_nullable FROM information_schema.columns ` +
		`WHERE table_schema = ` + d.QuoteString(schema) +
		` AND table_name = ` + d.QuoteString(table) +
		` ORDER BY ordinal_position`
}
