package dialect

import "fmt"

// Snowflake uses double-quoted identifiers and LIMIT/OFFSET pagination.
type Snowflake struct{}

func (d *Snowflake) Name() string { return "snowflake" }

func (d *Snowflake) QuoteIdentifier(name string) string {
	return `"` + escapeByDoubling(name, `"`) + `"`
}

func (d *Snowflake) QuoteString(value string) string {
	return quoteStringLiteral(value)
}

func (d *Snowflake) LimitClause(limit, offset int) string {
	if offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	return fmt.Sprintf("LIMIT %d", limit)
}

func (d *Snowflake) CurrentTimestamp() string { return "CURRENT_TIMESTAMP()" }

func (d *Snowflake) SupportsThreePartNames() bool { return false }

func (d *Snowflake) TablesQuery(database, schema string) string {
	q := `SELECT table_schema, table_name FROM information_schema.tables ` +
		`WHERE table_type = 'BASE TABLE'`
	if schema != "" {
		q += ` AND table_schema = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY table_schema, table_name`
}

func (d *Snowflake) ColumnsQuery(database, schema, table string) string {
	q := `SELECT column_name, data_type, is_nullable FROM information_schema.columns ` +
		`WHERE table_name = ` + d.QuoteString(table)
	if schema != "" {
		q += ` AND table_schema = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY ordinal_position`
}
