package dialect

import "fmt"

// Oracle uses double-quoted identifiers, OFFSET/FETCH pagination (12c+),
// and the ALL_TABLES/ALL_TAB_COLUMNS dictionary views for introspection.
type Oracle struct{}

func (d *Oracle) Name() string { return "oracle" }

func (d *Oracle) QuoteIdentifier(name string) string {
	return `"` + escapeByDoubling(name, `"`) + `"`
}

func (d *Oracle) QuoteString(value string) string {
	return quoteStringLiteral(value)
}

func (d *Oracle) LimitClause(limit, offset int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}

func (d *Oracle) CurrentTimestamp() string { return "SYSTIMESTAMP" }

func (d *Oracle) SupportsThreePartNames() bool { return false }

func (d *Oracle) TablesQuery(database, schema string) string {
	q := `SELECT owner AS table_schema, table_name FROM all_tables`
	if schema != "" {
		q += ` WHERE owner = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY owner, table_name`
}

func (d *Oracle) ColumnsQuery(database, schema, table string) string {
	q := `SELECT column_name, data_type, nullable FROM all_tab_columns ` +
		`WHERE table_name = ` + d.QuoteString(table)
	if schema != "" {
		q += ` AND owner = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY column_id`
}
