package dialect

import "fmt"

// Databricks uses backtick identifiers (Spark SQL) and LIMIT/OFFSET
// pagination; Unity Catalog exposes an information_schema.
type Databricks struct{}

func (d *Databricks) Name() string { return "databricks" }

func (d *Databricks) QuoteIdentifier(name string) string {
	return "`" + escapeByDoubling(name, "`") + "`"
}

func (d *Databricks) QuoteString(value string) string {
	return quoteStringLiteral(value)
}

func (d *Databricks) LimitClause(limit, offset int) string {
	if offset > 0 {
		return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
	}
	return fmt.Sprintf("LIMIT %d", limit)
}

func (d *Databricks) CurrentTimestamp() string { return "current_timestamp()" }

func (d *Databricks) SupportsThreePartNames() bool { return false }

func (d *Databricks) TablesQuery(database, schema string) string {
	q := `SELECT table_schema, table_name FROM information_schema.tables ` +
		`WHERE table_type = 'MANAGED' OR table_type = 'EXTERNAL'`
	if schema != "" {
		q = `SELECT table_schema, table_name FROM information_schema.tables ` +
			`WHERE table_schema = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY table_schema, table_name`
}

func (d *Databricks) ColumnsQuery(database, schema, table string) string {
	q := `SELECT column_name, data_type, is_nullable FROM information_schema.columns ` +
		`WHERE table_name = ` + d.QuoteString(table)
	if schema != "" {
		q += ` AND table_schema = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY ordinal_position`
}
