package dialect

import "fmt"

// MySQL implements the dialect shared by MySQL and MariaDB: backtick
// identifiers, `LIMIT offset, count` pagination, three-part naming.
type MySQL struct {
	name string
}

func (d *MySQL) Name() string { return d.name }

func (d *MySQL) QuoteIdentifier(name string) string {
	return "`" + escapeByDoubling(name, "`") + "`"
}

func (d *MySQL) QuoteString(value string) string {
	return quoteStringLiteral(value)
}

func (d *MySQL) LimitClause(limit, offset int) string {
	if offset > 0 {
		return fmt.Sprintf("LIMIT %d, %d", offset, limit)
	}
	return fmt.Sprintf("LIMIT %d", limit)
}

func (d *MySQL) CurrentTimestamp() string { return "NOW()" }

func (d *MySQL) SupportsThreePartNames() bool { return true }

func (d *MySQL) TablesQuery(database, schema string) string {
	// MySQL folds schema and database into one namespace.
	q := `SELECT table_schema, table_name FROM information_schema.tables ` +
		`WHERE table_type = 'BASE TABLE'`
	if database != "" {
		q += ` AND table_schema = ` + d.QuoteString(database)
	} else if schema != "" {
		q += ` AND table_schema = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY table_schema, table_name`
}

func (d *MySQL) ColumnsQuery(database, schema, table string) string {
	ns := database
	if ns == "" {
		ns = schema
	}
	return `SELECT column_name, data_type, is_nullable FROM information_schema.columns ` +
		`WHERE table_schema = ` + d.QuoteString(ns) +
		` AND table_name = ` + d.QuoteString(table) +
		` ORDER BY ordinal_position`
}
