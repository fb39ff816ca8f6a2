package dialect

import "fmt"

// SQLServer implements the dialect shared by SQL Server and Azure SQL:
// bracketed identifiers, TOP for unpaginated sampling, OFFSET/FETCH
// otherwise, three-part naming.
type SQLServer struct {
	name string
}

func (d *SQLServer) Name() string { return d.name }

func (d *SQLServer) QuoteIdentifier(name string) string {
	// Only the closing bracket needs escaping inside [].
	return "[" + escapeByDoubling(name, "]") + "]"
}

func (d *SQLServer) QuoteString(value string) string {
	return quoteStringLiteral(value)
}

// TopClause returns the leading TOP fragment used when no offset is
// requested. Callers fall back to LimitClause when paginating.
func (d *SQLServer) TopClause(n int) string {
	return fmt.Sprintf("TOP %d", n)
}

func (d *SQLServer) LimitClause(limit, offset int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}

func (d *SQLServer) CurrentTimestamp() string { return "GETDATE()" }

func (d *SQLServer) SupportsThreePartNames() bool { return true }

func (d *SQLServer) TablesQuery(database, schema string) string {
	prefix := ""
	if database != "" {
		prefix = d.QuoteIdentifier(database) + "."
	}
	q := `SELECT table_schema, table_name FROM ` + prefix + `INFORMATION_SCHEMA.TABLES ` +
		`WHERE table_type = 'BASE TABLE'`
	if schema != "" {
		q += ` AND table_schema = ` + d.QuoteString(schema)
	}
	return q + ` ORDER BY table_schema, table_name`
}

func (d *SQLServer) ColumnsQuery(database, schema, table string) string {
	prefix := ""
	if database != "" {
		prefix = d.QuoteIdentifier(database) + "."
	}
	if schema == "" {
		schema = "dbo"
	}
	return `SELECT column_name, data_type, is_nullable FROM ` + prefix + `INFORMATION_SCHEMA.COLUMNS ` +
		`WHERE table_schema = ` + d.QuoteString(schema) +
		` AND table_name = ` + d.QuoteString(table) +
		` ORDER BY ordinal_position`
}
