package agent

import (
	"context"
	"fmt"

	"github.com/dbrecon/dbrecon/compare"
	"github.com/dbrecon/dbrecon/dialect"
	"github.com/dbrecon/dbrecon/executor"
	"github.com/dbrecon/dbrecon/sqlbuild"
)

// ColumnInfo describes one column in a fetch_metadata result.
type ColumnInfo struct {
	Name     string `json:"name"`
	DataType string `json:"dataType"`
	Nullable string `json:"nullable"`
}

// MetadataTree nests database → schema → table → columns, the shape the
// control plane renders from a fetch_metadata job.
type MetadataTree = map[string]map[string]map[string][]ColumnInfo

// FetchMetadata introspects the endpoint's tables and columns using the
// engine's dialect.
func FetchMetadata(ctx context.Context, execute compare.QueryFunc, cfg executor.ConnectionConfig) (MetadataTree, error) {
	d, err := dialect.Lookup(cfg.Type)
	if err != nil {
		return nil, err
	}

	database := ""
	if d.SupportsThreePartNames() {
		database = cfg.Database
	}

	tables, err := execute(ctx, cfg, sqlbuild.TablesQuery(d, database, ""))
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	dbKey := cfg.Database
	if dbKey == "" {
		dbKey = "default"
	}
	tree := MetadataTree{dbKey: map[string]map[string][]ColumnInfo{}}

	for _, row := range tables.Rows {
		schema := stringField(row, "table_schema", "TABLE_SCHEMA")
		table := stringField(row, "table_name", "TABLE_NAME")
		if table == "" {
			continue
		}

		ref := sqlbuild.TableRef{Database: database, Schema: schema, Table: table}
		columns, err := execute(ctx, cfg, sqlbuild.ColumnsQuery(d, ref))
		if err != nil {
			return nil, fmt.Errorf("describing table %s.%s: %w", schema, table, err)
		}

		if tree[dbKey][schema] == nil {
			tree[dbKey][schema] = map[string][]ColumnInfo{}
		}
		tree[dbKey][schema][table] = parseColumns(columns.Rows)
	}

	return tree, nil
}

// parseColumns normalizes an introspection result across engines: the
// information_schema shape, Oracle's upper-cased dictionary views, and
// SQLite's PRAGMA table_info output.
func parseColumns(rows []executor.Row) []ColumnInfo {
	columns := make([]ColumnInfo, 0, len(rows))
	for _, row := range rows {
		col := ColumnInfo{
			Name:     stringField(row, "column_name", "COLUMN_NAME", "name"),
			DataType: stringField(row, "data_type", "DATA_TYPE", "type"),
			Nullable: stringField(row, "is_nullable", "IS_NULLABLE", "nullable", "NULLABLE"),
		}
		// PRAGMA table_info reports notnull as 0/1.
		if col.Nullable == "" {
			switch stringField(row, "notnull") {
			case "0":
				col.Nullable = "YES"
			case "1":
				col.Nullable = "NO"
			}
		}
		if col.Name != "" {
			columns = append(columns, col)
		}
	}
	return columns
}

func stringField(row executor.Row, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
