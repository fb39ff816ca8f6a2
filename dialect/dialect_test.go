package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quoteChars maps each engine to its identifier quote delimiters, used to
// reverse QuoteIdentifier in the round-trip tests.
var quoteChars = map[string][2]string{
	"postgresql": {`"`, `"`},
	"redshift":   {`"`, `"`},
	"mysql":      {"`", "`"},
	"mariadb":    {"`", "`"},
	"mssql":      {"[", "]"},
	"azuresql":   {"[", "]"},
	"oracle":     {`"`, `"`},
	"snowflake":  {`"`, `"`},
	"databricks": {"`", "`"},
	"sqlite":     {`"`, `"`},
}

// unquoteIdentifier reverses QuoteIdentifier for a known engine: strip the
// delimiters, then collapse the doubled escape character.
func unquoteIdentifier(engine, quoted string) string {
	chars := quoteChars[engine]
	inner := strings.TrimPrefix(quoted, chars[0])
	inner = strings.TrimSuffix(inner, chars[1])
	escaped := chars[1]
	return strings.ReplaceAll(inner, escaped+escaped, escaped)
}

func TestLookupKnownEngines(t *testing.T) {
	for engine := range quoteChars {
		d, err := Lookup(engine)
		require.NoError(t, err, engine)
		assert.Equal(t, engine, d.Name())
	}
}

func TestLookupUnsupportedEngine(t *testing.T) {
	_, err := Lookup("dbase")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedEngine)
	assert.Contains(t, err.Error(), "dbase")
}

func TestQuoteIdentifierRoundTrip(t *testing.T) {
	names := []string{
		"users",
		"order details",
		`weird"name`,
		"back`tick",
		"closing]bracket",
		"mixed\"`]all",
	}
	for engine := range quoteChars {
		d, err := Lookup(engine)
		require.NoError(t, err)
		for _, name := range names {
			quoted := d.QuoteIdentifier(name)
			assert.Equal(t, name, unquoteIdentifier(engine, quoted),
				"engine %s name %q quoted as %q", engine, name, quoted)
		}
	}
}

func TestQuoteIdentifierEscaping(t *testing.T) {
	pg, _ := Lookup("postgresql")
	assert.Equal(t, `"he said ""hi"""`, pg.QuoteIdentifier(`he said "hi"`))

	my, _ := Lookup("mysql")
	assert.Equal(t, "`a``b`", my.QuoteIdentifier("a`b"))

	ms, _ := Lookup("mssql")
	assert.Equal(t, "[a]]b]", ms.QuoteIdentifier("a]b"))
}

func TestQuoteString(t *testing.T) {
	for engine := range quoteChars {
		d, err := Lookup(engine)
		require.NoError(t, err)
		assert.Equal(t, `'it''s'`, d.QuoteString("it's"), engine)
		assert.Equal(t, `''`, d.QuoteString(""), engine)
	}
}

func TestLimitClause(t *testing.T) {
	cases := []struct {
		engine        string
		plain, offset string
	}{
		{"postgresql", "LIMIT 10", "LIMIT 10 OFFSET 20"},
		{"redshift", "LIMIT 10", "LIMIT 10 OFFSET 20"},
		{"mysql", "LIMIT 10", "LIMIT 20, 10"},
		{"mariadb", "LIMIT 10", "LIMIT 20, 10"},
		{"oracle", "OFFSET 0 ROWS FETCH NEXT 10 ROWS ONLY", "OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY"},
		{"mssql", "OFFSET 0 ROWS FETCH NEXT 10 ROWS ONLY", "OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY"},
		{"sqlite", "LIMIT 10", "LIMIT 10 OFFSET 20"},
		{"snowflake", "LIMIT 10", "LIMIT 10 OFFSET 20"},
		{"databricks", "LIMIT 10", "LIMIT 10 OFFSET 20"},
	}
	for _, tc := range cases {
		d, err := Lookup(tc.engine)
		require.NoError(t, err)
		assert.Equal(t, tc.plain, d.LimitClause(10, 0), tc.engine)
		assert.Equal(t, tc.offset, d.LimitClause(10, 20), tc.engine)
	}
}

func TestTopClause(t *testing.T) {
	for _, engine := range []string{"mssql", "azuresql"} {
		d, err := Lookup(engine)
		require.NoError(t, err)
		top, ok := d.(TopLimiter)
		require.True(t, ok, "%s must expose TOP", engine)
		assert.Equal(t, "TOP 50", top.TopClause(50))
	}

	pg, _ := Lookup("postgresql")
	_, ok := pg.(TopLimiter)
	assert.False(t, ok, "postgresql must not expose TOP")
}

func TestCurrentTimestamp(t *testing.T) {
	expressions := map[string]string{
		"postgresql": "CURRENT_TIMESTAMP",
		"mysql":      "NOW()",
		"mssql":      "GETDATE()",
		"oracle":     "SYSTIMESTAMP",
		"snowflake":  "CURRENT_TIMESTAMP()",
		"sqlite":     "CURRENT_TIMESTAMP",
	}
	for engine, want := range expressions {
		d, err := Lookup(engine)
		require.NoError(t, err)
		assert.Equal(t, want, d.CurrentTimestamp(), engine)
	}
}

func TestSupportsThreePartNames(t *testing.T) {
	threePart := map[string]bool{
		"mssql": true, "azuresql": true, "mysql": true, "mariadb": true,
		"postgresql": false, "redshift": false, "oracle": false,
		"snowflake": false, "databricks": false, "sqlite": false,
	}
	for engine, want := range threePart {
		d, err := Lookup(engine)
		require.NoError(t, err)
		assert.Equal(t, want, d.SupportsThreePartNames(), engine)
	}
}

func TestSQLiteIntrospection(t *testing.T) {
	d, err := Lookup("sqlite")
	require.NoError(t, err)
	assert.Contains(t, d.TablesQuery("", ""), "sqlite_master")
	assert.Equal(t, "PRAGMA table_info('orders')", d.ColumnsQuery("", "", "orders"))
}

func TestColumnsQueryEscapesLiteral(t *testing.T) {
	pg, _ := Lookup("postgresql")
	q := pg.ColumnsQuery("", "public", "o'brien")
	assert.Contains(t, q, "'o''brien'")
	assert.NotContains(t, q, "'o'brien'")
}
