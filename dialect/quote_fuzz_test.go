package dialect

import (
	"strings"
	"testing"
)

// FuzzQuoteIdentifier checks that quoting never loses information for any
// input, including identifiers containing quote characters, NUL bytes, and
// multi-byte Unicode.
func FuzzQuoteIdentifier(f *testing.F) {
	seeds := []string{
		"plain",
		`embedded"quote`,
		"back`tick",
		"bracket]inside",
		"nul\x00byte",
		"uniçodé",
		"'; DROP TABLE users; --",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, name string) {
		for engine, chars := range map[string][2]string{
			"postgresql": {`"`, `"`},
			"mysql":      {"`", "`"},
			"mssql":      {"[", "]"},
		} {
			d, err := Lookup(engine)
			if err != nil {
				t.Fatal(err)
			}
			quoted := d.QuoteIdentifier(name)
			if !strings.HasPrefix(quoted, chars[0]) || !strings.HasSuffix(quoted, chars[1]) {
				t.Errorf("%s: %q not delimited: %q", engine, name, quoted)
			}
			if got := unquoteIdentifier(engine, quoted); got != name {
				t.Errorf("%s: round trip of %q gave %q via %q", engine, name, got, quoted)
			}
		}
	})
}

// FuzzQuoteString checks that a quoted literal never contains an unescaped
// single quote between its delimiters.
func FuzzQuoteString(f *testing.F) {
	f.Add("it's")
	f.Add("a|b|c")
	f.Add("'") // lone quote
	f.Add("\x00")

	f.Fuzz(func(t *testing.T, value string) {
		d, err := Lookup("postgresql")
		if err != nil {
			t.Fatal(err)
		}
		quoted := d.QuoteString(value)
		inner := strings.TrimSuffix(strings.TrimPrefix(quoted, "'"), "'")
		if strings.ReplaceAll(inner, "''", "") != strings.ReplaceAll(inner, "'", "") {
			t.Errorf("unescaped quote in %q for input %q", quoted, value)
		}
		if strings.ReplaceAll(inner, "''", "'") != value {
			t.Errorf("round trip of %q gave %q", value, inner)
		}
	})
}
