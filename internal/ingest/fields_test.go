package ingest

import (
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "LOC001,Celsius Arctic,889392014",
			want: []string{"LOC001", "Celsius Arctic", "889392014"},
		},
		{
			name: "whitespace trimmed",
			line: "  LOC001 , Celsius Arctic ,  1.99",
			want: []string{"LOC001", "Celsius Arctic", "1.99"},
		},
		{
			name: "comma inside quotes",
			line: `LOC001,"Doritos, Nacho Cheese",1.50`,
			want: []string{"LOC001", "Doritos, Nacho Cheese", "1.50"},
		},
		{
			name: "doubled quote is a literal quote",
			line: `LOC001,"16oz ""tall"" can",3.00`,
			want: []string{"LOC001", `16oz "tall" can`, "3.00"},
		},
		{
			name: "unterminated quote consumes rest of line",
			line: `LOC001,"Celsius Arctic,1.99`,
			want: []string{"LOC001", "Celsius Arctic,1.99"},
		},
		{
			name: "empty fields kept",
			line: "LOC001,,1.99,",
			want: []string{"LOC001", "", "1.99", ""},
		},
		{
			name: "single field",
			line: "LOC001",
			want: []string{"LOC001"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLine(tc.line)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseLine(%q) = %#v, want %#v", tc.line, got, tc.want)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	raw := "Site_Code,Item_Description,UPC\n" +
		"\n" +
		"LOC001,Celsius Arctic,889392014\n" +
		"LOC002,Muscle Milk\n" +
		"LOC003,Snickers,040000001,extra,fields\n"

	table, err := ParseTable(raw)
	if err != nil {
		t.Fatalf("parse table: %v", err)
	}
	if !reflect.DeepEqual(table.Headers, []string{"Site_Code", "Item_Description", "UPC"}) {
		t.Fatalf("unexpected headers: %#v", table.Headers)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows (blank line skipped), got %d", len(table.Rows))
	}

	// Short row padded with empty strings.
	if got := table.Rows[1]["UPC"]; got != "" {
		t.Fatalf("expected padded empty UPC, got %q", got)
	}
	// Long row truncated to the header width.
	if len(table.Rows[2]) != 3 {
		t.Fatalf("expected extra fields dropped, got %#v", table.Rows[2])
	}
	if got := table.Rows[2]["UPC"]; got != "040000001" {
		t.Fatalf("unexpected UPC on long row: %q", got)
	}
}

func TestParseTableRejectsHeaderOnly(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"",
		"   \n  \n",
		"Site_Code,Item_Description,UPC\n",
		"Site_Code,Item_Description,UPC\n\n\n",
	} {
		_, err := ParseTable(raw)
		if err == nil {
			t.Fatalf("expected malformed input for %q", raw)
		}
		if !IsMalformedInput(err) {
			t.Fatalf("expected malformed-input code, got %v", err)
		}
	}
}

func TestParseTableCRLF(t *testing.T) {
	t.Parallel()

	table, err := ParseTable("Site_Code,UPC\r\nLOC001,889392014\r\n")
	if err != nil {
		t.Fatalf("parse table: %v", err)
	}
	if got := table.Rows[0]["Site_Code"]; got != "LOC001" {
		t.Fatalf("unexpected site code: %q", got)
	}
	if got := table.Rows[0]["UPC"]; got != "889392014" {
		t.Fatalf("carriage return not trimmed: %q", got)
	}
}
