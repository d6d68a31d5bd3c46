package ingest

import "strings"

// Row is one data row keyed by header column name.
type Row map[string]string

// Table is a parsed CSV file: the header in order plus one Row per data line.
type Table struct {
	Headers []string
	Rows    []Row
}

// ParseLine splits one CSV line into ordered, trimmed fields. Commas inside
// quotes do not split; a doubled quote inside a quoted field is a literal
// quote. Malformed quoting never errors: an unmatched quote simply leaves
// quote mode open until end of line.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// ParseTable splits raw file text into a header plus data rows. Short rows
// are padded with empty strings; fields beyond the header length are
// dropped. Files without a header and at least one data row are rejected
// as malformed input.
func ParseTable(raw string) (*Table, error) {
	lines := splitNonEmptyLines(raw)
	if len(lines) < 2 {
		return nil, malformedInput("file must contain a header row and at least one data row")
	}

	headers := ParseLine(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := ParseLine(line)
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(fields) {
				row[header] = fields[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

func splitNonEmptyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
