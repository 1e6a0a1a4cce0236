package model

import (
	"math"
	"strings"
)

// Row maps a header name to the cell value under that header.
type Row map[string]string

// Table is a reconstructed rectangular table. Headers carries the
// caller-visible column order and must be preserved by every pipeline
// stage; each row's key set is a subset of Headers.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Empty returns a table with the given headers and no rows.
func Empty(headers []string) Table {
	return Table{Headers: append([]string(nil), headers...)}
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t Table) ColumnCount() int {
	return len(t.Headers)
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{Headers: append([]string(nil), t.Headers...)}
	if t.Rows != nil {
		out.Rows = make([]Row, 0, len(t.Rows))
		for _, row := range t.Rows {
			clone := make(Row, len(row))
			for k, v := range row {
				clone[k] = v
			}
			out.Rows = append(out.Rows, clone)
		}
	}
	return out
}

// ToMarkdown renders the table as a pipe-delimited markdown table.
func (t Table) ToMarkdown() string {
	if len(t.Headers) == 0 {
		return ""
	}

	var sb strings.Builder

	for j, h := range t.Headers {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(h, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Headers)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for j := range t.Headers {
		sb.WriteString("|---")
		if j == len(t.Headers)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for j, h := range t.Headers {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(row[h], "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Headers)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToCSV renders the table as CSV, quoting cells that contain commas,
// quotes, or newlines. The header row comes first.
func (t Table) ToCSV() string {
	var sb strings.Builder

	writeRecord := func(fields []string) {
		for j, f := range fields {
			if strings.ContainsAny(f, ",\"\n") {
				f = "\"" + strings.ReplaceAll(f, "\"", "\"\"") + "\""
			}
			sb.WriteString(f)
			if j < len(fields)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}

	writeRecord(t.Headers)
	fields := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for j, h := range t.Headers {
			fields[j] = row[h]
		}
		writeRecord(fields)
	}

	return sb.String()
}

// ZoneEndSentinel is the EndX of the last column zone on a page. It is a
// finite stand-in for infinity so zone lists stay JSON-encodable.
const ZoneEndSentinel = math.MaxFloat64

// ColumnZone is a half-open horizontal interval [StartX, EndX) on the
// page, derived from header fragment positions. Zones are contiguous,
// non-overlapping, and ordered by StartX; the last zone's EndX is
// ZoneEndSentinel.
type ColumnZone struct {
	Header string  `json:"header"`
	StartX float64 `json:"start_x"`
	EndX   float64 `json:"end_x"`
}

// Contains reports whether x falls inside the zone.
func (z ColumnZone) Contains(x float64) bool {
	return z.StartX <= x && x < z.EndX
}

// ColumnMapping associates each desired output column with the extracted
// header chosen as its source. Columns is exactly the caller's desired
// list in the caller's order; a column absent from Matches has no match.
type ColumnMapping struct {
	Columns []string
	Matches map[string]string
}

// NewColumnMapping returns an empty mapping for the given desired columns.
func NewColumnMapping(columns []string) ColumnMapping {
	return ColumnMapping{
		Columns: append([]string(nil), columns...),
		Matches: make(map[string]string, len(columns)),
	}
}

// Header returns the extracted header mapped to the desired column, if any.
func (m ColumnMapping) Header(column string) (string, bool) {
	h, ok := m.Matches[column]
	return h, ok
}
