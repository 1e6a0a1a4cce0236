package mapper

import (
	"strings"

	"github.com/davissekai/irys/model"
)

// headerVocabulary is the fixed set of normalized tokens that commonly
// appear as table headers in attendance-style documents. A leading row
// whose cells all come from this vocabulary (or from the desired columns
// themselves) is a stray repeated header row, not data.
var headerVocabulary = map[string]bool{
	"name": true, "student": true, "id": true, "index": true,
	"no": true, "number": true, "date": true, "time in": true,
	"time out": true, "signature": true, "level": true, "course": true,
	"contact": true, "phone": true, "experience": true, "space": true,
}

// Project builds a table whose headers are exactly the mapping's desired
// columns, in order. Each cell is read from the mapped source header by
// exact key, falling back to a case-insensitive lookup, and defaults to
// the empty string when the column has no match or the row no value.
func Project(t model.Table, mapping model.ColumnMapping) model.Table {
	out := model.Table{Headers: append([]string(nil), mapping.Columns...)}
	if t.Rows == nil {
		return out
	}

	out.Rows = make([]model.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		lower := make(map[string]string, len(row))
		for k, v := range row {
			lower[strings.ToLower(k)] = v
		}

		projected := make(model.Row, len(mapping.Columns))
		for _, col := range mapping.Columns {
			source, ok := mapping.Matches[col]
			if !ok || source == "" {
				projected[col] = ""
				continue
			}
			if v, ok := row[source]; ok {
				projected[col] = v
			} else if v, ok := lower[strings.ToLower(source)]; ok {
				projected[col] = v
			} else {
				projected[col] = ""
			}
		}
		out.Rows = append(out.Rows, projected)
	}

	return out
}

// DropHeaderRows removes stray repeated header rows from the top of the
// table: while the first row's non-empty cells are all digit-free tokens
// drawn from the desired columns or the fixed header vocabulary, the row
// is dropped. Applying it twice gives the same result as applying it
// once.
func DropHeaderRows(t model.Table, desired []string) model.Table {
	desiredTokens := make(map[string]bool, len(desired))
	for _, col := range desired {
		if n := Normalize(col); n != "" {
			desiredTokens[n] = true
		}
	}

	out := model.Table{Headers: append([]string(nil), t.Headers...), Rows: t.Rows}
	for len(out.Rows) > 0 && isHeaderLikeRow(out.Rows[0], desiredTokens) {
		out.Rows = out.Rows[1:]
	}
	return out
}

// isHeaderLikeRow reports whether every populated cell of the row looks
// like a header token. Rows with no populated cells, or any digit
// anywhere, are kept as data.
func isHeaderLikeRow(row model.Row, desiredTokens map[string]bool) bool {
	var values []string
	for _, v := range row {
		if s := strings.TrimSpace(v); s != "" {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return false
	}

	for _, v := range values {
		if strings.ContainsAny(v, "0123456789") {
			return false
		}
		n := Normalize(v)
		if !desiredTokens[n] && !headerVocabulary[n] {
			return false
		}
	}
	return true
}
