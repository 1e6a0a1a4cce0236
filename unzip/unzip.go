// Package unzip splits table rows that an upstream layout engine merged
// into one. Some document-parsing services group several logical rows
// into a single row when they sit close together on the page, separating
// the stacked values with newlines; this package recovers the original
// rows.
package unzip

import (
	"strings"

	"github.com/davissekai/irys/model"
)

// anchorNames are the normalized header names of a running-number column,
// the most reliable signal for how many logical rows were merged.
var anchorNames = map[string]bool{
	"NO": true,
	"NR": true,
	"#":  true,
}

// Rows splits every merged row in the table into its logical rows. A row
// is merged when at least one of its cells splits on newline into
// multiple parts. The split count is anchored on the running-number
// column when one exists and was itself split; otherwise the mode of all
// multi-part split counts decides. Cell values are distributed so that no
// recognized text is ever dropped: a single value is duplicated into
// every new row, surplus parts are joined into the last row, and short
// columns leave their trailing cells empty.
//
// Header order is preserved and the row count only grows.
func Rows(t model.Table) model.Table {
	anchor := anchorColumn(t.Headers)

	out := model.Table{Headers: append([]string(nil), t.Headers...)}
	if t.Rows == nil {
		return out
	}
	out.Rows = make([]model.Row, 0, len(t.Rows))

	for _, row := range t.Rows {
		parts := splitCells(t.Headers, row)

		target := targetCount(t.Headers, parts, anchor)
		if target <= 1 {
			out.Rows = append(out.Rows, row)
			continue
		}

		for i := 0; i < target; i++ {
			newRow := make(model.Row, len(t.Headers))
			for _, col := range t.Headers {
				newRow[col] = partForRow(parts[col], i, target)
			}
			out.Rows = append(out.Rows, newRow)
		}
	}

	return out
}

// splitCells splits each cell on newline. Empty cells yield a single
// empty part so duplication still applies to them.
func splitCells(headers []string, row model.Row) map[string][]string {
	parts := make(map[string][]string, len(headers))
	for _, col := range headers {
		v := row[col]
		if v == "" {
			parts[col] = []string{""}
		} else {
			parts[col] = strings.Split(v, "\n")
		}
	}
	return parts
}

// targetCount decides how many logical rows a merged row holds. It
// returns 1 when nothing was split.
func targetCount(headers []string, parts map[string][]string, anchor string) int {
	var counts []int
	for _, col := range headers {
		if n := len(parts[col]); n > 1 {
			counts = append(counts, n)
		}
	}
	if len(counts) == 0 {
		return 1
	}

	if anchor != "" && len(parts[anchor]) > 1 {
		return len(parts[anchor])
	}
	return mode(counts)
}

// partForRow picks the value for column parts at new-row index i out of
// target rows.
func partForRow(parts []string, i, target int) string {
	n := len(parts)
	switch {
	case n == 1:
		// Shared value (or blank): duplicate into every row.
		return strings.TrimSpace(parts[0])
	case n == target:
		return strings.TrimSpace(parts[i])
	case n > target:
		// Distribute one-to-one, then join the surplus into the last
		// row so no text is discarded.
		if i < target-1 {
			return strings.TrimSpace(parts[i])
		}
		joined := make([]string, 0, n-i)
		for _, p := range parts[i:] {
			joined = append(joined, strings.TrimSpace(p))
		}
		return strings.Join(joined, " ")
	default:
		// Fewer parts than rows: fill by index, leave the rest empty.
		if i < n {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
}

// anchorColumn returns the first header naming a running-number column,
// or "" when the table has none.
func anchorColumn(headers []string) string {
	for _, h := range headers {
		normalized := strings.TrimSpace(strings.ReplaceAll(strings.ToUpper(h), ".", ""))
		if anchorNames[normalized] {
			return h
		}
	}
	return ""
}

// mode returns the most frequent value, preferring the first encountered
// on ties.
func mode(values []int) int {
	counts := make(map[int]int, len(values))
	var order []int
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
