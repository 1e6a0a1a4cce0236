package markup

import (
	"strings"

	"github.com/davissekai/irys/model"
)

// ParseMarkdown scans text for markdown pipe tables and returns every
// table found. A table starts at a header line directly followed by an
// all-separator line; body rows follow until the first line that no
// longer looks table-like. Scanning resumes after each table, so one
// block can yield several tables.
func ParseMarkdown(text string) []model.Table {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t\r")
	}

	var tables []model.Table

	i := 0
	for i < len(lines)-1 {
		headerLine := lines[i]
		sepLine := lines[i+1]
		if !strings.Contains(headerLine, "|") || !strings.Contains(sepLine, "|") {
			i++
			continue
		}

		headers := splitMarkdownRow(headerLine)
		sepCells := splitMarkdownRow(sepLine)
		if len(headers) < 2 || !isSeparatorRow(sepCells) {
			i++
			continue
		}

		var rows []model.Row
		j := i + 2
		for j < len(lines) {
			rowLine := lines[j]
			if !strings.Contains(rowLine, "|") {
				break
			}
			cells := splitMarkdownRow(rowLine)
			if len(cells) < 2 {
				break
			}
			rows = append(rows, zipRow(headers, cells))
			j++
		}

		if len(rows) > 0 {
			tables = append(tables, model.Table{
				Headers: append([]string(nil), headers...),
				Rows:    rows,
			})
		}
		i = j
	}

	return tables
}

// splitMarkdownRow strips one leading and trailing pipe, splits the line
// on the remaining pipes, and trims each cell. Cells carrying residual
// inline HTML are cleaned.
func splitMarkdownRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = cleanCell(c)
	}
	return cells
}

// isSeparatorRow reports whether every cell reduces to nothing once "-"
// and ":" are removed, i.e. the row is a markdown header separator.
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		compact := strings.ReplaceAll(cell, ":", "")
		compact = strings.ReplaceAll(compact, "-", "")
		if strings.TrimSpace(compact) != "" {
			return false
		}
	}
	return true
}

// zipRow pairs cells with headers, right-padding with empty strings or
// truncating so every row matches the header count.
func zipRow(headers, cells []string) model.Row {
	row := make(model.Row, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			row[h] = cells[i]
		} else {
			row[h] = ""
		}
	}
	return row
}
