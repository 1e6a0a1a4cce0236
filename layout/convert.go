package layout

import (
	"fmt"
	"strings"

	"github.com/davissekai/irys/model"
)

// TableOf converts one layout-service table into the pipeline's table
// form. Headers come from the first header row, trimmed; body cells
// beyond the header count get synthesized "col_<i>" names so no cell text
// is dropped.
func TableOf(doc *Document, t Table) model.Table {
	var headers []string
	if len(t.HeaderRows) > 0 {
		for _, cell := range t.HeaderRows[0].Cells {
			headers = append(headers, strings.TrimSpace(cell.Text(doc)))
		}
	}

	out := model.Table{Headers: headers}
	for _, row := range t.BodyRows {
		data := make(model.Row, len(row.Cells))
		for i, cell := range row.Cells {
			data[columnName(&out, i)] = strings.TrimSpace(cell.Text(doc))
		}
		out.Rows = append(out.Rows, data)
	}
	return out
}

// Tables converts every table on every page of the document.
func Tables(doc *Document) []model.Table {
	var out []model.Table
	for _, page := range doc.Pages {
		for _, t := range page.Tables {
			out = append(out, TableOf(doc, t))
		}
	}
	return out
}

// columnName returns the header for cell index i, extending the header
// list with a synthesized name when the row is wider than the headers.
func columnName(t *model.Table, i int) string {
	for len(t.Headers) <= i {
		t.Headers = append(t.Headers, fmt.Sprintf("col_%d", len(t.Headers)))
	}
	return t.Headers[i]
}
