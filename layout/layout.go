// Package layout models the output of a hosted document-layout service:
// pages of tables whose cells carry text anchors into one shared document
// text buffer, rather than inline strings. It converts such tables into
// the pipeline's table form by slicing the buffer at the anchored
// character offsets.
package layout

// Document is a parsed layout-service response. Text is the full
// recognized document text; every cell anchor indexes into it by
// character offset.
type Document struct {
	Text  string `json:"text"`
	Pages []Page `json:"pages"`
}

// Page holds the tables the service found on one page.
type Page struct {
	Tables []Table `json:"tables"`
}

// Table is a layout-service table: zero or more header rows followed by
// body rows.
type Table struct {
	HeaderRows []Row `json:"header_rows"`
	BodyRows   []Row `json:"body_rows"`
}

// Row is one table row.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Cell anchors a table cell's text as one or more segments of the shared
// document buffer.
type Cell struct {
	Segments []Segment `json:"segments"`
}

// Segment is a half-open character-offset range [Start, End) into the
// document text.
type Segment struct {
	Start int `json:"start_index"`
	End   int `json:"end_index"`
}

// Text resolves the cell's content by slicing the document buffer at each
// segment. Offsets count characters, not bytes, so multi-byte text slices
// cleanly; out-of-range segments are clamped.
func (c Cell) Text(doc *Document) string {
	runes := []rune(doc.Text)

	var out []rune
	for _, seg := range c.Segments {
		start, end := seg.Start, seg.End
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start >= end {
			continue
		}
		out = append(out, runes[start:end]...)
	}
	return string(out)
}
