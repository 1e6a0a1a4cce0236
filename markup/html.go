package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/davissekai/irys/model"
)

// ParseHTML scans content for <table> markup and returns every table
// found. The first row's <th> cells become the headers when present;
// otherwise headers are synthesized as "col_<i>". Body rows are padded or
// truncated to the header count, and rows whose cells are all blank are
// discarded.
func ParseHTML(content string) []model.Table {
	if !strings.Contains(strings.ToLower(content), "<table") {
		return nil
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var tables []model.Table
	walkTables(doc, func(n *html.Node) {
		if t, ok := parseTableNode(n); ok {
			tables = append(tables, t)
		}
	})
	return tables
}

// walkTables calls fn for every table element in the tree. Nested tables
// are not descended into; the outer table owns its markup.
func walkTables(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.Data == "table" {
		fn(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkTables(c, fn)
	}
}

// parseTableNode extracts one table from an HTML table element. Rows are
// gathered from thead/tbody/tfoot sections and direct tr children alike.
func parseTableNode(tableNode *html.Node) (model.Table, bool) {
	var trs []*html.Node
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					trs = append(trs, tr)
				}
			}
		case "tr":
			trs = append(trs, c)
		}
	}

	if len(trs) == 0 {
		return model.Table{}, false
	}

	var headers []string
	var rows []model.Row

	for idx, tr := range trs {
		ths, tds := rowCells(tr)

		if idx == 0 && len(ths) > 0 {
			headers = ths
			continue
		}
		if len(tds) == 0 {
			continue
		}

		if len(headers) == 0 {
			headers = make([]string, len(tds))
			for i := range tds {
				headers[i] = fmt.Sprintf("col_%d", i)
			}
		}

		row := zipRow(headers, tds)
		if rowHasContent(row) {
			rows = append(rows, row)
		}
	}

	if len(headers) == 0 || len(rows) == 0 {
		return model.Table{}, false
	}
	return model.Table{Headers: headers, Rows: rows}, true
}

// rowCells collects the th and td cell texts of one tr element.
func rowCells(tr *html.Node) (ths, tds []string) {
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			ths = append(ths, strings.TrimSpace(textContent(c)))
		case "td":
			tds = append(tds, strings.TrimSpace(textContent(c)))
		}
	}
	return ths, tds
}

func rowHasContent(row model.Row) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// textContent extracts all text content from a node and its descendants.
// Explicit line breaks become newlines so merged-row cells keep their
// internal structure.
func textContent(n *html.Node) string {
	var sb strings.Builder
	textContentRecursive(n, &sb)
	return sb.String()
}

func textContentRecursive(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		case "br":
			sb.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContentRecursive(c, sb)
	}
}
