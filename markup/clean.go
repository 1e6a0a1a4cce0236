package markup

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	brPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// cleanCell trims a cell value and, when it carries residual inline HTML,
// converts line breaks to newlines, strips the remaining tags, and
// decodes entities. Layout services frequently emit <br> inside markdown
// cells for rows they merged; the newline must survive so the merged row
// can be split apart later.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") && !strings.Contains(s, "&") {
		return s
	}

	s = brPattern.ReplaceAllString(s, "\n")
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
