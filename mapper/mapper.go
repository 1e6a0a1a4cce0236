package mapper

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/davissekai/irys/model"
)

// Mapper matches extracted headers to desired columns. Implementations
// must key the returned mapping by exactly the desired columns, in the
// caller's order.
type Mapper interface {
	MapColumns(ctx context.Context, extracted, desired []string) (model.ColumnMapping, error)
}

// matchThreshold is the minimum heuristic score for a header to count as
// a match at all.
const matchThreshold = 25

// aliasGroups maps canonical column tokens to synonym words. A desired
// column containing the canonical token scores against headers containing
// any of the synonyms.
var aliasGroups = map[string][]string{
	"name":    {"name", "student", "attendee", "participant", "full name"},
	"id":      {"id", "index", "student id", "matric", "number"},
	"contact": {"contact", "phone", "mobile", "tel", "telephone"},
	"level":   {"level", "class", "year", "stage"},
	"course":  {"course", "program", "programme", "major", "department"},
}

// Normalize folds s to NFKC, lower-cases it, and collapses every run of
// non-alphanumeric characters to a single space, trimming the ends. Both
// sides of a comparison go through this, so OCR artifacts like full-width
// characters and stray punctuation don't defeat a match.
func Normalize(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))

	var sb strings.Builder
	sb.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return sb.String()
}

// MapColumns is the local heuristic mapper. For each desired column it
// prefers an exact normalized match, then the highest-scoring header by
// substring containment and alias-group hits; headers scoring below the
// match threshold leave the column unmatched.
func MapColumns(extracted, desired []string) model.ColumnMapping {
	mapping := model.NewColumnMapping(desired)

	var cleaned []string
	for _, h := range extracted {
		if strings.TrimSpace(h) != "" {
			cleaned = append(cleaned, h)
		}
	}

	lookup := make(map[string]string, len(cleaned))
	for _, h := range cleaned {
		if n := Normalize(h); n != "" {
			lookup[n] = h
		}
	}

	for _, col := range mapping.Columns {
		colNorm := Normalize(col)
		if colNorm == "" {
			continue
		}

		if h, ok := lookup[colNorm]; ok {
			mapping.Matches[col] = h
			continue
		}

		var bestHeader string
		bestScore := 0
		for _, h := range cleaned {
			if score := scoreMatch(colNorm, Normalize(h)); score > bestScore {
				bestScore = score
				bestHeader = h
			}
		}
		if bestScore >= matchThreshold {
			mapping.Matches[col] = bestHeader
		}
	}

	return mapping
}

// scoreMatch scores one desired/header pair, both already normalized.
// Exact equality scores 100, substring containment either way 40, and
// each alias-group hit adds 25.
func scoreMatch(desiredNorm, headerNorm string) int {
	if desiredNorm == "" || headerNorm == "" {
		return 0
	}

	score := 0
	if desiredNorm == headerNorm {
		score += 100
	}
	if strings.Contains(headerNorm, desiredNorm) || strings.Contains(desiredNorm, headerNorm) {
		score += 40
	}

	for canonical, synonyms := range aliasGroups {
		if !strings.Contains(desiredNorm, canonical) {
			continue
		}
		for _, word := range synonyms {
			if strings.Contains(headerNorm, word) {
				score += 25
				break
			}
		}
	}

	return score
}
