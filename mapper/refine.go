package mapper

import (
	"regexp"
	"strings"

	"github.com/davissekai/irys/model"
)

// idTargets are the normalized desired-column names that identify an
// ID-like column worth refining.
var idTargets = map[string]bool{
	"id":         true,
	"student id": true,
	"index":      true,
	"number":     true,
}

// weakRatio is the non-empty-cell ratio below which a mapped column is
// considered a weak choice, a sign the text mapping picked a mostly-blank
// column.
const weakRatio = 0.4

var (
	idLikePattern   = regexp.MustCompile(`^[A-Za-z]{0,3}\d{4,}$`)
	timeLikePattern = regexp.MustCompile(`^\d{1,2}:\d{2}([ap]m)?$`)
	dateLikePattern = regexp.MustCompile(`^\d{1,4}[/-]\d{1,2}[/-]\d{1,4}$`)
	wordPattern     = regexp.MustCompile(`[A-Za-z]{3,}`)
	compactPattern  = regexp.MustCompile(`[\s\-_/]`)
)

// RefineIDColumns re-scores the mapping for ID-like desired columns whose
// current choice is weak. Every still-unused header is classified by the
// shape of its cell content; the best positively-scoring header replaces
// the weak mapping. The input mapping is not modified.
func RefineIDColumns(t model.Table, mapping model.ColumnMapping) model.ColumnMapping {
	out := model.NewColumnMapping(mapping.Columns)
	for k, v := range mapping.Matches {
		out.Matches[k] = v
	}

	var available []string
	for _, h := range t.Headers {
		if strings.TrimSpace(h) != "" {
			available = append(available, h)
		}
	}

	used := make(map[string]bool, len(out.Matches))
	for _, h := range out.Matches {
		if strings.TrimSpace(h) != "" {
			used[h] = true
		}
	}

	for _, col := range out.Columns {
		if !idTargets[Normalize(col)] {
			continue
		}

		mapped, ok := out.Matches[col]
		weak := !ok || strings.TrimSpace(mapped) == "" || nonEmptyRatio(t, mapped) < weakRatio
		if !weak {
			continue
		}

		var bestHeader string
		bestScore := -999.0
		for _, h := range available {
			if used[h] {
				continue
			}
			if score := idScore(t, h); score > bestScore {
				bestScore = score
				bestHeader = h
			}
		}

		if bestHeader != "" && bestScore > 0 {
			out.Matches[col] = bestHeader
			used[bestHeader] = true
		}
	}

	return out
}

// idScore classifies a column's content. ID-like values raise the score;
// time, date, and word-heavy values lower it. The header's own name
// nudges the result either way.
func idScore(t model.Table, header string) float64 {
	var values []string
	for _, row := range t.Rows {
		if v := rowValue(row, header); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return -999.0
	}

	var idLike, timeLike, dateLike, wordHeavy int
	for _, v := range values {
		compact := compactPattern.ReplaceAllString(v, "")
		if idLikePattern.MatchString(compact) {
			idLike++
		}
		if timeLikePattern.MatchString(strings.ToLower(v)) {
			timeLike++
		}
		if dateLikePattern.MatchString(v) {
			dateLike++
		}
		if wordPattern.MatchString(v) {
			wordHeavy++
		}
	}

	headerNorm := Normalize(header)
	bonus := 0.0
	if containsAny(headerNorm, "id", "index", "number", "no") {
		bonus += 1.5
	}
	if containsAny(headerNorm, "date", "time", "name", "student") {
		bonus -= 1.0
	}

	n := float64(len(values))
	return (float64(idLike)*2.5-float64(timeLike)*2.0-float64(dateLike)*2.0-float64(wordHeavy)*1.0)/n + bonus
}

// nonEmptyRatio is the fraction of rows with a non-blank value under the
// given header.
func nonEmptyRatio(t model.Table, header string) float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	nonEmpty := 0
	for _, row := range t.Rows {
		if rowValue(row, header) != "" {
			nonEmpty++
		}
	}
	return float64(nonEmpty) / float64(len(t.Rows))
}

// rowValue reads a cell by exact key, falling back to a case-insensitive
// lookup, and trims it.
func rowValue(row model.Row, key string) string {
	if v, ok := row[key]; ok {
		return strings.TrimSpace(v)
	}
	lower := strings.ToLower(key)
	for k, v := range row {
		if strings.ToLower(k) == lower {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func containsAny(s string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
