package irys

import (
	"context"
	"errors"
	"testing"

	"github.com/davissekai/irys/layout"
	"github.com/davissekai/irys/model"
)

func sampleItems() []model.TextItem {
	return []model.TextItem{
		{Text: "NAME", X: 100, Y: 50, Confidence: 0.99},
		{Text: "REG", X: 300, Y: 52, Confidence: 0.98},
		{Text: "SIGN", X: 500, Y: 51, Confidence: 0.97},
		{Text: "Alice", X: 100, Y: 120, Confidence: 0.95},
		{Text: "FG123456", X: 300, Y: 121, Confidence: 0.93},
		{Text: "present", X: 500, Y: 119, Confidence: 0.92},
		{Text: "Bob", X: 100, Y: 190, Confidence: 0.94},
		{Text: "FG234567", X: 300, Y: 188, Confidence: 0.96},
		{Text: "present", X: 500, Y: 191, Confidence: 0.91},
	}
}

func TestFromItemsEndToEnd(t *testing.T) {
	result, err := FromItems(sampleItems()).
		Columns("Name", "ID").
		Result(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Error != "" {
		t.Fatalf("unexpected not-found message: %q", result.Error)
	}
	if result.ColumnCount != 2 || result.RowCount != 2 {
		t.Fatalf("expected a 2x2 table, got %dx%d", result.RowCount, result.ColumnCount)
	}
	if result.Table.Headers[0] != "Name" || result.Table.Headers[1] != "ID" {
		t.Fatalf("headers should be the desired columns, got %v", result.Table.Headers)
	}
	if result.Table.Rows[0]["Name"] != "Alice" || result.Table.Rows[0]["ID"] != "FG123456" {
		t.Errorf("row 0 wrong: %v", result.Table.Rows[0])
	}
	if len(result.Zones) != 3 {
		t.Errorf("expected 3 zones from the reconstructed page, got %d", len(result.Zones))
	}
}

func TestFromItemsWithoutColumns(t *testing.T) {
	result, err := FromItems(sampleItems()).Result(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No desired columns: the extracted headers are kept as-is.
	if result.Table.Headers[0] != "NAME" || result.Table.Headers[1] != "REG" {
		t.Errorf("expected extracted headers, got %v", result.Table.Headers)
	}
}

func TestFromItemsEmpty(t *testing.T) {
	result, err := FromItems(nil).Columns("Name", "ID").Result(context.Background())
	if err != nil {
		t.Fatalf("empty input is not a failure, got error: %v", err)
	}

	if result.Error == "" {
		t.Error("expected a descriptive not-found message")
	}
	if result.RowCount != 0 || result.ColumnCount != 2 {
		t.Errorf("expected an empty table with the desired headers, got %dx%d",
			result.RowCount, result.ColumnCount)
	}
}

func TestFromItemsRejectsBadTolerance(t *testing.T) {
	_, err := FromItems(sampleItems()).YTolerance(-1).Result(context.Background())
	if err == nil {
		t.Error("expected an error for a negative tolerance")
	}
}

func TestFromMarkupEndToEnd(t *testing.T) {
	block := "| NO | NAME | REG |\n|---|---|---|\n| 1<br>2 | Alice<br>Bob | FG123456<br>FG234567 |"

	result, err := FromMarkup(block).
		Columns("Name", "ID").
		Unzip().
		Result(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RowCount != 2 {
		t.Fatalf("expected the merged row to be split into 2, got %d", result.RowCount)
	}
	if result.Table.Rows[1]["Name"] != "Bob" || result.Table.Rows[1]["ID"] != "FG234567" {
		t.Errorf("row 1 wrong: %v", result.Table.Rows[1])
	}
}

func TestFromMarkupPicksLargestTable(t *testing.T) {
	small := "| A | B |\n|---|---|\n| 1 | 2 |"
	large := "| X | Y |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |"

	result, err := FromMarkup(small, large).Result(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Table.Headers[0] != "X" {
		t.Errorf("expected the larger table, got headers %v", result.Table.Headers)
	}
}

func TestFromMarkupNothingFound(t *testing.T) {
	result, err := FromMarkup("no tables here").Columns("Name").Result(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Error == "" {
		t.Error("expected a descriptive not-found message")
	}
	if result.RowCount != 0 {
		t.Errorf("expected no rows, got %d", result.RowCount)
	}
}

func TestFromLayoutEndToEnd(t *testing.T) {
	doc := &layout.Document{
		Text: "NAME ID Alice\nBob 1\n2",
		Pages: []layout.Page{{
			Tables: []layout.Table{{
				HeaderRows: []layout.Row{{Cells: []layout.Cell{
					{Segments: []layout.Segment{{Start: 0, End: 4}}},
					{Segments: []layout.Segment{{Start: 5, End: 7}}},
				}}},
				BodyRows: []layout.Row{{Cells: []layout.Cell{
					{Segments: []layout.Segment{{Start: 8, End: 17}}},
					{Segments: []layout.Segment{{Start: 18, End: 21}}},
				}}},
			}},
		}},
	}

	result, err := FromLayout(doc).Result(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unzipping is on by default for this source, so the newline-merged
	// row splits in two.
	if result.RowCount != 2 {
		t.Fatalf("expected 2 rows after unzipping, got %d", result.RowCount)
	}
	if result.Table.Rows[1]["NAME"] != "Bob" || result.Table.Rows[1]["ID"] != "2" {
		t.Errorf("row 1 wrong: %v", result.Table.Rows[1])
	}
}

func TestFromLayoutNilDocument(t *testing.T) {
	if _, err := FromLayout(nil).Result(context.Background()); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

func TestNoSource(t *testing.T) {
	e := &Extraction{options: defaultOptions()}
	if _, err := e.Result(context.Background()); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

// stubMapper returns a fixed mapping or error.
type stubMapper struct {
	mapping model.ColumnMapping
	err     error
}

func (m stubMapper) MapColumns(ctx context.Context, extracted, desired []string) (model.ColumnMapping, error) {
	return m.mapping, m.err
}

func TestSemanticFallbackToHeuristic(t *testing.T) {
	failing := stubMapper{err: errors.New("upstream unavailable")}

	result, err := FromItems(sampleItems()).
		Columns("Name", "ID").
		Mapper(failing).
		Result(context.Background())
	if err != nil {
		t.Fatalf("mapper failure must not abort the extraction: %v", err)
	}
	if result.Table.Rows[0]["Name"] != "Alice" {
		t.Errorf("heuristic fallback did not map Name: %v", result.Table.Rows[0])
	}
}

func TestCustomMapperWins(t *testing.T) {
	custom := model.NewColumnMapping([]string{"Who", "ID"})
	custom.Matches["Who"] = "col_2" // the third page zone, holding the signatures

	result, err := FromItems(sampleItems()).
		Columns("Who", "ID").
		Mapper(stubMapper{mapping: custom}).
		Result(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Table.Rows[0]["Who"] != "present" {
		t.Errorf("expected the custom mapping to be used, got %v", result.Table.Rows[0])
	}
}
