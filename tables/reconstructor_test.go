package tables

import (
	"testing"

	"github.com/davissekai/irys/model"
)

func TestReconstructBasicTable(t *testing.T) {
	items := []model.TextItem{
		item("NAME", 100, 50),
		item("ID", 300, 52),
		item("Alice", 100, 120),
		item("12345", 300, 123),
		item("Bob", 100, 190),
		item("67890", 300, 188),
	}

	table, zones := NewReconstructor().Reconstruct(items, []string{"Name", "ID"})

	if got := table.RowCount(); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}

	if table.Rows[0]["Name"] != "Alice" || table.Rows[0]["ID"] != "12345" {
		t.Errorf("row 0 wrong: %v", table.Rows[0])
	}
	if table.Rows[1]["Name"] != "Bob" || table.Rows[1]["ID"] != "67890" {
		t.Errorf("row 1 wrong: %v", table.Rows[1])
	}
}

func TestReconstructSkipsTitleRow(t *testing.T) {
	items := []model.TextItem{
		item("ATTENDANCE", 200, 10),
		item("NAME", 100, 60),
		item("ID", 300, 62),
		item("SIGN", 500, 61),
		item("Alice", 100, 130),
		item("12345", 300, 131),
		item("ok", 500, 129),
	}

	table, _ := NewReconstructor().Reconstruct(items, []string{"Name", "ID", "Sign"})

	if got := table.RowCount(); got != 1 {
		t.Fatalf("expected the title row to be skipped, got %d data rows", got)
	}
	if table.Rows[0]["Name"] != "Alice" {
		t.Errorf("expected Alice under Name, got %q", table.Rows[0]["Name"])
	}
}

func TestReconstructHeaderByColumnText(t *testing.T) {
	// The header row has fewer fragments than expected columns, but its
	// text names one of the first two desired columns.
	items := []model.TextItem{
		item("NAME", 100, 50),
		item("Alice", 100, 120),
		item("12345", 300, 121),
		item("x", 500, 119),
	}

	table, _ := NewReconstructor().Reconstruct(items, []string{"Name", "ID", "Sign", "Date"})

	if got := table.RowCount(); got != 1 {
		t.Fatalf("expected 1 data row below the NAME header, got %d", got)
	}
}

func TestReconstructExtraColumnsGetLabels(t *testing.T) {
	items := []model.TextItem{
		item("NAME", 100, 50),
		item("ID", 300, 50),
		item("SIGNATURE", 500, 50),
		item("Alice", 100, 120),
		item("12345", 300, 120),
		item("present", 500, 120),
	}

	table, zones := NewReconstructor().Reconstruct(items, []string{"Name", "ID"})

	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}
	if len(table.Headers) != 3 || table.Headers[2] != "col_2" {
		t.Fatalf("expected headers to include col_2, got %v", table.Headers)
	}
	if table.Rows[0]["col_2"] != "present" {
		t.Errorf("expected the extra fragment under col_2, got %q", table.Rows[0]["col_2"])
	}

	// Every row key must appear in the header list.
	headerSet := make(map[string]bool, len(table.Headers))
	for _, h := range table.Headers {
		headerSet[h] = true
	}
	for _, row := range table.Rows {
		for k := range row {
			if !headerSet[k] {
				t.Errorf("row key %q missing from headers %v", k, table.Headers)
			}
		}
	}
}

func TestReconstructNoColumnsUsesHeaderTexts(t *testing.T) {
	items := []model.TextItem{
		item("FIRST", 100, 50),
		item("SECOND", 300, 50),
		item("a", 100, 120),
		item("b", 300, 120),
	}

	table, _ := NewReconstructor().Reconstruct(items, nil)

	if len(table.Headers) != 2 || table.Headers[0] != "FIRST" || table.Headers[1] != "SECOND" {
		t.Fatalf("expected headers from the first row, got %v", table.Headers)
	}
}

func TestReconstructConcatenatesZoneCollisions(t *testing.T) {
	// Two fragments of one cell land in the same zone and must be joined
	// with a space, left to right.
	items := []model.TextItem{
		item("NAME", 100, 50),
		item("ID", 400, 50),
		item("Mary", 90, 120),
		item("Jane", 150, 120),
		item("5", 400, 120),
	}

	table, _ := NewReconstructor().Reconstruct(items, []string{"Name", "ID"})

	if table.Rows[0]["Name"] != "Mary Jane" {
		t.Errorf("expected concatenated cell %q, got %q", "Mary Jane", table.Rows[0]["Name"])
	}
}

func TestReconstructEmptyItems(t *testing.T) {
	table, zones := NewReconstructor().Reconstruct(nil, []string{"Name", "ID"})

	if table.RowCount() != 0 {
		t.Errorf("expected no rows, got %d", table.RowCount())
	}
	if len(table.Headers) != 2 {
		t.Errorf("expected the desired headers to be kept, got %v", table.Headers)
	}
	if zones != nil {
		t.Errorf("expected no zones, got %v", zones)
	}
}

func TestConfigureRejectsNonPositiveTolerance(t *testing.T) {
	r := NewReconstructor()
	if err := r.Configure(Config{YTolerance: 0}); err == nil {
		t.Error("expected an error for zero tolerance")
	}
	if err := r.Configure(Config{YTolerance: -3}); err == nil {
		t.Error("expected an error for negative tolerance")
	}
	if err := r.Configure(Config{YTolerance: 10}); err != nil {
		t.Errorf("unexpected error for valid tolerance: %v", err)
	}
}
