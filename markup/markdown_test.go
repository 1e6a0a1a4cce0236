package markup

import (
	"testing"
)

func TestParseMarkdownBasicTable(t *testing.T) {
	text := "| Name | ID |\n|------|----|\n| Alice | 1 |\n| Bob | 2 |"

	found := ParseMarkdown(text)

	if len(found) != 1 {
		t.Fatalf("expected 1 table, got %d", len(found))
	}
	table := found[0]
	if len(table.Headers) != 2 || table.Headers[0] != "Name" || table.Headers[1] != "ID" {
		t.Fatalf("headers wrong: %v", table.Headers)
	}
	if table.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.RowCount())
	}
	if table.Rows[0]["Name"] != "Alice" || table.Rows[1]["ID"] != "2" {
		t.Errorf("rows wrong: %v", table.Rows)
	}
}

func TestParseMarkdownAlignmentSeparators(t *testing.T) {
	text := "| A | B |\n|:---|---:|\n| 1 | 2 |"

	found := ParseMarkdown(text)
	if len(found) != 1 {
		t.Fatalf("expected alignment colons to be accepted, got %d tables", len(found))
	}
}

func TestParseMarkdownPadsAndTruncatesRows(t *testing.T) {
	text := "| A | B | C |\n|---|---|---|\n| 1 | 2 |\n| 1 | 2 | 3 | 4 |"

	found := ParseMarkdown(text)
	if len(found) != 1 {
		t.Fatalf("expected 1 table, got %d", len(found))
	}
	table := found[0]

	if table.Rows[0]["C"] != "" {
		t.Errorf("short row should be padded, got %q", table.Rows[0]["C"])
	}
	if table.Rows[1]["C"] != "3" {
		t.Errorf("long row should be truncated at C=3, got %q", table.Rows[1]["C"])
	}
	if len(table.Rows[1]) != 3 {
		t.Errorf("long row should carry exactly the header cells, got %v", table.Rows[1])
	}
}

func TestParseMarkdownMultipleTables(t *testing.T) {
	text := "| A | B |\n|---|---|\n| 1 | 2 |\n\nsome prose\n\n| X | Y |\n|---|---|\n| 3 | 4 |\n| 5 | 6 |"

	found := ParseMarkdown(text)
	if len(found) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(found))
	}
	if found[1].RowCount() != 2 {
		t.Errorf("second table should have 2 rows, got %d", found[1].RowCount())
	}
}

func TestParseMarkdownIgnoresNonTables(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no separator", "| A | B |\n| 1 | 2 |"},
		{"single column", "| A |\n|---|\n| 1 |"},
		{"plain prose", "just some text\nwith | a pipe"},
		{"header only", "| A | B |\n|---|---|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if found := ParseMarkdown(tt.text); len(found) != 0 {
				t.Errorf("expected no tables, got %d", len(found))
			}
		})
	}
}

func TestParseMarkdownCleansInlineHTML(t *testing.T) {
	text := "| Name | ID |\n|---|---|\n| Alice<br>Bob | 1<br/>2 |"

	found := ParseMarkdown(text)
	if len(found) != 1 {
		t.Fatalf("expected 1 table, got %d", len(found))
	}
	row := found[0].Rows[0]
	if row["Name"] != "Alice\nBob" {
		t.Errorf("expected <br> converted to newline, got %q", row["Name"])
	}
	if row["ID"] != "1\n2" {
		t.Errorf("expected <br/> converted to newline, got %q", row["ID"])
	}
}

func TestCleanCellStripsTagsAndEntities(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"  spaced  ", "spaced"},
		{"<b>bold</b>", "bold"},
		{"a &amp; b", "a & b"},
		{"x<BR >y", "x\ny"},
	}
	for _, tt := range tests {
		if got := cleanCell(tt.in); got != tt.want {
			t.Errorf("cleanCell(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
