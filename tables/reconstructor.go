package tables

import (
	"fmt"
	"strings"

	"github.com/davissekai/irys/model"
)

// Config holds reconstructor configuration.
type Config struct {
	// YTolerance is the maximum distance, in pixels, between an item's Y
	// coordinate and the running mean Y of the current row cluster for
	// the item to join that row.
	YTolerance float64
}

// DefaultConfig returns the default reconstructor configuration.
func DefaultConfig() Config {
	return Config{
		YTolerance: 25,
	}
}

// Reconstructor rebuilds a table from scattered OCR text fragments. It
// groups fragments into rows, picks a header row, derives column zones
// from the header positions, and assigns the remaining fragments to
// cells.
type Reconstructor struct {
	config Config
}

// NewReconstructor creates a reconstructor with default configuration.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		config: DefaultConfig(),
	}
}

// Configure sets the reconstructor configuration.
func (r *Reconstructor) Configure(config Config) error {
	if config.YTolerance <= 0 {
		return fmt.Errorf("y tolerance must be positive, got %v", config.YTolerance)
	}
	r.config = config
	return nil
}

// Reconstruct builds a table from the given items. When columns are
// supplied they become the leading header labels and are also used to
// pick a sensible header row, so title rows placed above the table are
// skipped; otherwise the header row's own fragment texts become the
// headers. The returned zones describe how the page was partitioned and
// are retained for diagnostics.
func (r *Reconstructor) Reconstruct(items []model.TextItem, columns []string) (model.Table, []model.ColumnZone) {
	rows := GroupRows(items, r.config.YTolerance)
	if len(rows) == 0 {
		return model.Empty(columns), nil
	}

	headerIdx := headerRowIndex(rows, columns)
	headerItems := rows[headerIdx]

	labels := columns
	if len(labels) == 0 {
		labels = make([]string, 0, len(headerItems))
		for _, item := range headerItems {
			labels = append(labels, item.Text)
		}
	}

	zones := BuildZones(headerItems, labels)

	// Headers follow the zone labels so every row key appears in the
	// header list, even when the page has more columns than the caller
	// named.
	headers := make([]string, 0, len(zones))
	for _, z := range zones {
		headers = append(headers, z.Header)
	}

	table := model.Table{Headers: headers}
	for _, row := range rows[headerIdx+1:] {
		data := make(model.Row, len(zones))
		for _, z := range zones {
			data[z.Header] = ""
		}
		for _, item := range row {
			i := zoneFor(zones, item.X)
			if i < 0 {
				continue // outside every zone
			}
			header := zones[i].Header
			if data[header] != "" {
				data[header] += " " + item.Text
			} else {
				data[header] = item.Text
			}
		}
		table.Rows = append(table.Rows, data)
	}

	return table, zones
}

// headerRowIndex picks the row that most plausibly holds the column
// headers. Scanning top to bottom, the first row with close to the
// expected column count, or whose text mentions one of the first two
// expected columns, wins. Without expected columns the first row is the
// header.
func headerRowIndex(rows [][]model.TextItem, columns []string) int {
	if len(columns) == 0 {
		return 0
	}

	for i, row := range rows {
		if len(row) >= len(columns)-1 {
			return i
		}

		var sb strings.Builder
		for j, item := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strings.ToUpper(item.Text))
		}
		rowText := sb.String()

		for _, col := range firstTwo(columns) {
			if strings.Contains(rowText, strings.ToUpper(col)) {
				return i
			}
		}
	}

	return 0
}

func firstTwo(columns []string) []string {
	if len(columns) > 2 {
		return columns[:2]
	}
	return columns
}
