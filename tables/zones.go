package tables

import (
	"fmt"

	"github.com/davissekai/irys/model"
)

// BuildZones derives column zones from the header row's fragment
// positions. The first zone starts at x=0; each subsequent zone starts at
// the midpoint between its header's X and the previous header's X, and
// ends at the midpoint to the next header, so the zones are contiguous
// and jointly cover [0, inf). The last zone's EndX is
// [model.ZoneEndSentinel].
//
// Zone i is labeled labels[i]; indices beyond the label list get a
// synthesized "col_<i>" label.
func BuildZones(headerItems []model.TextItem, labels []string) []model.ColumnZone {
	zones := make([]model.ColumnZone, 0, len(headerItems))

	for i, item := range headerItems {
		startX := 0.0
		if i > 0 {
			startX = (headerItems[i-1].X + item.X) / 2
		}

		endX := float64(model.ZoneEndSentinel)
		if i+1 < len(headerItems) {
			endX = (item.X + headerItems[i+1].X) / 2
		}

		zones = append(zones, model.ColumnZone{
			Header: zoneLabel(labels, i),
			StartX: startX,
			EndX:   endX,
		})
	}

	return zones
}

// zoneLabel returns labels[i], or a synthesized column name when the
// header row has more fragments than labels.
func zoneLabel(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("col_%d", i)
}

// zoneFor returns the first zone containing x, or -1 when x falls outside
// every zone.
func zoneFor(zones []model.ColumnZone, x float64) int {
	for i, z := range zones {
		if z.Contains(x) {
			return i
		}
	}
	return -1
}
