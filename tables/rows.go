package tables

import (
	"math"
	"sort"

	"github.com/davissekai/irys/model"
)

// GroupRows clusters text items into rows by Y coordinate. Items are
// sorted by Y ascending and walked in order; an item joins the current
// row while its Y is within yTolerance of the running mean Y of the items
// already in that row. Comparing against the moving mean rather than a
// fixed anchor tolerates slight skew across a handwritten or slanted row.
//
// Each returned row is sorted by X ascending. The result is independent
// of the input order: ties are broken deterministically.
func GroupRows(items []model.TextItem, yTolerance float64) [][]model.TextItem {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]model.TextItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Text < sorted[j].Text
	})

	var rows [][]model.TextItem
	current := []model.TextItem{sorted[0]}
	sumY := sorted[0].Y

	for _, item := range sorted[1:] {
		meanY := sumY / float64(len(current))
		if math.Abs(item.Y-meanY) <= yTolerance {
			current = append(current, item)
			sumY += item.Y
		} else {
			rows = append(rows, sortRowByX(current))
			current = []model.TextItem{item}
			sumY = item.Y
		}
	}

	rows = append(rows, sortRowByX(current))
	return rows
}

// sortRowByX orders a row's items left to right, breaking X ties
// deterministically.
func sortRowByX(row []model.TextItem) []model.TextItem {
	sort.Slice(row, func(i, j int) bool {
		if row[i].X != row[j].X {
			return row[i].X < row[j].X
		}
		if row[i].Y != row[j].Y {
			return row[i].Y < row[j].Y
		}
		return row[i].Text < row[j].Text
	})
	return row
}
