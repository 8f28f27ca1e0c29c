package aggregate

import (
	"math"

	"github.com/odonslab/dengueview-go/slice"
)

// Floors maps a column to the lowest value still considered plausible.
// Rows below any floor are dropped before the join, so every downstream
// consumer sees the same filtered data.
type Floors map[string]float64

// FilterFloors drops monthly rows whose value for a floored column lies
// below that floor. Columns with no floor, and NaN cells, pass through.
func FilterFloors(rows []MonthlyRow, floors Floors) []MonthlyRow {
	if len(floors) == 0 {
		return rows
	}
	return slice.Filter(rows, func(r MonthlyRow) bool {
		for col, floor := range floors {
			v, ok := r.Values[col]
			if !ok || math.IsNaN(v) {
				continue
			}
			if v < floor {
				return false
			}
		}
		return true
	})
}
