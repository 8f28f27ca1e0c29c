// Package aggregate turns per-variable daily climate series into the
// monthly table the report is built from: align on date, average per
// year-month, filter out-of-range rows, left join the case counts.
package aggregate

import (
	"math"
	"slices"

	"github.com/odonslab/dengueview-go/types"
)

// Table is a wide table keyed by date: one row per calendar day, one
// column per variable code. Cells with no observation hold NaN.
type Table struct {
	Dates   []string // YYYYMMDD, ascending
	Columns []string // variable codes, in stable sorted order
	values  map[string][]float64
}

// Value returns the cell for a date index and column.
func (t Table) Value(dateIdx int, column string) float64 {
	col, ok := t.values[column]
	if !ok {
		return math.NaN()
	}
	return col[dateIdx]
}

// Align merges the per-variable series on their shared date key. Each
// code contributes exactly one column regardless of how often it appears
// in the input, and the date column exists once. Dates are the union of
// all series, sorted ascending, with NaN where a series has no value
// for a date.
func Align(series map[string][]types.DailyValue) Table {
	dateSet := make(map[string]bool)
	columns := make([]string, 0, len(series))
	for code, s := range series {
		columns = append(columns, code)
		for _, dv := range s {
			dateSet[dv.Date] = true
		}
	}
	slices.Sort(columns)

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	slices.Sort(dates)

	index := make(map[string]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	values := make(map[string][]float64, len(columns))
	for code, s := range series {
		col := make([]float64, len(dates))
		for i := range col {
			col[i] = math.NaN()
		}
		for _, dv := range s {
			col[index[dv.Date]] = dv.Value
		}
		values[code] = col
	}

	return Table{Dates: dates, Columns: columns, values: values}
}
