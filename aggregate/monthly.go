package aggregate

import (
	"fmt"
	"math"
	"slices"

	"github.com/odonslab/dengueview-go/months"
)

// MonthlyRow is the arithmetic mean of each climate column over all days
// of one year-month.
type MonthlyRow struct {
	Key    months.YearMonth
	Values map[string]float64
}

// ParseError reports a date cell that could not be parsed. It aborts the
// whole aggregation; there is no per-row recovery.
type ParseError struct {
	Date string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable date %q: %v", e.Date, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Monthly groups the table's rows by (year, month) and averages every
// column within each group. NaN cells (the source's missing-value fill)
// are ignored; a group that only has NaN for a column yields NaN. Output
// is sorted by (year, month) ascending, one row per key.
func Monthly(t Table) ([]MonthlyRow, error) {
	type acc struct {
		sum   map[string]float64
		count map[string]int
	}

	groups := make(map[months.YearMonth]*acc)
	for i, date := range t.Dates {
		key, err := months.FromBasicDate(date)
		if err != nil {
			return nil, &ParseError{Date: date, Err: err}
		}

		g, ok := groups[key]
		if !ok {
			g = &acc{sum: make(map[string]float64), count: make(map[string]int)}
			groups[key] = g
		}
		for _, col := range t.Columns {
			v := t.Value(i, col)
			if math.IsNaN(v) {
				continue
			}
			g.sum[col] += v
			g.count[col]++
		}
	}

	rows := make([]MonthlyRow, 0, len(groups))
	for key, g := range groups {
		values := make(map[string]float64, len(t.Columns))
		for _, col := range t.Columns {
			if g.count[col] == 0 {
				values[col] = math.NaN()
				continue
			}
			values[col] = g.sum[col] / float64(g.count[col])
		}
		rows = append(rows, MonthlyRow{Key: key, Values: values})
	}

	slices.SortFunc(rows, func(a, b MonthlyRow) int {
		return a.Key.Compare(b.Key)
	})

	return rows, nil
}
