package aggregate

import (
	"fmt"

	"github.com/odonslab/dengueview-go/cases"
	"github.com/odonslab/dengueview-go/months"
	"github.com/odonslab/dengueview-go/types/maybe"
)

// JoinedRow is one row of the final report table: the climate means for
// a year-month plus the case count, when one exists. Cases is None for
// year-months outside the case table's range.
type JoinedRow struct {
	Key    months.YearMonth
	Values map[string]float64
	Cases  maybe.Maybe[int]
}

// DuplicateCaseError reports two case records carrying the same
// year-month key. The reshaped literal table cannot produce this; seeing
// it means the case input is corrupt, and silently fanning out the
// joined row would be worse than failing.
type DuplicateCaseError struct {
	Key months.YearMonth
}

func (e *DuplicateCaseError) Error() string {
	return fmt.Sprintf("duplicate case record for %s", e.Key)
}

// LeftJoin attaches case counts to the monthly climate rows by
// (year, month). Every climate row appears exactly once in the output,
// matched or not; the climate side is authoritative.
func LeftJoin(rows []MonthlyRow, records []cases.Record) ([]JoinedRow, error) {
	counts := make(map[months.YearMonth]int, len(records))
	for _, r := range records {
		if _, dup := counts[r.Key]; dup {
			return nil, &DuplicateCaseError{Key: r.Key}
		}
		counts[r.Key] = r.Count
	}

	joined := make([]JoinedRow, 0, len(rows))
	for _, row := range rows {
		jr := JoinedRow{Key: row.Key, Values: row.Values, Cases: maybe.None[int]()}
		if count, ok := counts[row.Key]; ok {
			jr.Cases = maybe.Some(count)
		}
		joined = append(joined, jr)
	}

	return joined, nil
}
