// Package cases holds the hand-entered dengue surveillance figures for
// Rawalpindi. The tables are literals compiled into the binary; nothing
// mutates them after construction.
package cases

import (
	"fmt"

	"github.com/odonslab/dengueview-go/months"
)

// Record is one reshaped cell of the literal table: the case count for
// one year-month.
type Record struct {
	Key   months.YearMonth
	Count int
}

// yearRow mirrors one row of the published table: twelve monthly counts
// in calendar order plus the year's reported total.
type yearRow struct {
	year   int
	counts [12]int
	total  int
}

// Monthly dengue cases reported for Rawalpindi and adjacent hospitals,
// RMU DDEAG database, 2013-2023.
var caseTable = []yearRow{
	{2013, [12]int{0, 0, 0, 0, 0, 0, 1, 1, 36, 396, 408, 19}, 861},
	{2014, [12]int{0, 0, 0, 0, 0, 0, 2, 2, 51, 907, 479, 15}, 1456},
	{2015, [12]int{0, 0, 1, 0, 2, 2, 0, 55, 813, 2317, 603, 124}, 3917},
	{2016, [12]int{0, 0, 2, 5, 13, 7, 7, 22, 412, 2053, 770, 16}, 3307},
	{2017, [12]int{1, 0, 0, 0, 0, 0, 0, 6, 135, 386, 122, 1}, 651},
	{2018, [12]int{1, 0, 0, 2, 2, 1, 14, 9, 98, 444, 142, 4}, 717},
	{2019, [12]int{0, 0, 0, 0, 1, 2, 27, 684, 4686, 5581, 961, 0}, 11942},
	{2020, [12]int{0, 0, 0, 0, 0, 0, 1, 4, 16, 13, 0, 4}, 38},
	{2021, [12]int{0, 0, 1, 0, 0, 0, 2, 12, 420, 2126, 948, 17}, 3526},
	{2022, [12]int{0, 0, 2, 0, 0, 5, 9, 420, 1912, 2106, 565, 20}, 5039},
	{2023, [12]int{0, 0, 1, 1, 3, 9, 25, 148, 1044, 1112, 361, 34}, 2738},
}

// Records reshapes the literal table from wide to long form: one record
// per year-month cell, twelve per year, zeros included. The Total column
// is never reshaped; it only appears in the display table.
func Records() []Record {
	records := make([]Record, 0, len(caseTable)*12)
	for _, row := range caseTable {
		for i, count := range row.counts {
			records = append(records, Record{
				Key:   months.YearMonth{Year: row.year, Month: i + 1},
				Count: count,
			})
		}
	}
	return records
}

// DisplayRow is one row of the standalone literal-table rendering,
// including the Total column.
type DisplayRow struct {
	Year   int
	Counts []int
	Total  int
}

func DisplayTable() []DisplayRow {
	rows := make([]DisplayRow, 0, len(caseTable))
	for _, row := range caseTable {
		counts := make([]int, 12)
		copy(counts, row.counts[:])
		rows = append(rows, DisplayRow{Year: row.year, Counts: counts, Total: row.total})
	}
	return rows
}

// Years returns the range covered by the case table, for page copy.
func Years() (first, last int) {
	return caseTable[0].year, caseTable[len(caseTable)-1].year
}

// Verify cross-checks every year's reported total against the sum of its
// monthly counts. A mismatch means the literal was mistyped.
func Verify() error {
	for _, row := range caseTable {
		sum := 0
		for _, c := range row.counts {
			sum += c
		}
		if sum != row.total {
			return fmt.Errorf("case table year %d: monthly counts sum to %d, total column says %d", row.year, sum, row.total)
		}
	}
	return nil
}
