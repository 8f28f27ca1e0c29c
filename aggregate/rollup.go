package aggregate

import (
	"math"
	"slices"
)

// YearlyRow is the yearly overview: climate columns averaged over the
// year's months, case counts summed.
type YearlyRow struct {
	Year   int
	Values map[string]float64
	Cases  int
}

// Yearly rolls the joined table up by calendar year, ascending.
func Yearly(rows []JoinedRow) []YearlyRow {
	byYear := make(map[int][]JoinedRow)
	for _, r := range rows {
		byYear[r.Key.Year] = append(byYear[r.Key.Year], r)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)

	result := make([]YearlyRow, 0, len(years))
	for _, y := range years {
		result = append(result, YearlyRow{
			Year:   y,
			Values: meanValues(byYear[y]),
			Cases:  sumCases(byYear[y]),
		})
	}
	return result
}

// MonthRow aggregates one calendar month across all years: mean climate,
// summed cases. Drives the month-profile section.
type MonthRow struct {
	Month  int
	Values map[string]float64
	Cases  int
}

// ByMonth rolls the joined table up by month number 1-12, ascending.
func ByMonth(rows []JoinedRow) []MonthRow {
	byMonth := make(map[int][]JoinedRow)
	for _, r := range rows {
		byMonth[r.Key.Month] = append(byMonth[r.Key.Month], r)
	}

	monthNums := make([]int, 0, len(byMonth))
	for m := range byMonth {
		monthNums = append(monthNums, m)
	}
	slices.Sort(monthNums)

	result := make([]MonthRow, 0, len(monthNums))
	for _, m := range monthNums {
		result = append(result, MonthRow{
			Month:  m,
			Values: meanValues(byMonth[m]),
			Cases:  sumCases(byMonth[m]),
		})
	}
	return result
}

func meanValues(rows []JoinedRow) map[string]float64 {
	sum := make(map[string]float64)
	count := make(map[string]int)
	for _, r := range rows {
		for col, v := range r.Values {
			if math.IsNaN(v) {
				continue
			}
			sum[col] += v
			count[col]++
		}
	}
	means := make(map[string]float64, len(sum))
	for col, s := range sum {
		means[col] = s / float64(count[col])
	}
	return means
}

func sumCases(rows []JoinedRow) int {
	total := 0
	for _, r := range rows {
		total += r.Cases.ValueOrDefault(0)
	}
	return total
}
