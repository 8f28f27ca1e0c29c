package months

import (
	"fmt"
	"time"
)

const basicDateLayout = "20060102"

// YearMonth is the composite key that aligns climate aggregates with
// case records: calendar year plus month number 1-12.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

func (ym YearMonth) Abbr() string {
	if ym.Month < 1 || ym.Month > 12 {
		return "?"
	}
	return abbrs[ym.Month-1]
}

func (ym YearMonth) Compare(other YearMonth) int {
	if ym == other {
		return 0
	}
	if ym.Year != other.Year {
		if ym.Year < other.Year {
			return -1
		}
		return 1
	}
	if ym.Month < other.Month {
		return -1
	}
	return 1
}

func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

func FromTime(t time.Time) YearMonth {
	if t.IsZero() {
		return YearMonth{}
	}
	t = t.UTC()
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// FromBasicDate derives the key from a YYYYMMDD date string, the format
// the NASA POWER API keys its daily values with.
func FromBasicDate(str string) (YearMonth, error) {
	t, err := time.ParseInLocation(basicDateLayout, str, time.UTC)
	if err != nil {
		return YearMonth{}, err
	}
	return FromTime(t), nil
}

var abbrs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Abbrs returns the twelve month abbreviations in calendar order.
func Abbrs() []string {
	result := make([]string, len(abbrs))
	copy(result, abbrs)
	return result
}

// FromAbbr maps a month abbreviation ("Jan".."Dec") to its 1-12 number.
func FromAbbr(abbr string) (int, bool) {
	for i, a := range abbrs {
		if a == abbr {
			return i + 1, true
		}
	}
	return 0, false
}
