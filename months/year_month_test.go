package months

import (
	"testing"
	"time"
)

func TestYearMonthString(t *testing.T) {
	ym := YearMonth{Year: 2019, Month: 7}
	expected := "2019-07"
	if s := ym.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestYearMonthCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     YearMonth
		expected int
	}{
		{
			name:     "equal",
			a:        YearMonth{2019, 7},
			b:        YearMonth{2019, 7},
			expected: 0,
		},
		{
			name:     "earlier year",
			a:        YearMonth{2018, 12},
			b:        YearMonth{2019, 1},
			expected: -1,
		},
		{
			name:     "later month same year",
			a:        YearMonth{2019, 8},
			b:        YearMonth{2019, 7},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := tt.a.Compare(tt.b); c != tt.expected {
				t.Errorf("Compare() expected %d, got %d", tt.expected, c)
			}
		})
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2019, time.July, 15, 10, 0, 0, 0, time.UTC)
	ym := FromTime(tm)
	expected := YearMonth{Year: 2019, Month: 7}
	if ym != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, ym)
	}

	var zero time.Time
	if !FromTime(zero).IsZero() {
		t.Errorf("FromTime() with zero time expected a zero YearMonth")
	}
}

func TestFromBasicDate(t *testing.T) {
	ym, err := FromBasicDate("20190715")
	if err != nil {
		t.Fatalf("FromBasicDate() unexpected error: %v", err)
	}
	if expected := (YearMonth{Year: 2019, Month: 7}); ym != expected {
		t.Errorf("FromBasicDate() expected %+v, got %+v", expected, ym)
	}

	if _, err := FromBasicDate("2019-07-15"); err == nil {
		t.Errorf("FromBasicDate() expected an error for a non-basic date")
	}
	if _, err := FromBasicDate("not a date"); err == nil {
		t.Errorf("FromBasicDate() expected an error for garbage input")
	}
}

func TestFromAbbr(t *testing.T) {
	tests := []struct {
		abbr     string
		expected int
		ok       bool
	}{
		{"Jan", 1, true},
		{"Jul", 7, true},
		{"Dec", 12, true},
		{"Total", 0, false},
		{"jan", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			n, ok := FromAbbr(tt.abbr)
			if n != tt.expected || ok != tt.ok {
				t.Errorf("FromAbbr(%q) expected (%d, %v), got (%d, %v)", tt.abbr, tt.expected, tt.ok, n, ok)
			}
		})
	}
}

func TestAbbrRoundTrip(t *testing.T) {
	for i, abbr := range Abbrs() {
		ym := YearMonth{Year: 2020, Month: i + 1}
		if ym.Abbr() != abbr {
			t.Errorf("Abbr() for month %d expected %q, got %q", i+1, abbr, ym.Abbr())
		}
	}
}
