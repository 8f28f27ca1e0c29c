package types

import "context"

// DailyValue is one observed value for one calendar day. The date keeps
// the source's YYYYMMDD form; parsing happens in the aggregation step so
// an unparseable date fails there, not here.
type DailyValue struct {
	Date  string
	Value float64 // NaN when the source reported its missing-value fill
}

// ClimateData is the typed result of one fetch: one series per variable
// code that the source could deliver, plus the codes it could not.
// Unavailable codes are a warning, not a failure.
type ClimateData struct {
	Series      map[string][]DailyValue
	Unavailable []string
}

type ClimateRequest struct {
	Latitude   float64
	Longitude  float64
	Start      string // YYYYMMDD, inclusive
	End        string // YYYYMMDD, inclusive
	Parameters []string
}

type ClimateProvider interface {
	FetchDaily(ctx context.Context, req ClimateRequest) (ClimateData, error)
}
