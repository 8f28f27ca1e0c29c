// Package nasapower fetches daily climate observations for a point from
// the NASA POWER API. One call, one HTTP round trip: no retry, no
// caching, no rate limiting.
package nasapower

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/odonslab/dengueview-go/types"
)

// The agriculture community, matching the source the case data was
// analyzed against.
const community = "AG"

// FetchError is a non-success response from POWER. It carries the raw
// body because the API puts its diagnostics there.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("nasa power returned status %d: %s", e.StatusCode, e.Body)
}

// DataShapeError is a success response that lacks the expected nested
// structure.
type DataShapeError struct {
	Reason string
}

func (e *DataShapeError) Error() string {
	return e.Reason
}

type Client struct {
	logger  *slog.Logger
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		logger:  slog.Default().With("module", "nasapower"),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchDaily returns one daily series per requested variable code.
// Codes the source does not deliver for this point and range are
// reported in ClimateData.Unavailable instead of failing the call.
func (c *Client) FetchDaily(ctx context.Context, req types.ClimateRequest) (types.ClimateData, error) {
	q := url.Values{}
	q.Set("parameters", strings.Join(req.Parameters, ","))
	q.Set("community", community)
	q.Set("latitude", fmt.Sprintf("%g", req.Latitude))
	q.Set("longitude", fmt.Sprintf("%g", req.Longitude))
	q.Set("start", req.Start)
	q.Set("end", req.End)
	q.Set("format", "JSON")
	u := fmt.Sprintf("%s/api/temporal/daily/point?%s", c.baseURL, q.Encode())

	c.logger.Info("fetching climate data from NASA POWER...",
		slog.String("start", req.Start),
		slog.String("end", req.End),
		slog.String("parameters", strings.Join(req.Parameters, ",")))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return types.ClimateData{}, fmt.Errorf("building nasa power request: %w", err)
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return types.ClimateData{}, fmt.Errorf("calling nasa power: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return types.ClimateData{}, fmt.Errorf("reading nasa power response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return types.ClimateData{}, &FetchError{StatusCode: res.StatusCode, Body: string(body)}
	}

	var parsed powerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return types.ClimateData{}, fmt.Errorf("unmarshaling nasa power response: %w", err)
	}
	if parsed.Properties == nil || parsed.Properties.Parameter == nil {
		return types.ClimateData{}, &DataShapeError{Reason: "no climate data found for the given parameters"}
	}

	data := types.ClimateData{Series: make(map[string][]types.DailyValue, len(req.Parameters))}
	for _, code := range req.Parameters {
		daily, ok := parsed.Properties.Parameter[code]
		if !ok {
			c.logger.Warn("parameter not available for this location and time range",
				slog.String("parameter", code))
			data.Unavailable = append(data.Unavailable, code)
			continue
		}
		data.Series[code] = toSeries(daily)
	}

	return data, nil
}

// toSeries flattens the date-keyed map into a date-sorted slice,
// converting the fill value to NaN. Map keys are unique, so dates within
// a series are too.
func toSeries(daily map[string]float64) []types.DailyValue {
	series := make([]types.DailyValue, 0, len(daily))
	for date, value := range daily {
		if value == FillValue {
			value = math.NaN()
		}
		series = append(series, types.DailyValue{Date: date, Value: value})
	}
	slices.SortFunc(series, func(a, b types.DailyValue) int {
		return strings.Compare(a.Date, b.Date)
	})
	return series
}
