package nasapower

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odonslab/dengueview-go/types"
)

func testRequest() types.ClimateRequest {
	return types.ClimateRequest{
		Latitude:   33.6,
		Longitude:  73.0,
		Start:      "20190701",
		End:        "20190703",
		Parameters: []string{"T2M", "PRECTOTCORR"},
	}
}

func TestFetchDailyHappyPath(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"parameters": q.Get("parameters"),
			"community":  q.Get("community"),
			"latitude":   q.Get("latitude"),
			"longitude":  q.Get("longitude"),
			"start":      q.Get("start"),
			"end":        q.Get("end"),
			"format":     q.Get("format"),
		}
		w.Write([]byte(`{
			"properties": {
				"parameter": {
					"T2M": {"20190702": 31.5, "20190701": 30.0, "20190703": -999.0},
					"PRECTOTCORR": {"20190701": 5.0, "20190702": 0.0, "20190703": 1.25}
				}
			}
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	data, err := client.FetchDaily(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"parameters": "T2M,PRECTOTCORR",
		"community":  "AG",
		"latitude":   "33.6",
		"longitude":  "73",
		"start":      "20190701",
		"end":        "20190703",
		"format":     "JSON",
	}, gotQuery)

	require.Len(t, data.Series, 2)
	assert.Empty(t, data.Unavailable)

	t2m := data.Series["T2M"]
	require.Len(t, t2m, 3)
	// Sorted by date, duplicates impossible.
	assert.Equal(t, "20190701", t2m[0].Date)
	assert.Equal(t, 30.0, t2m[0].Value)
	assert.Equal(t, "20190702", t2m[1].Date)
	assert.Equal(t, 31.5, t2m[1].Value)
	assert.True(t, math.IsNaN(t2m[2].Value), "fill value must surface as NaN")
}

func TestFetchDailyMissingParameterIsAWarning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"properties": {
				"parameter": {
					"T2M": {"20190701": 30.0}
				}
			}
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	data, err := client.FetchDaily(context.Background(), testRequest())
	require.NoError(t, err, "a missing parameter must not fail the whole call")

	assert.Len(t, data.Series, 1)
	assert.NotContains(t, data.Series, "PRECTOTCORR")
	assert.Equal(t, []string{"PRECTOTCORR"}, data.Unavailable)
}

func TestFetchDailyNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"messages": ["PRECTOTCORRX is not a valid parameter"]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	_, err := client.FetchDaily(context.Background(), testRequest())

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusUnprocessableEntity, ferr.StatusCode)
	assert.Contains(t, ferr.Body, "not a valid parameter")
}

func TestFetchDailyMissingStructure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no properties", `{"messages": []}`},
		{"no parameter map", `{"properties": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := New(srv.URL, 5*time.Second)
			_, err := client.FetchDaily(context.Background(), testRequest())

			var serr *DataShapeError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, serr.Error(), "no climate data found")
		})
	}
}
