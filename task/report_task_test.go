package task

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odonslab/dengueview-go/config"
	"github.com/odonslab/dengueview-go/database"
	"github.com/odonslab/dengueview-go/months"
	"github.com/odonslab/dengueview-go/types"
)

type fakeProvider struct {
	data types.ClimateData
	err  error
}

func (p *fakeProvider) FetchDaily(_ context.Context, _ types.ClimateRequest) (types.ClimateData, error) {
	return p.data, p.err
}

func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(context.Background(), database.InMemoryPath)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestReportTaskStoresMonthlyMeans(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{
		data: types.ClimateData{
			Series: map[string][]types.DailyValue{
				"T2M": {
					{Date: "20190701", Value: 29.0},
					{Date: "20190702", Value: 31.0},
					{Date: "20190801", Value: 28.0},
				},
				"PRECTOTCORR": {
					{Date: "20190701", Value: 4.0},
					{Date: "20190702", Value: 6.0},
					{Date: "20190801", Value: 2.0},
				},
			},
		},
	}

	run := NewReportTask(slog.Default(), db, provider, config.AppConfigClimate{}, config.AppConfigReport{})
	run()

	ctx := context.Background()
	stored, err := db.GetMonthlyClimate(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 4)

	byKey := make(map[string]float64)
	for _, row := range stored {
		byKey[row.Key.String()+"/"+row.Parameter] = row.Value
	}
	assert.Equal(t, 30.0, byKey["2019-07/T2M"])
	assert.Equal(t, 5.0, byKey["2019-07/PRECTOTCORR"])
	assert.Equal(t, 28.0, byKey["2019-08/T2M"])

	latest, err := db.GetLatestReportRun(ctx)
	require.NoError(t, err)
	assert.False(t, latest.Failed())
	assert.False(t, latest.Running())
	assert.Equal(t, 2, latest.MonthCount)
}

func TestReportTaskAppliesFloors(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{
		data: types.ClimateData{
			Series: map[string][]types.DailyValue{
				"T2M": {
					{Date: "20190101", Value: -12.0}, // below the -5 floor
					{Date: "20190701", Value: 30.0},
				},
			},
		},
	}

	run := NewReportTask(slog.Default(), db, provider, config.AppConfigClimate{
		Parameters: []string{"T2M"},
	}, config.AppConfigReport{})
	run()

	stored, err := db.GetMonthlyClimate(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, months.YearMonth{Year: 2019, Month: 7}, stored[0].Key)
}

func TestReportTaskRecordsWarnings(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{
		data: types.ClimateData{
			Series: map[string][]types.DailyValue{
				"T2M": {{Date: "20190701", Value: 30.0}},
			},
			Unavailable: []string{"PRECTOTCORR"},
		},
	}

	run := NewReportTask(slog.Default(), db, provider, config.AppConfigClimate{}, config.AppConfigReport{})
	run()

	latest, err := db.GetLatestReportRun(context.Background())
	require.NoError(t, err)
	require.Len(t, latest.Warnings, 1)
	assert.Contains(t, latest.Warnings[0], "PRECTOTCORR")
	assert.False(t, latest.Failed())
}

func TestReportTaskSurfacesFetchFailure(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{err: errors.New("nasa power returned status 503: unavailable")}

	run := NewReportTask(slog.Default(), db, provider, config.AppConfigClimate{}, config.AppConfigReport{})
	run()

	ctx := context.Background()
	latest, err := db.GetLatestReportRun(ctx)
	require.NoError(t, err)
	require.True(t, latest.Failed())
	assert.Contains(t, latest.Error.Value(), "status 503")

	// A failed fetch aborts before aggregation; nothing gets stored.
	stored, err := db.GetMonthlyClimate(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
