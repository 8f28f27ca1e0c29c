package database

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odonslab/dengueview-go/months"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), InMemoryPath)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestMonthlyClimateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rows := []MonthlyClimateRow{
		{Key: months.YearMonth{Year: 2019, Month: 7}, Parameter: "T2M", Value: 30.0},
		{Key: months.YearMonth{Year: 2019, Month: 7}, Parameter: "PRECTOTCORR", Value: 5.0},
		{Key: months.YearMonth{Year: 2019, Month: 8}, Parameter: "T2M", Value: math.NaN()},
	}
	require.NoError(t, db.ReplaceMonthlyClimate(ctx, rows))

	got, err := db.GetMonthlyClimate(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordered by (year, month, parameter).
	assert.Equal(t, "PRECTOTCORR", got[0].Parameter)
	assert.Equal(t, 5.0, got[0].Value)
	assert.Equal(t, "T2M", got[1].Parameter)
	assert.Equal(t, 30.0, got[1].Value)
	assert.True(t, math.IsNaN(got[2].Value), "NULL must come back as NaN")
}

func TestReplaceMonthlyClimateDropsPreviousRun(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := []MonthlyClimateRow{
		{Key: months.YearMonth{Year: 2013, Month: 1}, Parameter: "T2M", Value: 9.0},
	}
	require.NoError(t, db.ReplaceMonthlyClimate(ctx, first))

	second := []MonthlyClimateRow{
		{Key: months.YearMonth{Year: 2019, Month: 7}, Parameter: "T2M", Value: 30.0},
	}
	require.NoError(t, db.ReplaceMonthlyClimate(ctx, second))

	got, err := db.GetMonthlyClimate(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, months.YearMonth{Year: 2019, Month: 7}, got[0].Key)
}

func TestReportRunLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.GetLatestReportRun(ctx)
	require.ErrorIs(t, err, ErrNoReportRun)

	id, err := db.StartReportRun(ctx)
	require.NoError(t, err)

	running, err := db.GetLatestReportRun(ctx)
	require.NoError(t, err)
	assert.True(t, running.Running())
	assert.False(t, running.Failed())

	warnings := []string{"parameter 'WS2M' is not available"}
	require.NoError(t, db.FinishReportRun(ctx, id, 132, warnings, nil))

	done, err := db.GetLatestReportRun(ctx)
	require.NoError(t, err)
	assert.False(t, done.Running())
	assert.False(t, done.Failed())
	assert.Equal(t, 132, done.MonthCount)
	assert.Equal(t, warnings, done.Warnings)
}

func TestReportRunFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.StartReportRun(ctx)
	require.NoError(t, err)
	require.NoError(t, db.FinishReportRun(ctx, id, 0, nil, errors.New("nasa power returned status 503")))

	run, err := db.GetLatestReportRun(ctx)
	require.NoError(t, err)
	assert.True(t, run.Failed())
	assert.Contains(t, run.Error.Value(), "status 503")
	assert.Empty(t, run.Warnings)
}

func TestLogRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveLogEntry(ctx, LogEntryRow{
		Timestamp: time.Now().UTC(),
		Level:     4, // slog.LevelWarn
		Message:   "parameter not available",
		Attrs:     `[{"parameter":"WS2M"}]`,
	}))

	entries, err := db.GetLogEntries(ctx, 0, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "parameter not available", entries[0].Message)
}
