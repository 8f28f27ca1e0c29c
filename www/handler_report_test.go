package www_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odonslab/dengueview-go/www"
)

func newTestTemplates(t *testing.T) *www.TemplateManager {
	t.Helper()
	tm, err := www.NewTemplateManager(slog.Default(), nil)
	require.NoError(t, err)
	return tm
}

func TestReportHandlerNoRunYet(t *testing.T) {
	db := newTestDB(t)
	handler := www.NewReportHandler(slog.Default(), db, newTestTemplates(t), func() {})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No report has been generated yet")
}

func TestReportHandlerShowsLatestRun(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.StartReportRun(ctx)
	require.NoError(t, err)
	require.NoError(t, db.FinishReportRun(ctx, id, 132, []string{"PS unavailable"}, nil))

	handler := www.NewReportHandler(slog.Default(), db, newTestTemplates(t), func() {})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "132 months of climate data")
	assert.Contains(t, rec.Body.String(), "PS unavailable")
}

func TestReportHandlerPostTriggersTask(t *testing.T) {
	db := newTestDB(t)

	started := make(chan struct{})
	task := func() { close(started) }

	handler := www.NewReportHandler(slog.Default(), db, newTestTemplates(t), task)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/report", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("task was not triggered")
	}
}

func TestCasesHandlerRendersStaticSections(t *testing.T) {
	handler := www.NewCasesHandler(slog.Default(), newTestTemplates(t))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/cases", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Reported Dengue Cases in Rawalpindi")
	assert.Contains(t, body, "5581")
	assert.Contains(t, body, "Aedes aegypti")
	assert.Contains(t, body, "References")
}
