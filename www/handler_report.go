package www

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	_ "embed"

	"github.com/odonslab/dengueview-go/database"
)

type reportStatus struct {
	HasRun     bool
	Running    bool
	Failed     bool
	Error      string
	Warnings   []string
	Started    time.Time
	Finished   time.Time
	MonthCount int
}

func NewReportHandler(logger *slog.Logger, db *database.Database, tm *TemplateManager, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html")

			status, err := fetchReportStatus(r.Context(), db)
			if err != nil {
				logger.Error("handling report request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if err := tm.ExecuteToWriter("report_status.html", status, &w); err != nil {
				logger.Error("handling report request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

		case http.MethodPost:
			go task()
			w.WriteHeader(http.StatusAccepted)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func fetchReportStatus(ctx context.Context, db *database.Database) (reportStatus, error) {
	run, err := db.GetLatestReportRun(ctx)
	if err != nil {
		if errors.Is(err, database.ErrNoReportRun) {
			return reportStatus{}, nil
		}
		return reportStatus{}, err
	}

	return reportStatus{
		HasRun:     true,
		Running:    run.Running(),
		Failed:     run.Failed(),
		Error:      run.Error.ValueOrDefault(""),
		Warnings:   run.Warnings,
		Started:    run.Started,
		Finished:   run.Finished.ValueOrDefault(time.Time{}),
		MonthCount: run.MonthCount,
	}, nil
}
