package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/odonslab/dengueview-go/types/maybe"
)

// ReportRunRow records one pass of the fetch-aggregate-join pipeline.
// Error holds the single surfaced failure message; Warnings the
// non-fatal per-variable availability notes.
type ReportRunRow struct {
	ID         int64
	Started    time.Time
	Finished   maybe.Maybe[time.Time]
	Error      maybe.Maybe[string]
	Warnings   []string
	MonthCount int
}

func (r ReportRunRow) Failed() bool {
	return r.Error.IsValid()
}

func (r ReportRunRow) Running() bool {
	return !r.Finished.IsValid()
}

// ErrNoReportRun is returned before the first pipeline pass completes.
var ErrNoReportRun = errors.New("no report run recorded yet")

func (d *Database) StartReportRun(ctx context.Context) (int64, error) {
	res, err := d.write.ExecContext(ctx, `
		INSERT INTO report_run (started) VALUES (?)`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("recording report run start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading report run id: %w", err)
	}
	return id, nil
}

// FinishReportRun closes a run. runErr nil means success; otherwise its
// message is stored as the run's single surfaced error.
func (d *Database) FinishReportRun(ctx context.Context, id int64, monthCount int, warnings []string, runErr error) error {
	errMsg := sql.NullString{}
	if runErr != nil {
		errMsg = sql.NullString{String: runErr.Error(), Valid: true}
	}
	_, err := d.write.ExecContext(ctx, `
		UPDATE report_run
		SET finished = ?, error = ?, warnings = ?, month_count = ?
		WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339),
		errMsg,
		strings.Join(warnings, "\n"),
		monthCount,
		id)
	if err != nil {
		return fmt.Errorf("recording report run result: %w", err)
	}
	return nil
}

func (d *Database) GetLatestReportRun(ctx context.Context) (ReportRunRow, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT id, started, finished, error, warnings, month_count
		FROM report_run
		ORDER BY id DESC
		LIMIT 1`)

	var r ReportRunRow
	var started string
	var finished, errMsg sql.NullString
	var warnings string
	err := row.Scan(&r.ID, &started, &finished, &errMsg, &warnings, &r.MonthCount)
	if errors.Is(err, sql.ErrNoRows) {
		return ReportRunRow{}, ErrNoReportRun
	}
	if err != nil {
		return ReportRunRow{}, fmt.Errorf("scanning report run row: %w", err)
	}

	r.Started, err = time.Parse(time.RFC3339, started)
	if err != nil {
		return ReportRunRow{}, fmt.Errorf("parsing report run start: %w", err)
	}
	if finished.Valid {
		t, err := time.Parse(time.RFC3339, finished.String)
		if err != nil {
			return ReportRunRow{}, fmt.Errorf("parsing report run finish: %w", err)
		}
		r.Finished = maybe.Some(t)
	}
	r.Error = maybe.SqlNull(errMsg.String, errMsg.Valid)
	if warnings != "" {
		r.Warnings = strings.Split(warnings, "\n")
	}

	return r, nil
}
