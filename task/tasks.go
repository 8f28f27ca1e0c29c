package task

import (
	"context"
	"log/slog"

	"github.com/odonslab/dengueview-go/config"
	"github.com/odonslab/dengueview-go/database"
	"github.com/odonslab/dengueview-go/types"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	logger          *slog.Logger
	ReportTask      func()
	MaintenanceTask func()
}

func NewTasks(db *database.Database, provider types.ClimateProvider, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		logger:          logger,
		ReportTask:      NewReportTask(logger.With(slog.String("task", "report")), db, provider, cnfg.Climate, cnfg.Report),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

// Run executes the report task once right away, then schedules the
// refresh when one is configured. Without a refresh spec the session is
// strictly one-shot, aside from log maintenance.
func (t *Tasks) Run() {
	go t.ReportTask()

	if runAt := t.cnfg.Report.GetRunAt(); runAt != "" {
		if _, err := t.cron.AddFunc(runAt, t.ReportTask); err != nil {
			panic(err)
		}
		t.logger.Info("report refresh scheduled", slog.String("runAt", runAt))
	}
	if _, err := t.cron.AddFunc("30 2 * * *", t.MaintenanceTask); err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
