package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/odonslab/dengueview-go/aggregate"
	"github.com/odonslab/dengueview-go/config"
	"github.com/odonslab/dengueview-go/database"
	"github.com/odonslab/dengueview-go/nasapower"
	"github.com/odonslab/dengueview-go/slice"
	"github.com/odonslab/dengueview-go/types"
)

// NewReportTask wires the fetch-aggregate pipeline: one POWER call,
// align on date, monthly means, plausibility floors, then replace the
// stored aggregate. The join with the case table happens at read time;
// only climate comes from the network.
func NewReportTask(
	logger *slog.Logger,
	db *database.Database,
	provider types.ClimateProvider,
	climateCnfg config.AppConfigClimate,
	reportCnfg config.AppConfigReport,
) func() {
	return func() {
		logger.Debug("running report task...")

		ctx, cancel := context.WithTimeout(context.Background(), climateCnfg.GetTimeout()+30*time.Second)
		defer cancel()

		runID, err := db.StartReportRun(ctx)
		if err != nil {
			logger.Error("report task error", slog.Any("error", err))
			return
		}

		rows, warnings, runErr := buildMonthlyClimate(ctx, logger, provider, climateCnfg, reportCnfg)
		if runErr == nil {
			runErr = db.ReplaceMonthlyClimate(ctx, toClimateRows(rows))
		}

		if err := db.FinishReportRun(ctx, runID, len(rows), warnings, runErr); err != nil {
			logger.Error("report task error", slog.Any("error", err))
			return
		}

		if runErr != nil {
			// The single surfaced failure; chart sections that depend
			// on the joined table are skipped, static sections render.
			logger.Error("report task failed", slog.Any("error", runErr))
			return
		}

		logger.Info("report task done",
			slog.Int("noOfMonths", len(rows)),
			slog.Int("noOfWarnings", len(warnings)))
	}
}

func buildMonthlyClimate(
	ctx context.Context,
	logger *slog.Logger,
	provider types.ClimateProvider,
	climateCnfg config.AppConfigClimate,
	reportCnfg config.AppConfigReport,
) ([]aggregate.MonthlyRow, []string, error) {
	data, err := provider.FetchDaily(ctx, types.ClimateRequest{
		Latitude:   climateCnfg.GetLatitude(),
		Longitude:  climateCnfg.GetLongitude(),
		Start:      climateCnfg.GetStart(),
		End:        climateCnfg.GetEnd(),
		Parameters: climateCnfg.GetParameters(),
	})
	if err != nil {
		return nil, nil, err
	}

	warnings := slice.Map(data.Unavailable, func(code string) string {
		return "parameter '" + code + "' is not available for the given location and time range"
	})
	if len(data.Series) == 0 {
		return nil, warnings, errors.New("no requested parameter was available")
	}

	monthly, err := aggregate.Monthly(aggregate.Align(data.Series))
	if err != nil {
		return nil, warnings, err
	}

	filtered := aggregate.FilterFloors(monthly, floorsFor(climateCnfg.GetParameters(), reportCnfg))
	return filtered, warnings, nil
}

// The floors guard the two variables the study uses. Extra configured
// parameters pass unfiltered.
func floorsFor(parameters []string, cnfg config.AppConfigReport) aggregate.Floors {
	floors := make(aggregate.Floors)
	for _, p := range parameters {
		switch p {
		case nasapower.ParamTemperature:
			floors[p] = cnfg.GetMinTemperature()
		case nasapower.ParamPrecipitation:
			floors[p] = cnfg.GetMinPrecipitation()
		}
	}
	return floors
}

func toClimateRows(rows []aggregate.MonthlyRow) []database.MonthlyClimateRow {
	var out []database.MonthlyClimateRow
	for _, row := range rows {
		for parameter, value := range row.Values {
			out = append(out, database.MonthlyClimateRow{
				Key:       row.Key,
				Parameter: parameter,
				Value:     value,
			})
		}
	}
	return out
}
