package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/odonslab/dengueview-go/months"
)

// MonthlyClimateRow is one (year, month, parameter) mean. NaN values
// round-trip through SQL NULL.
type MonthlyClimateRow struct {
	Key       months.YearMonth
	Parameter string
	Value     float64
}

// ReplaceMonthlyClimate swaps the stored aggregate for a fresh run's
// rows in one transaction, so readers never see a half-written report.
func (d *Database) ReplaceMonthlyClimate(ctx context.Context, rows []MonthlyClimateRow) error {
	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting monthly climate transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_climate`); err != nil {
		return fmt.Errorf("clearing monthly climate: %w", err)
	}

	for _, row := range rows {
		value := sql.NullFloat64{Float64: row.Value, Valid: !math.IsNaN(row.Value)}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO monthly_climate (year, month, parameter, value)
			VALUES (?, ?, ?, ?)`,
			row.Key.Year, row.Key.Month, row.Parameter, value)
		if err != nil {
			return fmt.Errorf("saving monthly climate for %s/%s: %w", row.Key, row.Parameter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing monthly climate: %w", err)
	}
	return nil
}

// GetMonthlyClimate returns all stored rows ordered by (year, month,
// parameter) ascending.
func (d *Database) GetMonthlyClimate(ctx context.Context) ([]MonthlyClimateRow, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT year, month, parameter, value
		FROM monthly_climate
		ORDER BY year, month, parameter`)
	if err != nil {
		return nil, fmt.Errorf("fetching monthly climate: %w", err)
	}
	defer rows.Close()

	var result []MonthlyClimateRow
	for rows.Next() {
		var row MonthlyClimateRow
		var value sql.NullFloat64
		if err := rows.Scan(&row.Key.Year, &row.Key.Month, &row.Parameter, &value); err != nil {
			return nil, fmt.Errorf("scanning monthly climate row: %w", err)
		}
		if value.Valid {
			row.Value = value.Float64
		} else {
			row.Value = math.NaN()
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading monthly climate rows: %w", err)
	}

	return result, nil
}
