package www

import (
	"context"

	"github.com/odonslab/dengueview-go/aggregate"
	"github.com/odonslab/dengueview-go/cases"
	"github.com/odonslab/dengueview-go/database"
)

// loadJoined reads the stored monthly climate aggregates and joins them
// with the dengue case table. The climate side drives the join, months
// without a case record come back as None.
func loadJoined(ctx context.Context, db *database.Database) ([]aggregate.JoinedRow, error) {
	stored, err := db.GetMonthlyClimate(ctx)
	if err != nil {
		return nil, err
	}

	var rows []aggregate.MonthlyRow
	for _, s := range stored {
		if len(rows) == 0 || rows[len(rows)-1].Key != s.Key {
			rows = append(rows, aggregate.MonthlyRow{Key: s.Key, Values: map[string]float64{}})
		}
		rows[len(rows)-1].Values[s.Parameter] = s.Value
	}

	return aggregate.LeftJoin(rows, cases.Records())
}
