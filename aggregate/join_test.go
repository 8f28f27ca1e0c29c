package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odonslab/dengueview-go/aggregate"
	"github.com/odonslab/dengueview-go/cases"
	"github.com/odonslab/dengueview-go/months"
)

func TestLeftJoinAttachesMatchingCases(t *testing.T) {
	rows := []aggregate.MonthlyRow{
		{
			Key:    months.YearMonth{Year: 2019, Month: 7},
			Values: map[string]float64{"T2M": 30.0, "PRECTOTCORR": 5.0},
		},
	}
	records := []cases.Record{
		{Key: months.YearMonth{Year: 2019, Month: 7}, Count: 27},
	}

	joined, err := aggregate.LeftJoin(rows, records)
	require.NoError(t, err)
	require.Len(t, joined, 1)

	assert.Equal(t, 30.0, joined[0].Values["T2M"])
	assert.Equal(t, 5.0, joined[0].Values["PRECTOTCORR"])
	require.True(t, joined[0].Cases.IsValid())
	assert.Equal(t, 27, joined[0].Cases.Value())
}

func TestLeftJoinKeepsUnmatchedClimateRows(t *testing.T) {
	rows := []aggregate.MonthlyRow{
		{Key: months.YearMonth{Year: 2030, Month: 1}, Values: map[string]float64{"T2M": 9.0}},
	}

	joined, err := aggregate.LeftJoin(rows, cases.Records())
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.False(t, joined[0].Cases.IsValid(), "year outside the case range must join with no count, not drop or fail")
}

func TestLeftJoinEveryRowExactlyOnce(t *testing.T) {
	var rows []aggregate.MonthlyRow
	for m := 1; m <= 12; m++ {
		rows = append(rows, aggregate.MonthlyRow{
			Key:    months.YearMonth{Year: 2019, Month: m},
			Values: map[string]float64{"T2M": float64(m)},
		})
	}

	joined, err := aggregate.LeftJoin(rows, cases.Records())
	require.NoError(t, err)
	require.Len(t, joined, len(rows))

	seen := make(map[months.YearMonth]bool)
	for _, j := range joined {
		assert.False(t, seen[j.Key], "key %v appeared twice", j.Key)
		seen[j.Key] = true
	}
}

func TestLeftJoinRejectsDuplicateCaseKeys(t *testing.T) {
	rows := []aggregate.MonthlyRow{
		{Key: months.YearMonth{Year: 2019, Month: 7}, Values: map[string]float64{"T2M": 30.0}},
	}
	records := []cases.Record{
		{Key: months.YearMonth{Year: 2019, Month: 7}, Count: 27},
		{Key: months.YearMonth{Year: 2019, Month: 7}, Count: 30},
	}

	_, err := aggregate.LeftJoin(rows, records)
	var dup *aggregate.DuplicateCaseError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, months.YearMonth{Year: 2019, Month: 7}, dup.Key)
}
