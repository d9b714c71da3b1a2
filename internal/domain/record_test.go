package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAt(t *testing.T) {
	records := []FinancialRecord{
		{Year: 2024, Month: 1, EndingBalance: decimal.NewFromInt(1000)},
		{Year: 2024, Month: 2, EndingBalance: decimal.NewFromInt(1100)},
	}

	record := RecordAt(records, 2024, 2)
	require.NotNil(t, record)
	assert.True(t, record.EndingBalance.Equal(decimal.NewFromInt(1100)))

	assert.Nil(t, RecordAt(records, 2024, 3))
	assert.Nil(t, RecordAt(nil, 2024, 1))
}

func TestLatestRecordIgnoresInputOrder(t *testing.T) {
	records := []FinancialRecord{
		{Year: 2024, Month: 6, EndingBalance: decimal.NewFromInt(3000)},
		{Year: 2023, Month: 12, EndingBalance: decimal.NewFromInt(1000)},
		{Year: 2024, Month: 2, EndingBalance: decimal.NewFromInt(2000)},
	}

	latest := LatestRecord(records)
	require.NotNil(t, latest)
	assert.Equal(t, 2024, latest.Year)
	assert.Equal(t, 6, latest.Month)

	assert.Nil(t, LatestRecord(nil))
}

func TestProjectionResultHelpers(t *testing.T) {
	empty := &ProjectionResult{}
	assert.Nil(t, empty.FinalRow())
	assert.Nil(t, empty.RowAt(2024, 1))
	assert.True(t, empty.PlannedFinalBalance().IsZero())
	assert.True(t, empty.ProjectedFinalBalance().IsZero())

	result := &ProjectionResult{
		Rows: []ProjectionRow{
			{Year: 2024, Month: 1, PlannedBalance: decimal.NewFromInt(100), ProjectedBalance: decimal.NewFromInt(150)},
			{Year: 2024, Month: 2, PlannedBalance: decimal.NewFromInt(200), ProjectedBalance: decimal.NewFromInt(250)},
		},
	}

	final := result.FinalRow()
	require.NotNil(t, final)
	assert.Equal(t, 2, final.Month)
	assert.True(t, result.PlannedFinalBalance().Equal(decimal.NewFromInt(200)))
	assert.True(t, result.ProjectedFinalBalance().Equal(decimal.NewFromInt(250)))

	row := result.RowAt(2024, 1)
	require.NotNil(t, row)
	assert.True(t, row.PlannedBalance.Equal(decimal.NewFromInt(100)))
}
