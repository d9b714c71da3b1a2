package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInflationAdjustedDefaultsToTrue(t *testing.T) {
	item := ScheduledItem{}
	assert.True(t, item.InflationAdjusted())

	yes, no := true, false
	item.AdjustForInflation = &yes
	assert.True(t, item.InflationAdjusted())
	item.AdjustForInflation = &no
	assert.False(t, item.InflationAdjusted())
}

func TestTotalPaidSumsAbsoluteValues(t *testing.T) {
	item := ScheduledItem{
		Links: []FinancialRecordLink{
			{AllocatedAmount: decimal.NewFromInt(300)},
			{AllocatedAmount: decimal.NewFromInt(-200)},
		},
	}
	assert.True(t, item.TotalPaid().Equal(decimal.NewFromInt(500)))

	assert.True(t, (&ScheduledItem{}).TotalPaid().IsZero())
}

func TestIntervalOrDefault(t *testing.T) {
	assert.Equal(t, 1, Installment{Count: 3}.IntervalOrDefault())
	assert.Equal(t, 6, Installment{Count: 3, Interval: 6}.IntervalOrDefault())
	assert.Equal(t, 1, Repeat{Count: 3, Interval: -2}.IntervalOrDefault())
	assert.Equal(t, 12, Repeat{Count: 3, Interval: 12}.IntervalOrDefault())
}
