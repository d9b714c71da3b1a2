package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func effective(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func TestPlanTypeValid(t *testing.T) {
	assert.True(t, PlanTypeDeplete.Valid())
	assert.True(t, PlanTypeLegacy.Valid())
	assert.True(t, PlanTypePreserve.Valid())
	assert.False(t, PlanType("").Valid())
	assert.False(t, PlanType("aggressive").Valid())
}

func TestLimitAgeOrDefault(t *testing.T) {
	plan := InvestmentPlan{}
	assert.Equal(t, DefaultLimitAge, plan.LimitAgeOrDefault())

	plan.LimitAge = 90
	assert.Equal(t, 90, plan.LimitAgeOrDefault())

	plan.LimitAge = -1
	assert.Equal(t, DefaultLimitAge, plan.LimitAgeOrDefault())
}

func TestActiveMicroPlan(t *testing.T) {
	plans := []MicroInvestmentPlan{
		{EffectiveDate: effective(2024, 1), MonthlyDeposit: decimal.NewFromInt(100)},
		{EffectiveDate: effective(2024, 6), MonthlyDeposit: decimal.NewFromInt(200)},
		{EffectiveDate: effective(2025, 1), MonthlyDeposit: decimal.NewFromInt(300)},
	}

	tests := []struct {
		name        string
		year, month int
		wantDeposit int64
	}{
		{"before any effective date falls back to the earliest", 2023, 6, 100},
		{"first plan active", 2024, 3, 100},
		{"switch month itself", 2024, 6, 200},
		{"between switches", 2024, 9, 200},
		{"latest plan active", 2025, 7, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := ActiveMicroPlan(plans, tt.year, tt.month)
			require.NotNil(t, active)
			assert.True(t, active.MonthlyDeposit.Equal(decimal.NewFromInt(tt.wantDeposit)))
		})
	}
}

func TestActiveMicroPlanEmpty(t *testing.T) {
	assert.Nil(t, ActiveMicroPlan(nil, 2024, 1))
}

func TestActiveMicroPlanMidMonthEffectiveDate(t *testing.T) {
	// An effective date anywhere inside a month makes the plan active for
	// that whole month.
	plans := []MicroInvestmentPlan{
		{EffectiveDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), MonthlyDeposit: decimal.NewFromInt(500)},
	}
	active := ActiveMicroPlan(plans, 2024, 3)
	require.NotNil(t, active)
	assert.True(t, active.MonthlyDeposit.Equal(decimal.NewFromInt(500)))
}
