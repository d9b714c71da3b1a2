package calculation

import (
	"testing"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyMonthlyAdjustmentsInflationToggle(t *testing.T) {
	balance := decimal.NewFromInt(100000)
	accInflation := decimal.RequireFromString("1.1")
	goals := []domain.ProcessedItem{
		{ID: "g1", Kind: domain.KindGoal, Amount: decimal.NewFromInt(10000), Year: 2030, Month: 6, AdjustForInflation: true},
	}

	// Nominal mode scales the stored real amount by accumulated inflation.
	nominal := ApplyMonthlyAdjustments(balance, 2030, 6, accInflation, goals, nil, false)
	assert.True(t, nominal.Equal(decimal.NewFromInt(89000)))

	// Real mode applies the stored amount as-is.
	realTerms := ApplyMonthlyAdjustments(balance, 2030, 6, accInflation, goals, nil, true)
	assert.True(t, realTerms.Equal(decimal.NewFromInt(90000)))
}

func TestApplyMonthlyAdjustmentsNonAdjustedItemIgnoresInflation(t *testing.T) {
	balance := decimal.NewFromInt(100000)
	accInflation := decimal.RequireFromString("1.5")
	events := []domain.ProcessedItem{
		{ID: "e1", Kind: domain.KindEvent, Amount: decimal.NewFromInt(5000), Year: 2030, Month: 6, AdjustForInflation: false},
	}

	got := ApplyMonthlyAdjustments(balance, 2030, 6, accInflation, nil, events, false)
	assert.True(t, got.Equal(decimal.NewFromInt(105000)))
}

func TestApplyMonthlyAdjustmentsMonthIsolation(t *testing.T) {
	balance := decimal.NewFromInt(100000)
	goals := []domain.ProcessedItem{
		{ID: "g1", Amount: decimal.NewFromInt(10000), Year: 2030, Month: 5},
		{ID: "g2", Amount: decimal.NewFromInt(20000), Year: 2031, Month: 6},
	}

	// Neither goal falls in 2030-06; the balance is untouched.
	got := ApplyMonthlyAdjustments(balance, 2030, 6, decimal.NewFromInt(1), goals, nil, false)
	assert.True(t, got.Equal(balance))
}

func TestApplyMonthlyAdjustmentsGoalsSubtractEventsAdd(t *testing.T) {
	balance := decimal.NewFromInt(50000)
	goals := []domain.ProcessedItem{
		{ID: "g1", Amount: decimal.NewFromInt(8000), Year: 2027, Month: 3},
		{ID: "g2", Amount: decimal.NewFromInt(2000), Year: 2027, Month: 3},
	}
	events := []domain.ProcessedItem{
		{ID: "e1", Amount: decimal.NewFromInt(15000), Year: 2027, Month: 3},
	}

	got := ApplyMonthlyAdjustments(balance, 2027, 3, decimal.NewFromInt(1), goals, events, false)
	assert.True(t, got.Equal(decimal.NewFromInt(55000)))
}

func TestApplyMonthlyAdjustmentsCanGoNegative(t *testing.T) {
	balance := decimal.NewFromInt(1000)
	goals := []domain.ProcessedItem{
		{ID: "g1", Amount: decimal.NewFromInt(5000), Year: 2027, Month: 3},
	}

	// Overdraw is preserved, not clamped; the plan is simply underfunded.
	got := ApplyMonthlyAdjustments(balance, 2027, 3, decimal.NewFromInt(1), goals, nil, false)
	assert.True(t, got.Equal(decimal.NewFromInt(-4000)))
}
