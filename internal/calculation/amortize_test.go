package calculation

import (
	"testing"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func link(amount string) domain.FinancialRecordLink {
	return domain.FinancialRecordLink{AllocatedAmount: money(amount)}
}

func sumAmounts(items []domain.ProcessedItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Amount)
	}
	return total
}

func TestAmortizeOneTime(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		Kind:       domain.KindGoal,
		Name:       "House deposit",
		AssetValue: money("80000"),
		Year:       2028,
		Month:      4,
		Schedule:   domain.OneTime{},
	}

	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 1)
	assert.True(t, occurrences[0].Amount.Equal(money("80000")))
	assert.Equal(t, 2028, occurrences[0].Year)
	assert.Equal(t, 4, occurrences[0].Month)
	assert.Equal(t, "House deposit", occurrences[0].Description)
	assert.True(t, occurrences[0].AdjustForInflation)
}

func TestAmortizeIsIdempotentWithoutPayments(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		AssetValue: money("120000"),
		Year:       2026,
		Month:      1,
		Schedule:   domain.Installment{Count: 12, Interval: 1},
	}

	first := Amortize(&item, ConsiderLinks)
	second := Amortize(&item, ConsiderLinks)
	assert.Equal(t, first, second)
	require.Len(t, first, 12)
	for i := range first {
		assert.True(t, first[i].Amount.Equal(money("10000")))
	}
}

func TestAmortizeInstallmentPartialPayment(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		Name:       "New car",
		AssetValue: money("120000"),
		Year:       2026,
		Month:      1,
		Schedule:   domain.Installment{Count: 12, Interval: 1},
		Links:      []domain.FinancialRecordLink{link("50000")},
	}

	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 7)

	// 50000 covers five full 10000 installments; the sixth is next due.
	assert.Equal(t, 6, occurrences[0].OccurrenceNumber)
	assert.Equal(t, 12, occurrences[0].OccurrenceTotal)
	assert.Equal(t, "New car (6/12)", occurrences[0].Description)
	assert.Equal(t, 2026, occurrences[0].Year)
	assert.Equal(t, 6, occurrences[0].Month)
	for i := range occurrences {
		assert.True(t, occurrences[i].Amount.Equal(money("10000")))
	}

	// Conservation: remaining occurrences plus payments equal the asset value.
	assert.True(t, sumAmounts(occurrences).Add(money("50000")).Equal(item.AssetValue))
}

func TestAmortizeInstallmentRemainderOnFirstOccurrence(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		AssetValue: money("120000"),
		Year:       2026,
		Month:      1,
		Schedule:   domain.Installment{Count: 12, Interval: 1},
		Links:      []domain.FinancialRecordLink{link("53000")},
	}

	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 7)

	// The 3000 overpaid into the sixth installment shrinks it to 7000.
	assert.True(t, occurrences[0].Amount.Equal(money("7000")))
	for i := 1; i < len(occurrences); i++ {
		assert.True(t, occurrences[i].Amount.Equal(money("10000")))
	}
	assert.True(t, sumAmounts(occurrences).Add(money("53000")).Equal(item.AssetValue))
}

func TestAmortizeIgnoreLinksPolicy(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		AssetValue: money("120000"),
		Year:       2026,
		Month:      1,
		Schedule:   domain.Installment{Count: 12, Interval: 1},
		Links:      []domain.FinancialRecordLink{link("50000")},
	}

	occurrences := Amortize(&item, IgnoreLinks)
	require.Len(t, occurrences, 12)
	assert.True(t, sumAmounts(occurrences).Equal(item.AssetValue))
}

func TestAmortizeFullPaymentExtinguishes(t *testing.T) {
	tests := []struct {
		name string
		item domain.ScheduledItem
	}{
		{
			name: "one-time fully paid",
			item: domain.ScheduledItem{
				ID: "g1", AssetValue: money("5000"), Year: 2026, Month: 1,
				Schedule: domain.OneTime{},
				Links:    []domain.FinancialRecordLink{link("5000")},
			},
		},
		{
			name: "installments fully paid",
			item: domain.ScheduledItem{
				ID: "g2", AssetValue: money("12000"), Year: 2026, Month: 1,
				Schedule: domain.Installment{Count: 12, Interval: 1},
				Links:    []domain.FinancialRecordLink{link("8000"), link("4000")},
			},
		},
		{
			name: "overpaid",
			item: domain.ScheduledItem{
				ID: "g3", AssetValue: money("5000"), Year: 2026, Month: 1,
				Schedule: domain.OneTime{},
				Links:    []domain.FinancialRecordLink{link("6000")},
			},
		},
		{
			name: "zero asset value",
			item: domain.ScheduledItem{
				ID: "g4", AssetValue: decimal.Zero, Year: 2026, Month: 1,
				Schedule: domain.OneTime{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Amortize(&tt.item, ConsiderLinks))
		})
	}
}

func TestAmortizeRepeatFullValueEachOccurrence(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "e1",
		Name:       "Annual bonus",
		Kind:       domain.KindEvent,
		AssetValue: money("100000"),
		Year:       2025,
		Month:      12,
		Schedule:   domain.Repeat{Count: 5, Interval: 12},
	}

	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 5)
	for i, occ := range occurrences {
		assert.True(t, occ.Amount.Equal(money("100000")))
		assert.Equal(t, 2025+i, occ.Year)
		assert.Equal(t, 12, occ.Month)
		assert.Equal(t, i+1, occ.OccurrenceNumber)
	}
	// Deliberately no conservation here: repetitions stack, they do not split.
	assert.True(t, sumAmounts(occurrences).Equal(money("500000")))
}

func TestAmortizeRepeatPaymentCounting(t *testing.T) {
	base := domain.ScheduledItem{
		ID:         "e1",
		AssetValue: money("100000"),
		Year:       2025,
		Month:      6,
		Schedule:   domain.Repeat{Count: 5, Interval: 12},
	}

	tests := []struct {
		name      string
		paid      string
		wantCount int
		wantFirst int // expected first occurrence number
	}{
		{"unpaid", "0", 5, 1},
		{"partial repetition leaves count untouched", "50000", 5, 1},
		{"one full repetition", "100000", 4, 2},
		{"two and a half repetitions", "250000", 3, 3},
		{"all repetitions", "500000", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := base
			if tt.paid != "0" {
				item.Links = []domain.FinancialRecordLink{link(tt.paid)}
			}
			occurrences := Amortize(&item, ConsiderLinks)
			require.Len(t, occurrences, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantFirst, occurrences[0].OccurrenceNumber)
			}
		})
	}
}

func TestAmortizeMonthArithmeticAcrossYearEnd(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		AssetValue: money("3000"),
		Year:       2024,
		Month:      12,
		Schedule:   domain.Installment{Count: 3, Interval: 1},
	}

	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 3)
	assert.Equal(t, 2024, occurrences[0].Year)
	assert.Equal(t, 12, occurrences[0].Month)
	assert.Equal(t, 2025, occurrences[1].Year)
	assert.Equal(t, 1, occurrences[1].Month)
	assert.Equal(t, 2025, occurrences[2].Year)
	assert.Equal(t, 2, occurrences[2].Month)
}

func TestAmortizeMultiMonthInterval(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		AssetValue: money("4000"),
		Year:       2024,
		Month:      11,
		Schedule:   domain.Installment{Count: 4, Interval: 3},
	}

	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 4)
	wantDates := [][2]int{{2024, 11}, {2025, 2}, {2025, 5}, {2025, 8}}
	for i, want := range wantDates {
		assert.Equal(t, want[0], occurrences[i].Year)
		assert.Equal(t, want[1], occurrences[i].Month)
	}
}

func TestAmortizeNegativeLinkCountsAsPayment(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		AssetValue: money("120000"),
		Year:       2026,
		Month:      1,
		Schedule:   domain.Installment{Count: 12, Interval: 1},
		Links:      []domain.FinancialRecordLink{link("-30000")},
	}

	// A withdrawal recorded against the item still covers the obligation
	// by its absolute value.
	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 9)
	assert.True(t, sumAmounts(occurrences).Equal(money("90000")))
}

func TestAmortizeZeroCountFallsBackToOneTime(t *testing.T) {
	item := domain.ScheduledItem{
		ID:         "g1",
		AssetValue: money("5000"),
		Year:       2026,
		Month:      7,
		Schedule:   domain.Installment{Count: 0},
	}

	occurrences := Amortize(&item, ConsiderLinks)
	require.Len(t, occurrences, 1)
	assert.True(t, occurrences[0].Amount.Equal(money("5000")))
	assert.Equal(t, 0, occurrences[0].OccurrenceNumber)
}

func TestAmortizeAllPreservesItemOrder(t *testing.T) {
	items := []domain.ScheduledItem{
		{ID: "a", AssetValue: money("1000"), Year: 2027, Month: 1, Schedule: domain.OneTime{}},
		{ID: "b", AssetValue: money("2000"), Year: 2025, Month: 1, Schedule: domain.Installment{Count: 2, Interval: 1}},
		{ID: "c", AssetValue: money("500"), Year: 2026, Month: 1, Schedule: domain.OneTime{}, Links: []domain.FinancialRecordLink{link("500")}},
	}

	processed := AmortizeAll(items, ConsiderLinks)
	require.Len(t, processed, 3)
	assert.Equal(t, "a", processed[0].ID)
	assert.Equal(t, "b", processed[1].ID)
	assert.Equal(t, "b", processed[2].ID)
}
