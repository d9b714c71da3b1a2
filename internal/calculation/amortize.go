package calculation

import (
	"fmt"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// LinkPolicy controls whether an item's linked partial payments are netted
// out of its remaining obligation.
type LinkPolicy int

const (
	// ConsiderLinks nets linked allocations out of the obligation. Used for
	// the projected/actual trajectory, which reflects money already moved.
	ConsiderLinks LinkPolicy = iota
	// IgnoreLinks amortizes the full value as if nothing had been paid. Used
	// for the planned/ideal trajectory.
	IgnoreLinks
)

// Amortize converts one scheduled item into its list of still-owed, dated
// obligations. A fully satisfied item amortizes to an empty list, never an
// error. Output occurrences are in chronological order.
func Amortize(item *domain.ScheduledItem, policy LinkPolicy) []domain.ProcessedItem {
	totalPaid := decimal.Zero
	if policy == ConsiderLinks {
		totalPaid = item.TotalPaid()
	}

	remaining := item.AssetValue.Sub(totalPaid)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	switch schedule := item.Schedule.(type) {
	case domain.Repeat:
		if schedule.Count > 0 {
			return amortizeRepeat(item, schedule, totalPaid)
		}
	case domain.Installment:
		if schedule.Count > 0 {
			return amortizeInstallment(item, schedule, totalPaid, remaining)
		}
	}

	// One-time payment, or a schedule without a positive count: the whole
	// remaining value falls due on the item's own month.
	return []domain.ProcessedItem{{
		ID:                 item.ID,
		Kind:               item.Kind,
		Amount:             remaining,
		Year:               item.Year,
		Month:              item.Month,
		Status:             item.Status,
		Description:        item.Name,
		AdjustForInflation: item.InflationAdjusted(),
	}}
}

// amortizeRepeat emits the remaining occurrences of a repeating item. Every
// occurrence carries the full asset value; a repetition only counts as paid
// once its full value has been covered. A partial payment below one whole
// repetition therefore leaves the occurrence count untouched even though it
// lowered the remaining amount.
func amortizeRepeat(item *domain.ScheduledItem, schedule domain.Repeat, totalPaid decimal.Decimal) []domain.ProcessedItem {
	paid := int(totalPaid.Div(item.AssetValue).Floor().IntPart())
	if paid >= schedule.Count {
		return nil
	}

	interval := schedule.IntervalOrDefault()
	occurrences := make([]domain.ProcessedItem, 0, schedule.Count-paid)
	for k := paid; k < schedule.Count; k++ {
		year, month := dateutil.AddMonths(item.Year, item.Month, k*interval)
		occurrences = append(occurrences, domain.ProcessedItem{
			ID:                 item.ID,
			Kind:               item.Kind,
			Amount:             item.AssetValue,
			Year:               year,
			Month:              month,
			Status:             item.Status,
			Description:        occurrenceDescription(item.Name, k+1, schedule.Count),
			OccurrenceNumber:   k + 1,
			OccurrenceTotal:    schedule.Count,
			AdjustForInflation: item.InflationAdjusted(),
		})
	}
	return occurrences
}

// amortizeInstallment emits the remaining occurrences of an evenly divided
// item. The first remaining occurrence absorbs any partial-payment remainder
// so the occurrence amounts always reconcile with the remaining total.
func amortizeInstallment(item *domain.ScheduledItem, schedule domain.Installment, totalPaid, remaining decimal.Decimal) []domain.ProcessedItem {
	installmentValue := item.AssetValue.Div(decimal.NewFromInt(int64(schedule.Count)))
	paid := int(totalPaid.Div(installmentValue).Floor().IntPart())
	remainingCount := schedule.Count - paid
	if remainingCount <= 0 {
		return nil
	}

	firstAmount := remaining.Sub(installmentValue.Mul(decimal.NewFromInt(int64(remainingCount - 1))))

	interval := schedule.IntervalOrDefault()
	occurrences := make([]domain.ProcessedItem, 0, remainingCount)
	for k := paid; k < schedule.Count; k++ {
		amount := installmentValue
		if k == paid {
			amount = firstAmount
		}
		year, month := dateutil.AddMonths(item.Year, item.Month, k*interval)
		occurrences = append(occurrences, domain.ProcessedItem{
			ID:                 item.ID,
			Kind:               item.Kind,
			Amount:             amount,
			Year:               year,
			Month:              month,
			Status:             item.Status,
			Description:        occurrenceDescription(item.Name, k+1, schedule.Count),
			OccurrenceNumber:   k + 1,
			OccurrenceTotal:    schedule.Count,
			AdjustForInflation: item.InflationAdjusted(),
		})
	}
	return occurrences
}

// AmortizeAll flat-maps Amortize over a list of scheduled items. Output
// follows input order, each item's occurrences in chronological order.
func AmortizeAll(items []domain.ScheduledItem, policy LinkPolicy) []domain.ProcessedItem {
	var processed []domain.ProcessedItem
	for i := range items {
		processed = append(processed, Amortize(&items[i], policy)...)
	}
	return processed
}

func occurrenceDescription(name string, number, total int) string {
	return fmt.Sprintf("%s (%d/%d)", name, number, total)
}
