package domain

import (
	"github.com/shopspring/decimal"
)

// ItemKind distinguishes goals (outflows) from projected events (inflows).
type ItemKind string

const (
	KindGoal  ItemKind = "goal"
	KindEvent ItemKind = "event"
)

// PaymentSchedule describes when a scheduled item's value falls due. It is a
// closed set of three variants: OneTime, Installment and Repeat. Each variant
// carries only the fields relevant to it.
type PaymentSchedule interface {
	paymentSchedule()
}

// OneTime is the default schedule: the full value falls due on the item's
// target month.
type OneTime struct{}

func (OneTime) paymentSchedule() {}

// Installment divides the item's value evenly across Count occurrences spaced
// Interval months apart.
type Installment struct {
	Count    int `json:"count"`
	Interval int `json:"interval,omitempty"`
}

func (Installment) paymentSchedule() {}

// IntervalOrDefault returns the months between occurrences, defaulting to 1.
func (i Installment) IntervalOrDefault() int {
	if i.Interval <= 0 {
		return 1
	}
	return i.Interval
}

// Repeat schedules the item's full value Count times, spaced Interval months
// apart. Unlike Installment the value is not divided.
type Repeat struct {
	Count    int `json:"count"`
	Interval int `json:"interval,omitempty"`
}

func (Repeat) paymentSchedule() {}

// IntervalOrDefault returns the months between occurrences, defaulting to 1.
func (r Repeat) IntervalOrDefault() int {
	if r.Interval <= 0 {
		return 1
	}
	return r.Interval
}

// FinancialRecordLink is an allocation of already-moved money toward one
// scheduled item. The stored amount may carry either sign; only its absolute
// value is meaningful.
type FinancialRecordLink struct {
	ItemID          string          `json:"item_id"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
}

// ScheduledItem is a goal or projected event: a target amount due at a target
// (year, month), optionally spread across installments or repetitions, with
// partial payments tracked through financial record links.
type ScheduledItem struct {
	ID                 string                `json:"id"`
	Kind               ItemKind              `json:"kind"`
	Name               string                `json:"name"`
	AssetValue         decimal.Decimal       `json:"asset_value"`
	Year               int                   `json:"year"`
	Month              int                   `json:"month"`
	Schedule           PaymentSchedule       `json:"-"`
	Status             string                `json:"status,omitempty"`
	AdjustForInflation *bool                 `json:"adjust_for_inflation,omitempty"`
	Links              []FinancialRecordLink `json:"links,omitempty"`
}

// InflationAdjusted reports whether the item's amounts track inflation. An
// absent flag means true; it is never defaulted to false.
func (s *ScheduledItem) InflationAdjusted() bool {
	return s.AdjustForInflation == nil || *s.AdjustForInflation
}

// TotalPaid sums the absolute values of all linked allocations.
func (s *ScheduledItem) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, link := range s.Links {
		total = total.Add(link.AllocatedAmount.Abs())
	}
	return total
}
