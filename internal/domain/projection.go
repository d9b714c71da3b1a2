package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessedItem is one dated, still-owed obligation derived from a scheduled
// item by the amortizer. It is never persisted; every projection run derives
// the set again from the source items.
type ProcessedItem struct {
	ID                 string          `json:"id"`
	Kind               ItemKind        `json:"kind"`
	Amount             decimal.Decimal `json:"amount"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	Status             string          `json:"status,omitempty"`
	Description        string          `json:"description"`
	OccurrenceNumber   int             `json:"occurrence_number,omitempty"` // 1-indexed, 0 for one-time items
	OccurrenceTotal    int             `json:"occurrence_total,omitempty"`
	AdjustForInflation bool            `json:"adjust_for_inflation"`
}

// ProjectionRow is the engine's output for a single projected month. Both
// trajectories share the row: the planned balance ignores partial payments
// and actual history, the projected balance reflects them.
type ProjectionRow struct {
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	PlannedBalance       decimal.Decimal `json:"planned_balance"`
	ProjectedBalance     decimal.Decimal `json:"projected_balance"`
	Contribution         decimal.Decimal `json:"contribution"`
	Withdrawal           decimal.Decimal `json:"withdrawal"`
	AccumulatedInflation decimal.Decimal `json:"accumulated_inflation"` // factor, 1.0 at plan start
	FromRecord           bool            `json:"from_record"`           // projected balance taken from an actual record
	Retired              bool            `json:"retired"`
}

// ProjectionResult is the full month-by-month output of one projection run.
type ProjectionResult struct {
	Rows       []ProjectionRow `json:"rows"`
	StartYear  int             `json:"start_year"`
	StartMonth int             `json:"start_month"`
	EndYear    int             `json:"end_year"`
	EndMonth   int             `json:"end_month"`
	Currency   string          `json:"currency"`
}

// FinalRow returns the last projected month, or nil for an empty projection.
func (pr *ProjectionResult) FinalRow() *ProjectionRow {
	if len(pr.Rows) == 0 {
		return nil
	}
	return &pr.Rows[len(pr.Rows)-1]
}

// RowAt finds the row for an exact (year, month), or nil.
func (pr *ProjectionResult) RowAt(year, month int) *ProjectionRow {
	for i := range pr.Rows {
		if pr.Rows[i].Year == year && pr.Rows[i].Month == month {
			return &pr.Rows[i]
		}
	}
	return nil
}

// PlannedFinalBalance returns the planned balance of the last row.
func (pr *ProjectionResult) PlannedFinalBalance() decimal.Decimal {
	if row := pr.FinalRow(); row != nil {
		return row.PlannedBalance
	}
	return decimal.Zero
}

// ProjectedFinalBalance returns the projected balance of the last row.
func (pr *ProjectionResult) ProjectedFinalBalance() decimal.Decimal {
	if row := pr.FinalRow(); row != nil {
		return row.ProjectedBalance
	}
	return decimal.Zero
}

// RetirementAge expresses a retirement point in age terms.
type RetirementAge struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// ProgressSummary compares the planned trajectory against the projected one.
type ProgressSummary struct {
	PlannedMonthsToRetirement   int             `json:"planned_months_to_retirement"`
	ProjectedMonthsToRetirement int             `json:"projected_months_to_retirement"`
	PlannedRetirementDate       time.Time       `json:"planned_retirement_date"`
	ProjectedRetirementDate     time.Time       `json:"projected_retirement_date"`
	PlannedRetirementAge        RetirementAge   `json:"planned_retirement_age"`
	ProjectedRetirementAge      RetirementAge   `json:"projected_retirement_age"`
	CurrentProgress             decimal.Decimal `json:"current_progress"` // percent of projected future value already held
	IsAheadOfSchedule           bool            `json:"is_ahead_of_schedule"`
	ScheduleDeltaMonths         int             `json:"schedule_delta_months"` // positive when ahead
	ScheduleDeltaAmount         decimal.Decimal `json:"schedule_delta_amount"` // currency gap at the planned retirement date
	PlannedContribution         decimal.Decimal `json:"planned_contribution"`
	RequiredContribution        decimal.Decimal `json:"required_contribution"`
	PlannedMonthlyIncome        decimal.Decimal `json:"planned_monthly_income"`
	ProjectedMonthlyIncome      decimal.Decimal `json:"projected_monthly_income"`
	PlannedFutureValue          decimal.Decimal `json:"planned_future_value"`
	ProjectedFutureValue        decimal.Decimal `json:"projected_future_value"`
}
