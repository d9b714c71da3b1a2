package domain

import (
	"github.com/finplan/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FinancialRecord is one historical monthly ledger entry, produced externally
// by statement import or manual entry and consumed read-only by the engine.
type FinancialRecord struct {
	Year                int             `json:"year"`
	Month               int             `json:"month"`
	StartingBalance     decimal.Decimal `json:"starting_balance"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	MonthlyReturn       decimal.Decimal `json:"monthly_return"`
	MonthlyReturnRate   decimal.Decimal `json:"monthly_return_rate"` // fractional, 0.01 = 1%/mo
	EndingBalance       decimal.Decimal `json:"ending_balance"`
	TargetRentability   decimal.Decimal `json:"target_rentability,omitempty"`
}

// RecordAt finds the record for an exact (year, month), or nil.
func RecordAt(records []FinancialRecord, year, month int) *FinancialRecord {
	for i := range records {
		if records[i].Year == year && records[i].Month == month {
			return &records[i]
		}
	}
	return nil
}

// LatestRecord returns the chronologically last record, or nil when the
// history is empty.
func LatestRecord(records []FinancialRecord) *FinancialRecord {
	var latest *FinancialRecord
	for i := range records {
		r := &records[i]
		if latest == nil ||
			dateutil.MonthIndex(r.Year, r.Month) > dateutil.MonthIndex(latest.Year, latest.Month) {
			latest = r
		}
	}
	return latest
}
