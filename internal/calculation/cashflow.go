package calculation

import (
	"github.com/finplan/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplyMonthlyAdjustments applies every amortized goal and event falling due
// in exactly the given (year, month) to the balance: goals subtract, events
// add. Items dated in other months are ignored; there is no partial-month
// proration.
//
// An inflation-adjusted item's stored amount is expressed in real terms. In
// nominal mode (showRealValues false) it is scaled by the accumulated
// inflation factor; in real mode it is applied as stored. Items that are not
// inflation-adjusted always use the raw stored amount.
func ApplyMonthlyAdjustments(balance decimal.Decimal, year, month int, accumulatedInflation decimal.Decimal, goals, events []domain.ProcessedItem, showRealValues bool) decimal.Decimal {
	for i := range goals {
		if goals[i].Year == year && goals[i].Month == month {
			balance = balance.Sub(effectiveAmount(&goals[i], accumulatedInflation, showRealValues))
		}
	}
	for i := range events {
		if events[i].Year == year && events[i].Month == month {
			balance = balance.Add(effectiveAmount(&events[i], accumulatedInflation, showRealValues))
		}
	}
	return balance
}

func effectiveAmount(item *domain.ProcessedItem, accumulatedInflation decimal.Decimal, showRealValues bool) decimal.Decimal {
	if item.AdjustForInflation && !showRealValues {
		return item.Amount.Mul(accumulatedInflation)
	}
	return item.Amount
}
