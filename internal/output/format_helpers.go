package output

import (
	"fmt"

	moneypkg "github.com/finplan/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency with 2 decimals. The Money
// wrapper owns the display rounding rule, so totals shown here match the
// calculation engine's rounding.
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	return moneypkg.NewMoneyFromDecimal(amount).Format(symbol)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.RoundBank(2).StringFixed(2) + "%"
}

// FormatMonth renders a year and month as YYYY-MM.
func FormatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FormatDelta renders a signed month count as "N months ahead/behind".
func FormatDelta(months int) string {
	switch {
	case months > 0:
		return fmt.Sprintf("%d months ahead", months)
	case months < 0:
		return fmt.Sprintf("%d months behind", -months)
	default:
		return "on schedule"
	}
}
