package calculation

import (
	"math"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// YearlyToMonthlyRate converts an annual compounding rate to its monthly
// equivalent: (1+annual)^(1/12) - 1. Rates are fractional decimals throughout
// this package (0.10 means 10% per year).
//
// The fractional power runs through float64, then switches back to decimal
// for the monetary arithmetic downstream.
func YearlyToMonthlyRate(annual decimal.Decimal) decimal.Decimal {
	base := 1 + annual.InexactFloat64()
	if base <= 0 {
		// Total loss or worse. There is no meaningful monthly equivalent.
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(math.Pow(base, 1.0/12.0) - 1)
}

// CompoundRates folds a sequence of periodic rates into the single rate of
// the whole span: the product of (1+r) over the sequence, minus 1. An empty
// sequence compounds to 0. The sequence must represent chronologically
// sequential periods for the result to be meaningful.
func CompoundRates(rates []decimal.Decimal) decimal.Decimal {
	factor := one
	for _, r := range rates {
		factor = factor.Mul(one.Add(r))
	}
	return factor.Sub(one)
}

// growthFactor returns (1+rate)^periods for a non-negative integer period
// count.
func growthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return one
	}
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

// AnnuityPayment solves the standard annuity equation for the level payment
// per period that grows presentValue into futureValue over the given number
// of periods at the given per-period rate:
//
//	pmt = (fv - pv*(1+r)^n) * r / ((1+r)^n - 1)
//
// A zero rate degenerates to an even split; zero or negative periods yield
// zero rather than an error.
func AnnuityPayment(rate decimal.Decimal, periods int, presentValue, futureValue decimal.Decimal) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return futureValue.Sub(presentValue).Div(decimal.NewFromInt(int64(periods)))
	}

	factor := growthFactor(rate, periods)
	return futureValue.Sub(presentValue.Mul(factor)).Mul(rate).Div(factor.Sub(one))
}

// AnnuityFutureValue compounds a present value and a level per-period payment
// forward over the given number of periods.
func AnnuityFutureValue(rate decimal.Decimal, periods int, presentValue, payment decimal.Decimal) decimal.Decimal {
	if periods <= 0 {
		return presentValue
	}
	factor := growthFactor(rate, periods)
	if rate.IsZero() {
		return presentValue.Add(payment.Mul(decimal.NewFromInt(int64(periods))))
	}
	return presentValue.Mul(factor).Add(payment.Mul(factor.Sub(one)).Div(rate))
}

// AnnuityPresentValue discounts a level per-period payment stream back to a
// single present amount: pmt * (1 - (1+r)^-n) / r.
func AnnuityPresentValue(rate decimal.Decimal, periods int, payment decimal.Decimal) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(periods)))
	}
	factor := growthFactor(rate, periods)
	return payment.Mul(one.Sub(one.Div(factor))).Div(rate)
}

// RequiredFutureValue computes the balance a plan must hold when the
// accumulation phase ends so that the desired monthly income is sustainable
// under the plan type: forever off returns (preserve), down to zero by the
// limit age (deplete), or down to a legacy amount (legacy). payoutMonths is
// the span between the retirement date and the limit-age date.
func RequiredFutureValue(planType domain.PlanType, monthlyIncome, monthlyRate decimal.Decimal, payoutMonths int, legacyAmount decimal.Decimal) decimal.Decimal {
	switch planType {
	case domain.PlanTypePreserve:
		if monthlyRate.IsPositive() {
			return monthlyIncome.Div(monthlyRate)
		}
		// Without returns, principal preservation cannot fund an income;
		// fall back to funding the payout span outright.
		return AnnuityPresentValue(monthlyRate, payoutMonths, monthlyIncome)
	case domain.PlanTypeLegacy:
		legacy := legacyAmount.Div(growthFactor(monthlyRate, payoutMonths))
		return AnnuityPresentValue(monthlyRate, payoutMonths, monthlyIncome).Add(legacy)
	default: // deplete
		return AnnuityPresentValue(monthlyRate, payoutMonths, monthlyIncome)
	}
}

// SustainableMonthlyIncome inverts RequiredFutureValue: the level monthly
// income a given balance supports under the plan type. Never negative.
func SustainableMonthlyIncome(planType domain.PlanType, balance, monthlyRate decimal.Decimal, payoutMonths int, legacyAmount decimal.Decimal) decimal.Decimal {
	var income decimal.Decimal

	switch planType {
	case domain.PlanTypePreserve:
		income = balance.Mul(monthlyRate)
	case domain.PlanTypeLegacy:
		spendable := balance.Sub(legacyAmount.Div(growthFactor(monthlyRate, payoutMonths)))
		income = annuityDrawdown(spendable, monthlyRate, payoutMonths)
	default: // deplete
		income = annuityDrawdown(balance, monthlyRate, payoutMonths)
	}

	if income.IsNegative() {
		return decimal.Zero
	}
	return income
}

// annuityDrawdown is the payment that exhausts a balance over n periods.
func annuityDrawdown(balance, rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return balance.Div(decimal.NewFromInt(int64(periods)))
	}
	factor := growthFactor(rate, periods)
	return balance.Mul(rate).Div(one.Sub(one.Div(factor)))
}
