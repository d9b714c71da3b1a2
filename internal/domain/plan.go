package domain

import (
	"time"

	"github.com/finplan/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DefaultLimitAge is the hard planning horizon used when a plan does not set
// its own limit age.
const DefaultLimitAge = 100

// PlanType identifies how the accumulated balance is meant to be consumed
// after the accumulation phase ends.
type PlanType string

const (
	// PlanTypeDeplete spends the balance down to zero by the limit age.
	PlanTypeDeplete PlanType = "deplete"
	// PlanTypeLegacy spends the balance down to a target legacy amount.
	PlanTypeLegacy PlanType = "legacy"
	// PlanTypePreserve lives off returns and never touches the principal.
	PlanTypePreserve PlanType = "preserve"
)

// Valid reports whether the plan type is one of the three known variants.
func (pt PlanType) Valid() bool {
	return pt == PlanTypeDeplete || pt == PlanTypeLegacy || pt == PlanTypePreserve
}

// InvestmentPlan holds the immutable parameters of a client's plan. It is
// created once by the plan owner and read-only to the projection engine.
type InvestmentPlan struct {
	InitialAmount      decimal.Decimal  `json:"initial_amount"`
	StartDate          time.Time        `json:"start_date"`
	RetirementDate     time.Time        `json:"retirement_date"` // end of the accumulation phase
	FinalAge           int              `json:"final_age"`
	LimitAge           int              `json:"limit_age,omitempty"` // 0 means DefaultLimitAge
	Type               PlanType         `json:"plan_type"`
	Currency           string           `json:"currency"`
	AdjustContribution bool             `json:"adjust_contribution_for_inflation"`
	AdjustIncome       bool             `json:"adjust_income_for_inflation"`
	LegacyAmount       decimal.Decimal  `json:"legacy_amount,omitempty"`
	OldPortfolioReturn *decimal.Decimal `json:"old_portfolio_return,omitempty"`
}

// LimitAgeOrDefault returns the plan's limit age, falling back to
// DefaultLimitAge when unset.
func (p *InvestmentPlan) LimitAgeOrDefault() int {
	if p.LimitAge <= 0 {
		return DefaultLimitAge
	}
	return p.LimitAge
}

// MicroInvestmentPlan is a dated version of the plan's operating parameters.
// Multiple micro-plans may exist per InvestmentPlan; the one with the latest
// effective date at or before a given month is active for that month.
type MicroInvestmentPlan struct {
	EffectiveDate        time.Time       `json:"effective_date"`
	MonthlyDeposit       decimal.Decimal `json:"monthly_deposit"`
	DesiredMonthlyIncome decimal.Decimal `json:"desired_monthly_income"`
	ExpectedAnnualReturn decimal.Decimal `json:"expected_annual_return"` // fractional, 0.10 = 10%/yr
	AnnualInflation      decimal.Decimal `json:"annual_inflation"`       // fractional, 0.04 = 4%/yr
	AdjustDeposit        bool            `json:"adjust_deposit_for_inflation"`
	AdjustIncome         bool            `json:"adjust_income_for_inflation"`
}

// ActiveMicroPlan selects the micro-plan in effect for a given (year, month):
// the latest effective date at or before the target month. When every
// micro-plan starts after the target month the earliest-dated one is used as
// a retroactive fallback, so a plan with at least one micro-plan always has
// exactly one active micro-plan per month.
func ActiveMicroPlan(plans []MicroInvestmentPlan, year, month int) *MicroInvestmentPlan {
	if len(plans) == 0 {
		return nil
	}

	target := dateutil.MonthIndex(year, month)
	var active *MicroInvestmentPlan
	earliest := &plans[0]

	for i := range plans {
		mp := &plans[i]
		if mp.EffectiveDate.Before(earliest.EffectiveDate) {
			earliest = mp
		}

		idx := dateutil.MonthIndex(mp.EffectiveDate.Year(), int(mp.EffectiveDate.Month()))
		if idx > target {
			continue
		}
		if active == nil || mp.EffectiveDate.After(active.EffectiveDate) {
			active = mp
		}
	}

	if active == nil {
		return earliest
	}
	return active
}
