package calculation

import (
	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// GenerateMonthlyProjection walks month-by-month from the plan's start date
// to the selected horizon and produces both balance trajectories:
//
//   - planned: the idealized schedule, amortized ignoring partial payments
//     and never overridden by actual history
//   - projected: the actual trajectory, netting linked payments out of the
//     scheduled items and snapping to a financial record's ending balance
//     for any month one exists
//
// Each month the opening balance grows by the active micro-plan's monthly
// return, the contribution (or, past the accumulation end, the desired
// income withdrawal) is applied, and the month's goal/event adjustments are
// applied last. Contributions and withdrawals are escalated by inflation
// accumulated since their micro-plan's effective date when the micro-plan
// flags them as inflation-adjusted.
//
// Missing or degenerate input degrades softly: a nil plan yields nil, a
// horizon before the start date yields a result with no rows.
func (e *Engine) GenerateMonthlyProjection(input ProjectionInput, opts ProjectionOptions) *domain.ProjectionResult {
	plan := input.Plan
	if plan == nil {
		e.Logger.Warnf("projection requested without an investment plan")
		return nil
	}

	startYear, startMonth := plan.StartDate.Year(), int(plan.StartDate.Month())
	endYear, endMonth := e.horizonEnd(input, opts.Through)

	totalMonths := dateutil.MonthsBetween(startYear, startMonth, endYear, endMonth)
	result := &domain.ProjectionResult{
		StartYear:  startYear,
		StartMonth: startMonth,
		EndYear:    endYear,
		EndMonth:   endMonth,
		Currency:   plan.Currency,
	}
	if totalMonths < 0 {
		e.Logger.Warnf("projection horizon %04d-%02d precedes plan start %04d-%02d", endYear, endMonth, startYear, startMonth)
		return result
	}

	plannedGoals := AmortizeAll(input.Goals, IgnoreLinks)
	plannedEvents := AmortizeAll(input.Events, IgnoreLinks)
	actualGoals := AmortizeAll(input.Goals, ConsiderLinks)
	actualEvents := AmortizeAll(input.Events, ConsiderLinks)

	retirementIndex := dateutil.MonthIndex(plan.RetirementDate.Year(), int(plan.RetirementDate.Month()))

	planned := plan.InitialAmount
	projected := plan.InitialAmount
	accInflation := one
	// Accumulated inflation factor at each micro-plan's activation, so
	// escalation runs from the micro-plan's own effective date.
	baseInflation := make(map[*domain.MicroInvestmentPlan]decimal.Decimal)

	result.Rows = make([]domain.ProjectionRow, 0, totalMonths+1)
	year, month := startYear, startMonth

	for i := 0; i <= totalMonths; i++ {
		micro := domain.ActiveMicroPlan(input.MicroPlans, year, month)

		monthlyReturn := decimal.Zero
		contribution := decimal.Zero
		withdrawal := decimal.Zero
		retired := dateutil.MonthIndex(year, month) > retirementIndex

		if micro != nil {
			if _, seen := baseInflation[micro]; !seen {
				baseInflation[micro] = accInflation
			}
			escalation := accInflation.Div(baseInflation[micro])

			monthlyReturn = YearlyToMonthlyRate(micro.ExpectedAnnualReturn)
			if retired {
				withdrawal = micro.DesiredMonthlyIncome
				if micro.AdjustIncome {
					withdrawal = withdrawal.Mul(escalation)
				}
			} else {
				contribution = micro.MonthlyDeposit
				if micro.AdjustDeposit {
					contribution = contribution.Mul(escalation)
				}
			}
		}

		growth := one.Add(monthlyReturn)
		net := contribution.Sub(withdrawal)

		planned = planned.Mul(growth).Add(net)
		planned = ApplyMonthlyAdjustments(planned, year, month, accInflation, plannedGoals, plannedEvents, opts.ShowRealValues)

		projected = projected.Mul(growth).Add(net)
		projected = ApplyMonthlyAdjustments(projected, year, month, accInflation, actualGoals, actualEvents, opts.ShowRealValues)

		fromRecord := false
		if record := domain.RecordAt(input.Records, year, month); record != nil {
			// Ground truth: the statement's ending balance replaces the
			// computed value and seeds the following month.
			projected = record.EndingBalance
			fromRecord = true
		}

		result.Rows = append(result.Rows, domain.ProjectionRow{
			Year:                 year,
			Month:                month,
			PlannedBalance:       planned,
			ProjectedBalance:     projected,
			Contribution:         contribution,
			Withdrawal:           withdrawal,
			AccumulatedInflation: accInflation,
			FromRecord:           fromRecord,
			Retired:              retired,
		})

		if e.Debug {
			e.Logger.Debugf("%04d-%02d planned=%s projected=%s inflation=%s",
				year, month, planned.StringFixed(2), projected.StringFixed(2), accInflation.StringFixed(6))
		}

		accInflation = accInflation.Mul(one.Add(e.monthlyInflation(micro, year, month)))
		year, month = dateutil.AddMonths(year, month, 1)
	}

	return result
}

// horizonEnd resolves the projection's terminal (year, month). The limit-age
// horizon needs a birth date; without one it degrades to the retirement date.
func (e *Engine) horizonEnd(input ProjectionInput, through Horizon) (int, int) {
	plan := input.Plan
	if through == HorizonLimitAge {
		if input.BirthDate.IsZero() {
			e.Logger.Warnf("limit-age horizon requested without a birth date; stopping at the retirement date")
		} else {
			limit := dateutil.DateAtAge(input.BirthDate, plan.LimitAgeOrDefault())
			return limit.Year(), int(limit.Month())
		}
	}
	return plan.RetirementDate.Year(), int(plan.RetirementDate.Month())
}

// monthlyInflation picks the observed series rate for a month when the engine
// carries one, otherwise the active micro-plan's assumed annual inflation
// converted to monthly. No micro-plan means no inflation.
func (e *Engine) monthlyInflation(micro *domain.MicroInvestmentPlan, year, month int) decimal.Decimal {
	if e.Inflation != nil {
		if rate, ok := e.Inflation.Rate(year, month); ok {
			return rate
		}
	}
	if micro == nil {
		return decimal.Zero
	}
	return YearlyToMonthlyRate(micro.AnnualInflation)
}
