package calculation

import (
	"time"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ProgressInput is a ProjectionInput plus the reference "today". The caller
// injects the reference date explicitly; the engine never consults the system
// clock.
type ProgressInput struct {
	ProjectionInput
	ReferenceDate time.Time
}

// ComputeProgress compares the planned trajectory against the projected one
// and summarizes how the client is tracking: months to retirement on each
// trajectory, the ahead/behind delta in months and currency, progress toward
// the projected future value, and stated-versus-required contribution and
// income.
//
// Progress is an age-based metric, so a missing plan or birth date returns
// nil rather than an error: both are expected "not yet configured" states.
func (e *Engine) ComputeProgress(input ProgressInput) *domain.ProgressSummary {
	plan := input.Plan
	if plan == nil || input.BirthDate.IsZero() {
		e.Logger.Debugf("progress requested without a plan or birth date; nothing to compute")
		return nil
	}

	projection := e.GenerateMonthlyProjection(input.ProjectionInput, ProjectionOptions{Through: HorizonLimitAge})
	if projection == nil || len(projection.Rows) == 0 {
		return nil
	}

	ref := input.ReferenceDate
	micro := domain.ActiveMicroPlan(input.MicroPlans, ref.Year(), int(ref.Month()))

	monthlyRate := decimal.Zero
	plannedContribution := decimal.Zero
	plannedIncome := decimal.Zero
	if micro != nil {
		monthlyRate = YearlyToMonthlyRate(micro.ExpectedAnnualReturn)
		plannedContribution = micro.MonthlyDeposit
		plannedIncome = micro.DesiredMonthlyIncome
	}

	plannedRetirement := plan.RetirementDate
	limitDate := dateutil.DateAtAge(input.BirthDate, plan.LimitAgeOrDefault())
	payoutMonths := dateutil.MonthsBetweenDates(plannedRetirement, limitDate)
	if payoutMonths < 0 {
		payoutMonths = 0
	}

	requiredFV := RequiredFutureValue(plan.Type, plannedIncome, monthlyRate, payoutMonths, plan.LegacyAmount)

	plannedFV, projectedFV := balancesAt(projection, plannedRetirement)

	projectedRetirement, reached := firstMonthReaching(projection, requiredFV)
	if !reached {
		projectedRetirement = limitDate
	}

	plannedMonths := dateutil.MonthsBetweenDates(ref, plannedRetirement)
	projectedMonths := dateutil.MonthsBetweenDates(ref, projectedRetirement)
	deltaMonths := plannedMonths - projectedMonths

	currentBalance := plan.InitialAmount
	if latest := domain.LatestRecord(input.Records); latest != nil {
		currentBalance = latest.EndingBalance
	}

	currentProgress := decimal.Zero
	if projectedFV.IsPositive() {
		currentProgress = currentBalance.Div(projectedFV).Mul(decimal.NewFromInt(100))
	}

	requiredContribution := decimal.Zero
	if plannedMonths > 0 {
		requiredContribution = AnnuityPayment(monthlyRate, plannedMonths, currentBalance, requiredFV)
		if requiredContribution.IsNegative() {
			requiredContribution = decimal.Zero
		}
	}

	return &domain.ProgressSummary{
		PlannedMonthsToRetirement:   plannedMonths,
		ProjectedMonthsToRetirement: projectedMonths,
		PlannedRetirementDate:       plannedRetirement,
		ProjectedRetirementDate:     projectedRetirement,
		PlannedRetirementAge:        ageAt(input.BirthDate, plannedRetirement),
		ProjectedRetirementAge:      ageAt(input.BirthDate, projectedRetirement),
		CurrentProgress:             currentProgress,
		IsAheadOfSchedule:           reached && deltaMonths >= 0,
		ScheduleDeltaMonths:         deltaMonths,
		ScheduleDeltaAmount:         projectedFV.Sub(plannedFV),
		PlannedContribution:         plannedContribution,
		RequiredContribution:        requiredContribution,
		PlannedMonthlyIncome:        plannedIncome,
		ProjectedMonthlyIncome:      SustainableMonthlyIncome(plan.Type, projectedFV, monthlyRate, payoutMonths, plan.LegacyAmount),
		PlannedFutureValue:          plannedFV,
		ProjectedFutureValue:        projectedFV,
	}
}

// balancesAt returns both trajectories' balances in the month a date falls
// in, falling back to the final row when the date is past the horizon.
func balancesAt(projection *domain.ProjectionResult, date time.Time) (decimal.Decimal, decimal.Decimal) {
	row := projection.RowAt(date.Year(), int(date.Month()))
	if row == nil {
		row = projection.FinalRow()
	}
	return row.PlannedBalance, row.ProjectedBalance
}

// firstMonthReaching scans for the first month whose projected balance meets
// the target. The second return value is false when no month qualifies.
func firstMonthReaching(projection *domain.ProjectionResult, target decimal.Decimal) (time.Time, bool) {
	for i := range projection.Rows {
		row := &projection.Rows[i]
		if row.ProjectedBalance.GreaterThanOrEqual(target) {
			return time.Date(row.Year, time.Month(row.Month), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ageAt expresses a date as an age relative to a birth date, in whole years
// plus remaining months.
func ageAt(birthDate, date time.Time) domain.RetirementAge {
	months := dateutil.MonthsBetweenDates(birthDate, date)
	if months < 0 {
		return domain.RetirementAge{}
	}
	return domain.RetirementAge{Years: months / 12, Months: months % 12}
}
