package calculation

import (
	"time"

	"github.com/finplan/projection-engine/internal/domain"
)

// Horizon selects how far a projection runs.
type Horizon int

const (
	// HorizonRetirement stops at the plan's end-of-accumulation date.
	HorizonRetirement Horizon = iota
	// HorizonLimitAge runs through the payout phase to the plan's limit age.
	HorizonLimitAge
)

// ProjectionInput gathers the records one projection run consumes. The engine
// never fetches data itself; the caller supplies already-loaded records.
type ProjectionInput struct {
	Plan       *domain.InvestmentPlan
	MicroPlans []domain.MicroInvestmentPlan
	Goals      []domain.ScheduledItem
	Events     []domain.ScheduledItem
	Records    []domain.FinancialRecord
	BirthDate  time.Time
}

// ProjectionOptions control one projection run.
type ProjectionOptions struct {
	Through Horizon
	// ShowRealValues expresses inflation-adjusted goal/event amounts in real
	// terms instead of scaling them to nominal.
	ShowRealValues bool
}

// Engine orchestrates plan projections and progress calculations. The zero
// value is not usable; construct with NewEngine.
type Engine struct {
	// Inflation optionally overrides micro-plan inflation assumptions with an
	// observed monthly series for the months it covers.
	Inflation *RateSeries
	Debug     bool
	Logger    Logger
}

// NewEngine creates a projection engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger installs the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetInflationSeries installs an observed monthly inflation series.
func (e *Engine) SetInflationSeries(series *RateSeries) {
	e.Inflation = series
}
