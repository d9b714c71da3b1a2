package output

import (
	"time"

	"github.com/finplan/projection-engine/internal/domain"
)

// Report bundles everything a formatter may render for one projection run.
type Report struct {
	ClientName string                   `json:"client_name,omitempty"`
	Generated  time.Time                `json:"generated_at"`
	RealValues bool                     `json:"real_values"`
	Projection *domain.ProjectionResult `json:"projection,omitempty"`
	Progress   *domain.ProgressSummary  `json:"progress,omitempty"`
}

// NewReport stamps a report with the current time.
func NewReport(clientName string, realValues bool) *Report {
	return &Report{
		ClientName: clientName,
		Generated:  time.Now(),
		RealValues: realValues,
	}
}

// Currency returns the projection currency symbol, defaulting to "$".
func (r *Report) Currency() string {
	if r.Projection != nil && r.Projection.Currency != "" {
		return r.Projection.Currency
	}
	return "$"
}
