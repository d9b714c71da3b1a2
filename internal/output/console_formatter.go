package output

import (
	"bytes"
	"fmt"

	"github.com/finplan/projection-engine/internal/domain"
)

// ConsoleFormatter renders a plain-text summary with a year-end balance table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	symbol := report.Currency()

	fmt.Fprintln(&buf, "INVESTMENT PLAN PROJECTION")
	fmt.Fprintln(&buf, "================================")
	if report.ClientName != "" {
		fmt.Fprintf(&buf, "Client: %s\n", report.ClientName)
	}
	if report.RealValues {
		fmt.Fprintln(&buf, "Values: real (inflation removed)")
	}

	if report.Projection != nil && len(report.Projection.Rows) > 0 {
		c.writeProjection(&buf, symbol, report.Projection)
	}
	if report.Progress != nil {
		c.writeProgress(&buf, symbol, report.Progress)
	}

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeProjection(buf *bytes.Buffer, symbol string, projection *domain.ProjectionResult) {
	fmt.Fprintf(buf, "Horizon: %s to %s (%d months)\n",
		FormatMonth(projection.StartYear, projection.StartMonth),
		FormatMonth(projection.EndYear, projection.EndMonth),
		len(projection.Rows),
	)
	fmt.Fprintf(buf, "Final planned balance:   %s\n", FormatCurrency(symbol, projection.PlannedFinalBalance()))
	fmt.Fprintf(buf, "Final projected balance: %s\n", FormatCurrency(symbol, projection.ProjectedFinalBalance()))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-8s  %18s  %18s  %s\n", "Month", "Planned", "Projected", "Notes")
	for _, row := range projection.Rows {
		if row.Month != 12 && !c.isLastRow(projection, row) {
			continue
		}
		notes := ""
		if row.Retired {
			notes = "retired"
		}
		if row.FromRecord {
			if notes != "" {
				notes += ", "
			}
			notes += "from record"
		}
		fmt.Fprintf(buf, "%-8s  %18s  %18s  %s\n",
			FormatMonth(row.Year, row.Month),
			FormatCurrency(symbol, row.PlannedBalance),
			FormatCurrency(symbol, row.ProjectedBalance),
			notes,
		)
	}
	fmt.Fprintln(buf)
}

func (c ConsoleFormatter) isLastRow(projection *domain.ProjectionResult, row domain.ProjectionRow) bool {
	last := projection.FinalRow()
	return last != nil && last.Year == row.Year && last.Month == row.Month
}

func (c ConsoleFormatter) writeProgress(buf *bytes.Buffer, symbol string, progress *domain.ProgressSummary) {
	fmt.Fprintln(buf, "PLAN PROGRESS")
	fmt.Fprintln(buf, "================================")
	fmt.Fprintf(buf, "Progress toward target:  %s\n", FormatPercentage(progress.CurrentProgress))
	fmt.Fprintf(buf, "Schedule:                %s\n", FormatDelta(progress.ScheduleDeltaMonths))
	fmt.Fprintf(buf, "Planned retirement:      %s (age %d years %d months)\n",
		progress.PlannedRetirementDate.Format("2006-01"),
		progress.PlannedRetirementAge.Years, progress.PlannedRetirementAge.Months)
	fmt.Fprintf(buf, "Projected retirement:    %s (age %d years %d months)\n",
		progress.ProjectedRetirementDate.Format("2006-01"),
		progress.ProjectedRetirementAge.Years, progress.ProjectedRetirementAge.Months)
	fmt.Fprintf(buf, "Required future value:   %s\n", FormatCurrency(symbol, progress.PlannedFutureValue))
	fmt.Fprintf(buf, "Projected future value:  %s\n", FormatCurrency(symbol, progress.ProjectedFutureValue))
	fmt.Fprintf(buf, "Planned contribution:    %s/month\n", FormatCurrency(symbol, progress.PlannedContribution))
	fmt.Fprintf(buf, "Required contribution:   %s/month\n", FormatCurrency(symbol, progress.RequiredContribution))
	fmt.Fprintf(buf, "Planned income:          %s/month\n", FormatCurrency(symbol, progress.PlannedMonthlyIncome))
	fmt.Fprintf(buf, "Sustainable income:      %s/month\n", FormatCurrency(symbol, progress.ProjectedMonthlyIncome))
}
