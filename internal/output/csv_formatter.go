package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter exports the monthly projection, one row per month.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Month", "PlannedBalance", "ProjectedBalance", "Contribution", "Withdrawal", "AccumulatedInflation", "FromRecord", "Retired"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if report.Projection != nil {
		for _, row := range report.Projection.Rows {
			record := []string{
				strconv.Itoa(row.Year),
				strconv.Itoa(row.Month),
				row.PlannedBalance.RoundBank(2).StringFixed(2),
				row.ProjectedBalance.RoundBank(2).StringFixed(2),
				row.Contribution.RoundBank(2).StringFixed(2),
				row.Withdrawal.RoundBank(2).StringFixed(2),
				row.AccumulatedInflation.StringFixed(6),
				strconv.FormatBool(row.FromRecord),
				strconv.FormatBool(row.Retired),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
