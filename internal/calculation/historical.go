package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/finplan/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RateSeries holds an observed monthly rate series keyed by (year, month),
// e.g. a CPI-style inflation index. The projection engine prefers an observed
// rate over the active micro-plan's assumed rate for months the series
// covers.
type RateSeries struct {
	Name  string
	rates map[int]decimal.Decimal // keyed by dateutil.MonthIndex
}

// NewRateSeries creates an empty named series.
func NewRateSeries(name string) *RateSeries {
	return &RateSeries{
		Name:  name,
		rates: make(map[int]decimal.Decimal),
	}
}

// Set records the rate for one (year, month), replacing any existing value.
func (rs *RateSeries) Set(year, month int, rate decimal.Decimal) {
	rs.rates[dateutil.MonthIndex(year, month)] = rate
}

// Rate looks up the rate for a (year, month). The second return value
// reports whether the series covers that month.
func (rs *RateSeries) Rate(year, month int) (decimal.Decimal, bool) {
	rate, ok := rs.rates[dateutil.MonthIndex(year, month)]
	return rate, ok
}

// Len returns the number of covered months.
func (rs *RateSeries) Len() int {
	return len(rs.rates)
}

// LoadRateSeriesCSV loads a monthly rate series from a CSV file with
// year,month,rate rows (fractional rates, 0.005 = 0.5%/month). A header row
// is skipped when its first field is not numeric.
func LoadRateSeriesCSV(path, name string) (*RateSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate series file %s: %w", path, err)
	}
	defer file.Close()

	series := NewRateSeries(name)
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rate series %s: %w", path, err)
		}
		line++

		year, err := strconv.Atoi(record[0])
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("invalid year %q on line %d of %s", record[0], line, path)
		}
		month, err := strconv.Atoi(record[1])
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("invalid month %q on line %d of %s", record[1], line, path)
		}
		rate, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q on line %d of %s: %w", record[2], line, path, err)
		}

		series.Set(year, month, rate)
	}

	if series.Len() == 0 {
		return nil, fmt.Errorf("rate series %s contains no data rows", path)
	}
	return series, nil
}
