// Package export serializes pipeline results to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/twquant/taifexpulse/internal/domain/apperr"
	"github.com/twquant/taifexpulse/internal/domain/models"
)

// aggregateHeader is the fixed output contract of filter mode.
var aggregateHeader = []string{"product_code", "expiry_month", "open", "close", "high", "low"}

// barsHeader is the output contract of resample mode, one bar per row.
var barsHeader = []string{"datetime", "open", "high", "low", "close", "volume"}

const barTimeLayout = "2006-01-02 15:04:05"

// WriteAggregate writes the header row and exactly one data row to path,
// creating or overwriting the file. Output is plain UTF-8; all six fields
// are ASCII.
func WriteAggregate(agg models.Aggregate, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("create %s", path), err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(aggregateHeader); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("write %s", path), err)
	}
	if err := w.Write([]string{
		agg.ProductCode,
		agg.ExpiryMonth,
		floatStr(agg.Open),
		floatStr(agg.Close),
		floatStr(agg.High),
		floatStr(agg.Low),
	}); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("write %s", path), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("flush %s", path), err)
	}

	return nil
}

// WriteBars writes one row per bar to path, creating or overwriting the file.
func WriteBars(bars []models.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("create %s", path), err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(barsHeader); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("write %s", path), err)
	}
	for _, b := range bars {
		if err := w.Write([]string{
			b.Start.Format(barTimeLayout),
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			strconv.FormatInt(b.Volume, 10),
		}); err != nil {
			return apperr.New(apperr.KindIO, fmt.Sprintf("write %s", path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("flush %s", path), err)
	}

	return nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
