// Package app wires the pipeline stages together: one run function per CLI
// mode, each a straight line from input to output with no loops back.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/twquant/taifexpulse/config"
	"github.com/twquant/taifexpulse/internal/domain/apperr"
	"github.com/twquant/taifexpulse/internal/domain/models"
	"github.com/twquant/taifexpulse/internal/export"
	"github.com/twquant/taifexpulse/internal/ingestion"
	"github.com/twquant/taifexpulse/internal/logger"
	"github.com/twquant/taifexpulse/internal/service"
)

// CLI formats for the optional start bound (matching the flag documentation).
const (
	StartDateLayout = "2006-01-02"
	StartTimeLayout = "15:04:05"
)

// FilterOptions are the inputs of filter mode. OutputPath falls back to the
// configured default when empty.
type FilterOptions struct {
	FilePath    string
	ProductCode string
	ExpiryMonth string
	OutputPath  string
	StartDate   string
	StartTime   string
}

// RunFilter executes the whole filter pipeline:
// load → normalize → filter → {warn-and-stop | aggregate → write}.
//
// The criteria are validated before the input file is touched, so an invalid
// start pair never costs a file read. A filter that matches nothing is not a
// failure: it logs a warning, writes no file, and returns nil.
func RunFilter(ctx context.Context, opts FilterOptions) error {
	criteria, err := buildCriteria(opts)
	if err != nil {
		return err
	}

	raw, err := ingestion.LoadFile(ctx, opts.FilePath, config.AppConfig.Input.Encoding)
	if err != nil {
		return err
	}
	logger.L().Info().Str("file", opts.FilePath).Int("rows", len(raw.Rows)).Msg("data loaded")

	ticks, err := ingestion.Normalize(raw)
	if err != nil {
		return err
	}

	filtered := service.Filter(ticks, criteria)
	logger.L().Info().
		Str("product_code", criteria.ProductCode).
		Str("expiry_month", criteria.ExpiryMonth).
		Int("matched", len(filtered)).
		Msg("data filtered")

	if len(filtered) == 0 {
		logger.L().Warn().
			Str("product_code", criteria.ProductCode).
			Str("expiry_month", criteria.ExpiryMonth).
			Msg("no rows matched; nothing written")
		return nil
	}

	agg, err := service.Aggregate(filtered)
	if err != nil {
		return err
	}

	out := opts.OutputPath
	if out == "" {
		out = config.AppConfig.Output.Path
	}
	if err := export.WriteAggregate(agg, out); err != nil {
		return err
	}

	logger.L().Info().
		Str("output", out).
		Float64("open", agg.Open).
		Float64("close", agg.Close).
		Float64("high", agg.High).
		Float64("low", agg.Low).
		Msg("aggregate written")
	return nil
}

// buildCriteria validates the flag inputs and assembles the filter criteria.
//
// Invariant enforced here: start_date and start_time come together or not at
// all — one without the other is a KindArgument error.
func buildCriteria(opts FilterOptions) (models.FilterCriteria, error) {
	c := models.FilterCriteria{
		ProductCode: opts.ProductCode,
		ExpiryMonth: opts.ExpiryMonth,
	}

	if (opts.StartDate == "") != (opts.StartTime == "") {
		return c, apperr.New(apperr.KindArgument,
			"start_date and start_time must be supplied together", nil)
	}
	if opts.StartDate == "" {
		return c, nil
	}

	d, err := time.Parse(StartDateLayout, opts.StartDate)
	if err != nil {
		return c, apperr.New(apperr.KindArgument,
			fmt.Sprintf("invalid start_date %q (want %s)", opts.StartDate, StartDateLayout), err)
	}
	clk, err := ingestion.ParseTradeTime(opts.StartTime)
	if err != nil {
		return c, apperr.New(apperr.KindArgument,
			fmt.Sprintf("invalid start_time %q (want %s)", opts.StartTime, StartTimeLayout), err)
	}

	c.Start = &models.DayTime{Date: d, Time: clk}
	return c, nil
}

// ResampleOptions are the inputs of resample mode. ProductCode/ExpiryMonth
// are optional but paired; Interval and OutputPath fall back to config.
type ResampleOptions struct {
	FilePath    string
	OutputPath  string
	Interval    time.Duration
	ProductCode string
	ExpiryMonth string
}

// RunResample loads a file and writes fixed-interval OHLC bars, optionally
// restricting to one contract first.
func RunResample(ctx context.Context, opts ResampleOptions) error {
	if (opts.ProductCode == "") != (opts.ExpiryMonth == "") {
		return apperr.New(apperr.KindArgument,
			"product_code and expiry_month must be supplied together", nil)
	}

	raw, err := ingestion.LoadFile(ctx, opts.FilePath, config.AppConfig.Input.Encoding)
	if err != nil {
		return err
	}
	ticks, err := ingestion.Normalize(raw)
	if err != nil {
		return err
	}

	if opts.ProductCode != "" {
		ticks = service.Filter(ticks, models.FilterCriteria{
			ProductCode: opts.ProductCode,
			ExpiryMonth: opts.ExpiryMonth,
		})
	}
	if len(ticks) == 0 {
		logger.L().Warn().Str("file", opts.FilePath).Msg("no ticks to resample; nothing written")
		return nil
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = config.AppConfig.Resample.Interval
	}
	bars := service.Resample(ticks, interval)

	out := opts.OutputPath
	if out == "" {
		out = config.AppConfig.Output.BarsPath
	}
	if err := export.WriteBars(bars, out); err != nil {
		return err
	}

	logger.L().Info().
		Str("output", out).
		Dur("interval", interval).
		Int("bars", len(bars)).
		Msg("bars written")
	return nil
}
