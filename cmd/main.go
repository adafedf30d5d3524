package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/twquant/taifexpulse/config"
	"github.com/twquant/taifexpulse/internal/app"
	"github.com/twquant/taifexpulse/internal/domain/apperr"
	"github.com/twquant/taifexpulse/internal/logger"
)

// main is the entry point of the taifexpulse CLI.
//
// Modes (selected via --mode flag):
//   - filter:   Load a TAIFEX daily CSV, filter by contract, aggregate
//     open/close/high/low, write one CSV row.
//   - download: Fetch the zipped daily CSV for one or more trading dates
//     from the TAIFEX previous-30-days page.
//   - resample: Bucket the (optionally filtered) ticks into fixed-interval
//     OHLC bars and write them as CSV.
//
// Exit codes:
//   - 0: success, including a filter that matched nothing (warning only).
//   - 2: usage problems — missing/unknown/incompatible flags.
//   - 1: everything else (missing file, parse failure, download failure).
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger (stderr; stdout stays clean)
	logger.Init()

	mode := pflag.String("mode", "filter", "Mode: filter, download or resample")
	filePath := pflag.StringP("file_path", "f", "", "Path to the input CSV file")
	productCode := pflag.StringP("product_code", "p", "", "Product code to filter, e.g. 'MTX'")
	expiryMonth := pflag.StringP("expiry_month", "e", "", "Expiry month to filter, e.g. '202501'")
	outputPath := pflag.StringP("output_path", "o", "", "Path to save the output CSV (default from OUTPUT_PATH)")
	startDate := pflag.String("start_date", "", "Lower-bound trade date, "+app.StartDateLayout+" (requires --start_time)")
	startTime := pflag.String("start_time", "", "Lower-bound trade time, "+app.StartTimeLayout+" (requires --start_date)")
	dates := pflag.StringSlice("date", nil, "Trading date(s) to download, YYYY/MM/DD (default: latest trading day)")
	dir := pflag.String("dir", "", "Directory for downloaded files (default from DOWNLOAD_DIR)")
	interval := pflag.Duration("interval", 0, "Bar interval for resample mode (default from RESAMPLE_INTERVAL)")
	pflag.Parse()

	// Interrupt cancels in-flight work (only download has slow I/O, but the
	// loader honors cancellation too).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch *mode {
	case "filter":
		requireFlags(map[string]string{
			"file_path":    *filePath,
			"product_code": *productCode,
			"expiry_month": *expiryMonth,
		})
		err = app.RunFilter(ctx, app.FilterOptions{
			FilePath:    *filePath,
			ProductCode: *productCode,
			ExpiryMonth: *expiryMonth,
			OutputPath:  *outputPath,
			StartDate:   *startDate,
			StartTime:   *startTime,
		})

	case "download":
		err = app.RunDownload(ctx, app.DownloadOptions{
			Dates: *dates,
			Dir:   *dir,
		})

	case "resample":
		requireFlags(map[string]string{"file_path": *filePath})
		err = app.RunResample(ctx, app.ResampleOptions{
			FilePath:    *filePath,
			OutputPath:  *outputPath,
			Interval:    *interval,
			ProductCode: *productCode,
			ExpiryMonth: *expiryMonth,
		})

	default:
		usageError(fmt.Sprintf("unknown mode %q", *mode))
	}

	if err != nil {
		logger.L().Error().Str("mode", *mode).Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// requireFlags exits with usage help when any required flag is empty.
func requireFlags(flags map[string]string) {
	var missing []string
	for name, value := range flags {
		if value == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		usageError("missing required arguments: " + strings.Join(missing, ", "))
	}
}

// usageError prints the problem and flag help to stderr and exits 2.
func usageError(msg string) {
	fmt.Fprintln(os.Stderr, "Error: "+msg)
	pflag.Usage()
	os.Exit(2)
}

// exitCode maps an error to the process exit code: argument problems exit 2,
// everything else 1.
func exitCode(err error) int {
	if apperr.KindOf(err) == apperr.KindArgument {
		return 2
	}
	return 1
}
