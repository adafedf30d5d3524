package app

import (
	"context"
	"time"

	"github.com/twquant/taifexpulse/config"
	"github.com/twquant/taifexpulse/internal/downloader"
)

// DownloadOptions are the inputs of download mode. Dir falls back to the
// configured directory; an empty Dates means the latest Taiwan trading day.
type DownloadOptions struct {
	Dates []string
	Dir   string
}

// dateFetcher is the downloader surface used by RunDownload.
type dateFetcher interface {
	Run(ctx context.Context, dates []string) error
}

// newDownloader is an indirection for creating the downloader; tests can
// override this.
var newDownloader = func(cfg config.DownloadConfig) dateFetcher {
	return downloader.New(cfg)
}

// RunDownload fetches the zipped daily CSV for each requested trading date.
func RunDownload(ctx context.Context, opts DownloadOptions) error {
	cfg := config.AppConfig.Download
	if opts.Dir != "" {
		cfg.Dir = opts.Dir
	}

	dates := opts.Dates
	if len(dates) == 0 {
		dates = []string{downloader.LatestTradingDay(time.Now())}
	}

	return newDownloader(cfg).Run(ctx, dates)
}
