// Package downloader fetches TAIFEX daily futures files: it scrapes the
// "previous 30 days" daily-sales page, locates the row for a trading date,
// and downloads and extracts the zipped CSV.
package downloader

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/twquant/taifexpulse/config"
	"github.com/twquant/taifexpulse/internal/domain/apperr"
	"github.com/twquant/taifexpulse/internal/logger"
)

// PageDateLayout is the date format the TAIFEX listing uses (e.g. 2025/01/02).
const PageDateLayout = "2006/01/02"

// Downloader retrieves daily sales files into a local directory.
type Downloader struct {
	client  *resty.Client
	pageURL string
	dir     string
}

// New builds a Downloader from the download configuration.
func New(cfg config.DownloadConfig) *Downloader {
	return &Downloader{
		client:  resty.New().SetTimeout(cfg.Timeout),
		pageURL: cfg.URL,
		dir:     cfg.Dir,
	}
}

// Run fetches the listing page once, then downloads the zipped CSV for each
// requested date (PageDateLayout format) concurrently. The first failure
// cancels the remaining downloads.
//
// Failure modes:
//   - page unreachable or non-2xx → KindDownload
//   - listing table absent from the page → KindParse
//   - a date not present in the listing → KindNotFound
func (d *Downloader) Run(ctx context.Context, dates []string) error {
	resp, err := d.client.R().SetContext(ctx).Get(d.pageURL)
	if err != nil {
		return apperr.New(apperr.KindDownload, fmt.Sprintf("fetch %s", d.pageURL), err)
	}
	if resp.IsError() {
		return apperr.New(apperr.KindDownload,
			fmt.Sprintf("fetch %s: status %s", d.pageURL, resp.Status()), nil)
	}

	doc, err := html.Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return apperr.New(apperr.KindParse, "parse daily-sales page", err)
	}
	table := findSalesTable(doc)
	if table == nil {
		return apperr.New(apperr.KindParse, "daily-sales table not found on page", nil)
	}

	logger.L().Info().Int("dates", len(dates)).Str("dir", d.dir).Msg("download start")

	// errgroup cancels siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	for _, date := range dates {
		date := date
		g.Go(func() error {
			return d.fetchDate(gctx, table, date)
		})
	}

	return g.Wait()
}

// fetchDate downloads and extracts the CSV zip for one listing date.
func (d *Downloader) fetchDate(ctx context.Context, table *html.Node, date string) error {
	start := time.Now()

	link, ok := csvLinkForDate(table, date)
	if !ok {
		return apperr.New(apperr.KindNotFound, fmt.Sprintf("no daily file listed for %s", date), nil)
	}
	link = d.resolve(link)

	resp, err := d.client.R().SetContext(ctx).Get(link)
	if err != nil {
		return apperr.New(apperr.KindDownload, fmt.Sprintf("download %s", link), err)
	}
	if resp.IsError() {
		return apperr.New(apperr.KindDownload,
			fmt.Sprintf("download %s: status %s", link, resp.Status()), nil)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("create %s", d.dir), err)
	}

	stem := "data_" + strings.ReplaceAll(date, "/", "-")
	zipPath := filepath.Join(d.dir, stem+".zip")
	if err := os.WriteFile(zipPath, resp.Body(), 0o644); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("save %s", zipPath), err)
	}

	destDir := filepath.Join(d.dir, stem)
	if err := extractZip(zipPath, destDir); err != nil {
		return err
	}

	logger.L().Info().
		Str("date", date).
		Str("dest", destDir).
		Dur("elapsed", time.Since(start)).
		Msg("date done")
	return nil
}

// resolve turns a relative listing link into an absolute URL against the page.
func (d *Downloader) resolve(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.IsAbs() {
		return link
	}
	base, err := url.Parse(d.pageURL)
	if err != nil {
		return link
	}
	return base.ResolveReference(u).String()
}

// extractZip unpacks zipPath into destDir, rejecting entries that would
// escape it.
func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return apperr.New(apperr.KindDownload, fmt.Sprintf("open archive %s", zipPath), err)
	}
	defer func() { _ = r.Close() }()

	for _, zf := range r.File {
		name := filepath.Clean(zf.Name)
		if filepath.IsAbs(name) || strings.HasPrefix(name, "..") {
			return apperr.New(apperr.KindDownload,
				fmt.Sprintf("archive %s: unsafe entry %q", zipPath, zf.Name), nil)
		}
		target := filepath.Join(destDir, name)

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return apperr.New(apperr.KindIO, fmt.Sprintf("create %s", target), err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return apperr.New(apperr.KindIO, fmt.Sprintf("create %s", filepath.Dir(target)), err)
		}
		if err := copyZipFile(zf, target); err != nil {
			return err
		}
	}

	return nil
}

func copyZipFile(zf *zip.File, target string) error {
	src, err := zf.Open()
	if err != nil {
		return apperr.New(apperr.KindDownload, fmt.Sprintf("read archive entry %s", zf.Name), err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(target)
	if err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("create %s", target), err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return apperr.New(apperr.KindIO, fmt.Sprintf("extract %s", target), err)
	}
	return nil
}
