package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is composed of smaller structs that represent different concerns of the
// tool: input decoding, output defaults, the TAIFEX download endpoint, and
// resampling.
//
// Example ENV equivalent:
//
//	CSV_ENCODING=big5
//	OUTPUT_PATH=filtered_data.csv
//	DOWNLOAD_URL=https://www.taifex.com.tw/cht/3/dlFutPrevious30DaysSalesData
//	DOWNLOAD_DIR=download
//	HTTP_TIMEOUT_SECONDS=10
//	RESAMPLE_INTERVAL=1m
type Config struct {
	Input    InputConfig    // input file decoding
	Output   OutputConfig   // default output locations
	Download DownloadConfig // TAIFEX daily-sales download settings
	Resample ResampleConfig // bar-resampling defaults
}

// InputConfig controls how input CSV files are decoded.
//
// TAIFEX publishes its daily files in Big5; Encoding accepts "big5" or "utf8".
type InputConfig struct {
	Encoding string
}

// OutputConfig holds default output paths for the filter and resample modes.
type OutputConfig struct {
	Path     string // filter mode default, e.g. "filtered_data.csv"
	BarsPath string // resample mode default, e.g. "ohlc_bars.csv"
}

// DownloadConfig defines the TAIFEX daily-sales page and local target
// directory used by download mode.
type DownloadConfig struct {
	URL     string
	Dir     string
	Timeout time.Duration
}

// ResampleConfig holds the default bar interval for resample mode.
type ResampleConfig struct {
	Interval time.Duration
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read throughout the application;
// packages should import this instead of reloading environment variables.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from a .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If a value is invalid (unknown encoding, non-positive timeout or
//     interval), validateConfig() terminates the process with a descriptive
//     log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("CSV_ENCODING", "big5")
	viper.SetDefault("OUTPUT_PATH", "filtered_data.csv")
	viper.SetDefault("BARS_OUTPUT_PATH", "ohlc_bars.csv")

	viper.SetDefault("DOWNLOAD_URL", "https://www.taifex.com.tw/cht/3/dlFutPrevious30DaysSalesData")
	viper.SetDefault("DOWNLOAD_DIR", "download")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 10)

	viper.SetDefault("RESAMPLE_INTERVAL", "1m")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Input: InputConfig{
			Encoding: viper.GetString("CSV_ENCODING"),
		},
		Output: OutputConfig{
			Path:     viper.GetString("OUTPUT_PATH"),
			BarsPath: viper.GetString("BARS_OUTPUT_PATH"),
		},
		Download: DownloadConfig{
			URL:     viper.GetString("DOWNLOAD_URL"),
			Dir:     viper.GetString("DOWNLOAD_DIR"),
			Timeout: time.Duration(viper.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,
		},
		Resample: ResampleConfig{
			Interval: viper.GetDuration("RESAMPLE_INTERVAL"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures configured values are usable and terminates the
// application if they are not.
//
// This avoids unexpected runtime failures deep in the pipeline due to a bad
// environment.
func validateConfig() {
	var bad []string

	switch AppConfig.Input.Encoding {
	case "big5", "utf8":
	default:
		bad = append(bad, "CSV_ENCODING (must be big5 or utf8)")
	}
	if AppConfig.Output.Path == "" {
		bad = append(bad, "OUTPUT_PATH")
	}
	if AppConfig.Output.BarsPath == "" {
		bad = append(bad, "BARS_OUTPUT_PATH")
	}
	if AppConfig.Download.URL == "" {
		bad = append(bad, "DOWNLOAD_URL")
	}
	if AppConfig.Download.Dir == "" {
		bad = append(bad, "DOWNLOAD_DIR")
	}
	if AppConfig.Download.Timeout <= 0 {
		bad = append(bad, "HTTP_TIMEOUT_SECONDS (must be > 0)")
	}
	if AppConfig.Resample.Interval <= 0 {
		bad = append(bad, "RESAMPLE_INTERVAL (must be a positive duration)")
	}

	if len(bad) > 0 {
		log.Fatalf("Invalid or missing configuration values: %v\n", bad)
	}
}
