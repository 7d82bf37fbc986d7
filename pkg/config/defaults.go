package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultLogFile         = "updatelog.txt"
	DefaultCredentialsFile = "FTP Credentials.json"
	DefaultSourceTimeout   = 30 * time.Second
	DefaultWatermarkFile   = "Last time.txt"
	DefaultOutputDir       = "."
	DefaultEpoch           = "2021-02-03"
	DefaultFeaturedSeries  = "Worldcon"
	DefaultLinkBase        = "https://fanac.org/conpubs"
	DefaultScanner         = "Mark Olson"
	DefaultLogLevel        = "info"
	DefaultWebhookTimeout  = 10 * time.Second

	// EpochLayout is the date layout of the epoch setting.
	EpochLayout = "2006-01-02"
)

// Environment variable names.
const (
	EnvWatermarkFile = "CONLOG_WATERMARK_FILE"
	EnvOutputDir     = "CONLOG_OUTPUT_DIR"
	EnvLogLevel      = "CONLOG_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSource: SourceConfig{
			Type:        SourceTypeFTP,
			Path:        DefaultLogFile,
			Credentials: DefaultCredentialsFile,
			Timeout:     DefaultSourceTimeout,
		},
		WatermarkFile: DefaultWatermarkFile,
		OutputDir:     DefaultOutputDir,
		Reports: ReportFiles{
			Series:   "Con Series report.txt",
			Instance: "Con Instance report.txt",
			Detail:   "Con detail report.txt",
			EdieOld:  "Con detail report for Edie (old format).txt",
			Edie:     "Con detail report for Edie.txt",
		},
		Epoch: DefaultEpoch,
		Editors: map[string]string{
			"conpubs": "Mark Olson",
			"cp-edie": "Edie Stern",
		},
		SandboxPrefixes: []string{"xx", "yy", "zz"},
		FeaturedSeries:  DefaultFeaturedSeries,
		LinkBase:        DefaultLinkBase,
		DefaultScanner:  DefaultScanner,
		LogLevel:        DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvWatermarkFile); v != "" {
		c.WatermarkFile = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
