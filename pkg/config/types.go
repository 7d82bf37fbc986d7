// Package config provides configuration loading and validation for conlog.
package config

import (
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	LogSource       SourceConfig      `yaml:"log_source"`
	WatermarkFile   string            `yaml:"watermark_file"`
	OutputDir       string            `yaml:"output_dir"`
	Reports         ReportFiles       `yaml:"reports"`
	Epoch           string            `yaml:"epoch"`
	Editors         map[string]string `yaml:"editors"`
	SandboxPrefixes []string          `yaml:"sandbox_prefixes"`
	FeaturedSeries  string            `yaml:"featured_series"`
	LinkBase        string            `yaml:"link_base"`
	DefaultScanner  string            `yaml:"default_scanner"`
	MetricsFile     string            `yaml:"metrics_file,omitempty"`
	LogLevel        string            `yaml:"log_level"`
	Webhooks        []WebhookConfig   `yaml:"webhooks,omitempty"`

	// epoch is the parsed Epoch (populated during validation).
	epoch time.Time
}

// EpochTime returns the parsed default watermark.
func (c *Config) EpochTime() time.Time {
	return c.epoch
}

// SourceType selects how the upload log is retrieved.
type SourceType string

const (
	SourceTypeFile SourceType = "file"
	SourceTypeFTP  SourceType = "ftp"
)

// SourceConfig defines where the upload log comes from.
type SourceConfig struct {
	// Type is "file" or "ftp".
	Type SourceType `yaml:"type"`

	// Path is a local file path, or the remote file name for ftp.
	Path string `yaml:"path"`

	// Dir is the remote directory for ftp; empty means the login directory.
	Dir string `yaml:"dir,omitempty"`

	// Credentials is the JSON credentials file for ftp.
	Credentials string `yaml:"credentials,omitempty"`

	// Timeout bounds connecting and retrieving.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ReportFiles names the report files written under OutputDir.
type ReportFiles struct {
	Series   string `yaml:"series"`
	Instance string `yaml:"instance"`
	Detail   string `yaml:"detail"`
	EdieOld  string `yaml:"edie_old"`
	Edie     string `yaml:"edie"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnActivity fires only when new activity was reported (default).
	WebhookTriggerOnActivity WebhookTrigger = "on_activity"
	// WebhookTriggerOnRun fires after every run.
	WebhookTriggerOnRun WebhookTrigger = "on_run"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending run summaries.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_activity" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
