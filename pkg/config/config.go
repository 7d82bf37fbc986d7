package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. An empty path yields the
// defaults (with environment overrides applied).
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills derived fields.
func Validate(cfg *Config) error {
	if err := validateSource(&cfg.LogSource); err != nil {
		return fmt.Errorf("log_source: %w", err)
	}

	if cfg.WatermarkFile == "" {
		return errors.New("watermark_file: a path is required")
	}

	if err := validateReports(&cfg.Reports); err != nil {
		return fmt.Errorf("reports: %w", err)
	}

	epoch, err := time.Parse(EpochLayout, cfg.Epoch)
	if err != nil {
		return fmt.Errorf("epoch: want YYYY-MM-DD: %w", err)
	}
	cfg.epoch = epoch

	for i, p := range cfg.SandboxPrefixes {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("sandbox_prefixes[%d]: empty prefix would hide every series", i)
		}
	}

	if cfg.LinkBase != "" {
		if err := validateHTTPURL(cfg.LinkBase); err != nil {
			return fmt.Errorf("link_base: %w", err)
		}
		cfg.LinkBase = strings.TrimRight(cfg.LinkBase, "/")
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateSource(src *SourceConfig) error {
	switch src.Type {
	case SourceTypeFile:
		if src.Path == "" {
			return errors.New("path is required for file sources")
		}
	case SourceTypeFTP:
		if src.Path == "" {
			return errors.New("path (remote file name) is required for ftp sources")
		}
		if src.Credentials == "" {
			return errors.New("credentials is required for ftp sources")
		}
	default:
		return fmt.Errorf("invalid type %q (must be file or ftp)", src.Type)
	}

	if src.Timeout <= 0 {
		src.Timeout = DefaultSourceTimeout
	}
	return nil
}

func validateReports(r *ReportFiles) error {
	names := map[string]string{
		"series":   r.Series,
		"instance": r.Instance,
		"detail":   r.Detail,
		"edie_old": r.EdieOld,
		"edie":     r.Edie,
	}
	seen := make(map[string]string, len(names))
	for _, key := range []string{"series", "instance", "detail", "edie_old", "edie"} {
		name := names[key]
		if name == "" {
			return fmt.Errorf("%s: file name is required", key)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%s: %q must be a file name, not a path", key, name)
		}
		if other, dup := seen[name]; dup {
			return fmt.Errorf("%s: %q is also used by %s", key, name, other)
		}
		seen[name] = key
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}
	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	if err := validateHTTPURL(wh.URL); err != nil {
		return err
	}

	// Expand environment variables in token
	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnActivity, WebhookTriggerOnRun, WebhookTriggerNever:
		default:
			return fmt.Errorf("invalid trigger %q (must be on_activity, on_run, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnActivity
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
