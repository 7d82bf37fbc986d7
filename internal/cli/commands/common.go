package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fanac/conlog/internal/logging"
	"github.com/fanac/conlog/pkg/config"
	"github.com/fanac/conlog/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// CommonOptions are the flags shared by commands that read the configuration.
type CommonOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

func addCommonFlags(cmd *cobra.Command, opts *CommonOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (defaults are used when omitted)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error); overrides the config")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", logging.FormatText, "Log format (text|json)")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadConfig(ctx context.Context, opts *CommonOptions) (*config.Config, error) {
	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config, opts *CommonOptions) (*logrus.Logger, error) {
	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger, err := logging.New(w, level, opts.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return logger, nil
}

func formatOptions(cfg *config.Config) output.FormatOptions {
	return output.FormatOptions{
		SandboxPrefixes: cfg.SandboxPrefixes,
		FeaturedSeries:  cfg.FeaturedSeries,
		LinkBase:        cfg.LinkBase,
		DefaultScanner:  cfg.DefaultScanner,
	}
}

func reportFiles(cfg *config.Config) map[string]string {
	return map[string]string{
		output.NameSeries:   cfg.Reports.Series,
		output.NameInstance: cfg.Reports.Instance,
		output.NameDetail:   cfg.Reports.Detail,
		output.NameEdieOld:  cfg.Reports.EdieOld,
		output.NameEdie:     cfg.Reports.Edie,
	}
}
