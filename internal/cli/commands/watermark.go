package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fanac/conlog/pkg/config"
	"github.com/fanac/conlog/pkg/parser"
	"github.com/fanac/conlog/pkg/watermark"
)

// WatermarkOptions holds command-line options for the watermark commands.
type WatermarkOptions struct {
	Common CommonOptions
	File   string
}

// NewWatermarkCommand creates the watermark command and its subcommands.
func NewWatermarkCommand() *cobra.Command {
	opts := &WatermarkOptions{}

	cmd := &cobra.Command{
		Use:   "watermark",
		Short: "Inspect or edit the stored watermark",
		Long: `The watermark is the time of the last report run. Only uploads after it
are reported. It is kept in a small text file; blank lines and lines starting
with "#" are comments and are preserved when the file is rewritten.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Common.ConfigPath, "config", "c", "", "Configuration file (defaults are used when omitted)")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "Watermark file; overrides the config")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored watermark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatermarkShow(cmd, opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <timestamp>",
		Short: "Store a new watermark",
		Long: `Store a new watermark. The timestamp is either in the watermark file's own
layout ("February 03, 2021  10:00:00 AM") or a date ("2021-02-03").`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatermarkSet(cmd, opts, strings.Join(args, " "))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove the stored watermark so the next run starts from the epoch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatermarkReset(cmd, opts)
		},
	})

	return cmd
}

func watermarkStore(cmd *cobra.Command, opts *WatermarkOptions) (*watermark.Store, *config.Config, error) {
	cfg, err := loadConfig(commandContext(cmd), &opts.Common)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.WatermarkFile
	if opts.File != "" {
		path = opts.File
	}
	return watermark.NewStore(path), cfg, nil
}

func runWatermarkShow(cmd *cobra.Command, opts *WatermarkOptions) error {
	store, cfg, err := watermarkStore(cmd, opts)
	if err != nil {
		return err
	}

	ts, ok, err := store.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !ok {
		_, err = fmt.Fprintf(out, "No watermark stored in %s; reports start from %s\n",
			store.Path(), parser.FormatWatermarkTime(cfg.EpochTime()))
		return err
	}

	_, err = fmt.Fprintf(out, "%s\n", parser.FormatWatermarkTime(ts))
	if err == nil && !store.Writable() {
		_, err = fmt.Fprintf(out, "(%s is read-only)\n", store.Path())
	}
	return err
}

func runWatermarkSet(cmd *cobra.Command, opts *WatermarkOptions, value string) error {
	ts, err := parseWatermarkArg(value)
	if err != nil {
		return err
	}

	store, _, err := watermarkStore(cmd, opts)
	if err != nil {
		return err
	}
	if err := store.Save(ts); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Watermark set to %s\n", parser.FormatWatermarkTime(ts))
	return err
}

func runWatermarkReset(cmd *cobra.Command, opts *WatermarkOptions) error {
	store, cfg, err := watermarkStore(cmd, opts)
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Watermark cleared; the next run starts from %s\n",
		parser.FormatWatermarkTime(cfg.EpochTime()))
	return err
}

func parseWatermarkArg(value string) (time.Time, error) {
	if ts, err := parser.ParseWatermarkTime(value); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(config.EpochLayout, strings.TrimSpace(value)); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (use %q or %q)", value, parser.WatermarkLayout, config.EpochLayout)
}
