package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fanac/conlog/internal/logging"
	"github.com/fanac/conlog/pkg/analyzer"
	"github.com/fanac/conlog/pkg/config"
	"github.com/fanac/conlog/pkg/metrics"
	"github.com/fanac/conlog/pkg/output"
	"github.com/fanac/conlog/pkg/parser"
	"github.com/fanac/conlog/pkg/source"
	"github.com/fanac/conlog/pkg/tally"
	"github.com/fanac/conlog/pkg/watermark"
	"github.com/fanac/conlog/pkg/webhook"
)

// ReportOptions holds command-line options for the report command.
type ReportOptions struct {
	Common CommonOptions

	Source            string
	OutputDir         string
	NoWatermarkUpdate bool
	DryRun            bool
	Summary           string
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report uploads made since the last run",
		Long: `Fetch the ConEditor upload log, keep the additions made since the stored
watermark, and write the five activity reports:

  series     item counts per series
  instance   item counts per instance
  detail     every item added, per instance
  edie-old   HTML detail, one line per instance
  edie       HTML detail grouped by series, featured series first

After the reports are written the watermark is moved to the current time,
unless --no-watermark-update or --dry-run is given.

Exit codes:
  0 - Reports written
  2 - Configuration, transport or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	addCommonFlags(cmd, &opts.Common)
	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "Read the log from this local file instead of the configured source")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "d", "", "Directory for the report files; overrides the config")
	cmd.Flags().BoolVar(&opts.NoWatermarkUpdate, "no-watermark-update", false, "Leave the watermark unchanged")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the reports to stdout; write no files and keep the watermark")
	cmd.Flags().StringVar(&opts.Summary, "summary", "text", "Run summary format (text|json)")

	return cmd
}

func runReport(cmd *cobra.Command, opts *ReportOptions) error {
	ctx := commandContext(cmd)

	if opts.Summary != "text" && opts.Summary != "json" {
		return fmt.Errorf("unknown summary format %q (use text or json)", opts.Summary)
	}

	cfg, err := loadConfig(ctx, &opts.Common)
	if err != nil {
		return err
	}
	if opts.Source != "" {
		cfg.LogSource = config.SourceConfig{Type: config.SourceTypeFile, Path: opts.Source}
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg, &opts.Common)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	log := logging.WithRun(logger, runID)

	store := watermark.NewStore(cfg.WatermarkFile)
	stored, haveStored, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading watermark: %w", err)
	}
	if !store.Writable() {
		log.WithField("path", store.Path()).Warn("watermark file is read-only; it will not be updated")
	}

	src, err := source.New(cfg.LogSource)
	if err != nil {
		return fmt.Errorf("configuring log source: %w", err)
	}

	log.WithField("source", src.Name()).Info("fetching upload log")
	data, err := src.Fetch(ctx)
	if err != nil {
		if source.IsConnectError(err) {
			log.WithError(err).Error("cannot reach the log source; no reports written")
		}
		return fmt.Errorf("fetching log: %w", err)
	}
	log.WithField("bytes", len(data)).Debug("upload log fetched")

	a := analyzer.NewAnalyzer(
		analyzer.WithEditorNames(tally.EditorNames(cfg.Editors)),
		analyzer.WithEpoch(cfg.EpochTime()),
		analyzer.WithWatermark(stored, haveStored),
		analyzer.WithRunID(runID),
	)
	result, err := a.Analyze(ctx, parser.NewReaderSource(bytes.NewReader(data), src.Name()), src.Name())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"since":           parser.FormatWatermarkTime(result.Since),
		"stored":          haveStored,
		"lines":           result.Stats.LinesRead,
		"events_parsed":   result.EventsParsed,
		"events_reported": result.EventsReported,
	}).Info("upload log analyzed")
	log.WithFields(logrus.Fields{
		"malformed_headers": result.Stats.MalformedHeaders,
		"unmatched_adds":    result.Stats.UnmatchedAdds,
	}).Debug("skipped lines")

	report := output.NewReport(result)
	targets := output.StandardTargets(formatOptions(cfg), reportFiles(cfg))

	if opts.DryRun {
		if err := output.WriteAll(ctx, cmd.OutOrStdout(), report, targets); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
		log.Info("dry run; watermark left unchanged")
		return nil
	}

	paths, err := output.WriteFiles(ctx, cfg.OutputDir, report, targets)
	for _, p := range paths {
		log.WithField("path", p).Info("report written")
	}
	if err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	if opts.NoWatermarkUpdate {
		log.Info("watermark update disabled")
	} else {
		saveWatermark(log, store, result)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, report); err != nil {
			log.WithError(err).Warn("metrics not written")
		} else {
			log.WithField("path", cfg.MetricsFile).Debug("metrics written")
		}
	}

	sendWebhooks(ctx, log, cfg, report)

	return printSummary(ctx, cmd.OutOrStdout(), report, opts.Summary)
}

// saveWatermark records the run time. A read-only store is only a warning.
func saveWatermark(log *logrus.Entry, store *watermark.Store, result *analyzer.AnalysisResult) {
	next := result.NextWatermark()
	err := store.Save(next)
	switch {
	case errors.Is(err, watermark.ErrReadOnly):
		log.WithField("path", store.Path()).Warn("watermark not updated: file is read-only")
	case err != nil:
		log.WithError(err).Error("watermark not updated")
	default:
		log.WithField("watermark", parser.FormatWatermarkTime(next)).Info("watermark updated")
	}
}

// sendWebhooks posts the run summary to all configured webhooks.
// Failures are logged but don't fail the run.
func sendWebhooks(ctx context.Context, log *logrus.Entry, cfg *config.Config, report *output.Report) {
	if len(cfg.Webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range cfg.Webhooks {
		if !webhook.ShouldFire(wh.Trigger, report) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		entry := log.WithFields(logrus.Fields{"webhook": name, "duration": resp.Duration})
		if resp.Success() {
			entry.WithField("status", resp.StatusCode).Info("webhook sent")
		} else {
			entry.WithError(resp.Error).Warn("webhook failed")
		}
	}
}

func printSummary(ctx context.Context, w io.Writer, report *output.Report, format string) error {
	if format == "json" {
		return output.NewJSONFormatter(output.FormatOptions{Quiet: true}).Format(ctx, report, w)
	}

	s := report.Summary
	if !report.HasActivity() {
		_, err := fmt.Fprintf(w, "No new uploads since %s\n", parser.FormatWatermarkTime(report.Metadata.Since))
		return err
	}
	_, err := fmt.Fprintf(w, "%d items, %d pages, %s bytes in %d series by %d editor(s) since %s\n",
		s.Items, s.Pages, output.FormatCount(s.Bytes), s.Series, len(report.Editors),
		parser.FormatWatermarkTime(report.Metadata.Since))
	return err
}
