package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fanac/conlog/pkg/config"
	"github.com/fanac/conlog/pkg/parser"
	"github.com/fanac/conlog/pkg/source"
	"github.com/fanac/conlog/pkg/watermark"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	ConfigPath string
	Verbose    bool
}

// Diagnostic statuses.
const (
	statusOK      = "ok"
	statusWarning = "warning"
	statusError   = "error"
)

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose common setup issues",
		Long: `Diagnose common setup issues before a report run.

This command checks:
- Config file syntax and structure
- Log source accessibility (local file or FTP credentials)
- How much of a local log the parser recognises
- Watermark file readability and writability
- Output directory
- Webhook configuration (and reachability with -v)

Exits with code 1 when any check fails.

Example:
  conlog diagnose -c conlog.yaml
  conlog diagnose -v -c conlog.yaml  # verbose output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(commandContext(cmd), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (defaults are used when omitted)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	cfg, result := checkConfig(ctx, opts.ConfigPath)
	results = append(results, result)
	if result.Status == statusError {
		return finishDiagnostics(w, results, opts)
	}

	results = append(results, checkLogSource(ctx, cfg)...)
	results = append(results, checkWatermark(cfg))
	results = append(results, checkOutputDir(cfg))
	results = append(results, checkWebhooks(cfg, opts)...)

	return finishDiagnostics(w, results, opts)
}

func finishDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) error {
	printDiagnostics(w, results, opts)
	for _, r := range results {
		if r.Status == statusError {
			ExitCode = 1
			break
		}
	}
	return nil
}

func checkConfig(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config",
	}

	if path != "" {
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			result.Status = statusError
			result.Message = fmt.Sprintf("Config file not found: %s", path)
			result.Suggests = []string{"Check the file path, or omit --config to use the built-in defaults"}
			return nil, result
		case err != nil:
			result.Status = statusError
			result.Message = fmt.Sprintf("Cannot access config file: %v", err)
			result.Suggests = []string{"Check file permissions"}
			return nil, result
		case info.IsDir():
			result.Status = statusError
			result.Message = "Path is a directory, not a file"
			return nil, result
		}
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = statusError
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = statusOK
	if path == "" {
		result.Message = "Using built-in defaults"
	} else {
		result.Message = fmt.Sprintf("Loaded %s", path)
	}
	result.Details = []string{
		fmt.Sprintf("Log source: %s %s", cfg.LogSource.Type, cfg.LogSource.Path),
		fmt.Sprintf("Editors: %d", len(cfg.Editors)),
	}
	return cfg, result
}

func checkLogSource(ctx context.Context, cfg *config.Config) []DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Log Source: %s", cfg.LogSource.Path),
	}

	if cfg.LogSource.Type == config.SourceTypeFTP {
		creds, err := source.LoadCredentials(cfg.LogSource.Credentials)
		if err != nil {
			result.Status = statusError
			result.Message = err.Error()
			result.Suggests = []string{
				`The credentials file is JSON: {"HOST": "...", "ID": "...", "PW": "..."}`,
			}
			return []DiagnosticResult{result}
		}
		result.Status = statusOK
		result.Message = fmt.Sprintf("FTP credentials for %s@%s", creds.User, creds.Host)
		result.Details = []string{"Connectivity is tested by a report run"}
		return []DiagnosticResult{result}
	}

	info, err := os.Stat(cfg.LogSource.Path)
	if err != nil {
		result.Status = statusError
		result.Message = fmt.Sprintf("Cannot access log file: %v", err)
		return []DiagnosticResult{result}
	}
	if info.IsDir() {
		result.Status = statusError
		result.Message = "Path is a directory, not a file"
		return []DiagnosticResult{result}
	}
	result.Status = statusOK
	result.Message = fmt.Sprintf("Found (%d bytes)", info.Size())

	return []DiagnosticResult{result, checkLogContent(ctx, cfg.LogSource.Path)}
}

// checkLogContent parses a local log and reports how much was recognised.
func checkLogContent(ctx context.Context, path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Log Content",
	}

	src, err := parser.OpenFileSource(path)
	if err != nil {
		result.Status = statusError
		result.Message = err.Error()
		return result
	}
	defer src.Close()

	events, stats, err := parser.NewParser().Parse(ctx, src)
	if err != nil {
		result.Status = statusError
		result.Message = fmt.Sprintf("Failed to read log: %v", err)
		return result
	}

	result.Details = []string{
		fmt.Sprintf("Lines: %d", stats.LinesRead),
		fmt.Sprintf("Instance headers: %d (%d malformed)", stats.Headers, stats.MalformedHeaders),
		fmt.Sprintf("Editor markers: %d", stats.EditorMarkers),
		fmt.Sprintf("Add lines: %d (%d unrecognised)", stats.AddLines, stats.UnmatchedAdds),
	}

	undated := 0
	for i := range events {
		if !events[i].HasTimestamp() {
			undated++
		}
	}

	switch {
	case len(events) == 0:
		result.Status = statusWarning
		result.Message = "No add events found"
		result.Suggests = []string{"Check that this is a ConEditor upload log"}
	case stats.MalformedHeaders > 0 || stats.UnmatchedAdds > 0 || undated > 0:
		result.Status = statusWarning
		result.Message = fmt.Sprintf("%d events; %d malformed headers, %d unrecognised add lines, %d undated events",
			len(events), stats.MalformedHeaders, stats.UnmatchedAdds, undated)
		result.Suggests = []string{"Run 'conlog parse <log-file>' to see how each line was read"}
	default:
		result.Status = statusOK
		result.Message = fmt.Sprintf("%d events parsed", len(events))
	}
	return result
}

func checkWatermark(cfg *config.Config) DiagnosticResult {
	store := watermark.NewStore(cfg.WatermarkFile)
	result := DiagnosticResult{
		Check: fmt.Sprintf("Watermark: %s", store.Path()),
	}

	ts, ok, err := store.Load()
	if err != nil {
		result.Status = statusError
		result.Message = err.Error()
		result.Suggests = []string{"Use 'conlog watermark set' or 'conlog watermark reset' to repair it"}
		return result
	}

	if ok {
		result.Message = fmt.Sprintf("Last run %s", parser.FormatWatermarkTime(ts))
	} else {
		result.Message = fmt.Sprintf("No watermark stored; reports start from %s", parser.FormatWatermarkTime(cfg.EpochTime()))
	}

	result.Status = statusOK
	if !store.Writable() {
		result.Status = statusWarning
		result.Details = []string{"File is read-only; runs will not advance the watermark"}
	}
	return result
}

func checkOutputDir(cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Output Directory: %s", cfg.OutputDir),
	}

	info, err := os.Stat(cfg.OutputDir)
	switch {
	case err != nil:
		result.Status = statusError
		result.Message = fmt.Sprintf("Cannot access: %v", err)
		result.Suggests = []string{"Create the directory or set output_dir"}
	case !info.IsDir():
		result.Status = statusError
		result.Message = "Not a directory"
	default:
		result.Status = statusOK
		result.Message = "Exists"
	}
	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== conlog Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case statusOK:
			icon = "PASS"
			okCount++
		case statusWarning:
			icon = "WARN"
			warnCount++
		case statusError:
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != statusOK {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running a report.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nSetup is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nSetup looks good!")
	}
}

func checkWebhooks(cfg *config.Config, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	if len(cfg.Webhooks) == 0 {
		if opts.Verbose {
			results = append(results, DiagnosticResult{
				Check:   "Webhooks",
				Status:  statusOK,
				Message: "No webhooks configured (optional)",
			})
		}
		return results
	}

	for _, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		// URL and trigger were validated when the config loaded.
		result := DiagnosticResult{
			Check:   fmt.Sprintf("Webhook: %s", name),
			Status:  statusOK,
			Message: fmt.Sprintf("Trigger: %s", wh.Trigger),
		}

		if strings.HasPrefix(wh.Token, "$") {
			result.Status = statusWarning
			result.Message = "Token appears to be an unresolved env var"
			result.Details = []string{wh.Token}
		} else if opts.Verbose {
			result.Details = []string{
				fmt.Sprintf("URL: %s", wh.URL),
				fmt.Sprintf("Timeout: %s", wh.Timeout),
			}
			if wh.Token != "" {
				result.Details = append(result.Details, "Token: configured")
			}
		}
		results = append(results, result)

		if opts.Verbose {
			conn := checkWebhookConnectivity(wh)
			conn.Check = fmt.Sprintf("Webhook Connectivity: %s", name)
			results = append(results, conn)
		}
	}

	return results
}

func checkWebhookConnectivity(wh config.WebhookConfig) DiagnosticResult {
	result := DiagnosticResult{}

	// A HEAD request is enough to see if the endpoint is reachable.
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	req, err := http.NewRequest(http.MethodHead, wh.URL, nil)
	if err != nil {
		result.Status = statusWarning
		result.Message = fmt.Sprintf("Cannot create request: %v", err)
		return result
	}

	if wh.Token != "" {
		req.Header.Set("Authorization", "Bearer "+wh.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Status = statusWarning
		result.Message = fmt.Sprintf("Cannot connect: %v", err)
		result.Suggests = []string{
			"Check if the webhook URL is correct",
			"Verify network connectivity",
		}
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Status = statusOK
		result.Message = fmt.Sprintf("Reachable (status %d)", resp.StatusCode)
	} else {
		result.Status = statusWarning
		result.Message = fmt.Sprintf("Reachable but returned status %d", resp.StatusCode)
		result.Suggests = []string{
			"The endpoint may require POST method (will work during an actual run)",
			"Check authentication if using a token",
		}
	}

	return result
}
