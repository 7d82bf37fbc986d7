package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fanac/conlog/pkg/parser"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Output string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <log-file>",
		Short: "Print the add events found in an upload log",
		Long: `Parse a local upload log and print every add event it contains, with the
series, instance, editor and timestamp it was attributed to. No watermark
filtering is applied.

Line statistics, including malformed headers and unrecognised add lines,
are printed to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

// eventJSON is the parse command's JSON shape for an event.
type eventJSON struct {
	Line      int        `json:"line"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Editor    string     `json:"editor"`
	Series    string     `json:"series"`
	Instance  string     `json:"instance"`
	Item      string     `json:"item"`
	Pages     int        `json:"pages"`
	Bytes     int64      `json:"bytes"`
}

func runParse(cmd *cobra.Command, path string, opts *ParseOptions) error {
	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	src, err := parser.OpenFileSource(path)
	if err != nil {
		return err
	}
	defer src.Close()

	events, stats, err := parser.NewParser().Parse(commandContext(cmd), src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if opts.Output == "json" {
		err = writeEventsJSON(cmd.OutOrStdout(), events)
	} else {
		err = writeEventsText(cmd.OutOrStdout(), events)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(),
		"%d lines, %d headers (%d malformed), %d editor markers, %d add lines (%d unrecognised), %d events\n",
		stats.LinesRead, stats.Headers, stats.MalformedHeaders, stats.EditorMarkers,
		stats.AddLines, stats.UnmatchedAdds, stats.Events)
	return nil
}

func writeEventsText(w io.Writer, events []parser.Event) error {
	for _, e := range events {
		ts := "-"
		if e.HasTimestamp() {
			ts = parser.FormatWatermarkTime(e.Timestamp)
		}
		editor := e.EditorID
		if editor == "" {
			editor = "-"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s / %s\t%s\t%d pages\t%d bytes\n",
			e.LineNum, ts, editor, e.Series, e.Instance, e.Item, e.Pages, e.Bytes); err != nil {
			return err
		}
	}
	return nil
}

func writeEventsJSON(w io.Writer, events []parser.Event) error {
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		ej := eventJSON{
			Line:     e.LineNum,
			Editor:   e.EditorID,
			Series:   e.Series,
			Instance: e.Instance,
			Item:     e.Item,
			Pages:    e.Pages,
			Bytes:    e.Bytes,
		}
		if e.HasTimestamp() {
			ts := e.Timestamp
			ej.Timestamp = &ts
		}
		out = append(out, ej)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
