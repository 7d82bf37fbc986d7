// Package output renders aggregated upload activity as text and HTML reports.
package output

import (
	"time"

	"github.com/fanac/conlog/pkg/analyzer"
	"github.com/fanac/conlog/pkg/tally"
)

// Report is the complete output of one run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Editors breaks the summary down per editor, in first-seen order.
	Editors []EditorSummary `json:"editors"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`

	result *tally.Result
}

// Summary provides aggregate statistics.
type Summary struct {
	Items  int   `json:"items"`
	Pages  int   `json:"pages"`
	Bytes  int64 `json:"bytes"`
	Series int   `json:"series"`

	// LinesRead is the number of log lines scanned.
	LinesRead int `json:"lines_read"`

	// EventsParsed counts every add event in the log.
	EventsParsed int `json:"events_parsed"`

	// EventsReported counts the events newer than the watermark.
	EventsReported int `json:"events_reported"`

	// SkippedLines counts malformed headers and unrecognised add lines.
	SkippedLines int `json:"skipped_lines"`
}

// EditorSummary is one editor's share of the run.
type EditorSummary struct {
	Name   string   `json:"name"`
	Items  int      `json:"items"`
	Pages  int      `json:"pages"`
	Bytes  int64    `json:"bytes"`
	Series []string `json:"series"`
}

// Metadata provides context about the run.
type Metadata struct {
	RunID    string        `json:"run_id,omitempty"`
	Source   string        `json:"source"`
	Since    time.Time     `json:"since"`
	Now      time.Time     `json:"now"`
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from an analysis result.
func NewReport(result *analyzer.AnalysisResult) *Report {
	agg := result.Aggregate
	report := &Report{
		Summary: Summary{
			Items:          agg.Total.ItemCount(),
			Pages:          agg.Total.Pages,
			Bytes:          agg.Total.Bytes,
			Series:         len(agg.Total.Tally.SeriesNames()),
			LinesRead:      result.Stats.LinesRead,
			EventsParsed:   result.EventsParsed,
			EventsReported: result.EventsReported,
			SkippedLines:   result.Stats.MalformedHeaders + result.Stats.UnmatchedAdds,
		},
		Editors: make([]EditorSummary, 0, len(agg.Editors)),
		Metadata: Metadata{
			RunID:    result.Metadata.RunID,
			Source:   result.Metadata.Source,
			Since:    result.Since,
			Now:      result.Now,
			Duration: result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
		result: agg,
	}

	for _, name := range agg.Editors {
		acc := agg.ByEditor[name]
		report.Editors = append(report.Editors, EditorSummary{
			Name:   name,
			Items:  acc.ItemCount(),
			Pages:  acc.Pages,
			Bytes:  acc.Bytes,
			Series: acc.Tally.SeriesNames(),
		})
	}

	return report
}

// Aggregate returns the accumulators the report was built from.
func (r *Report) Aggregate() *tally.Result {
	return r.result
}

// HasActivity returns true if any new uploads were reported.
func (r *Report) HasActivity() bool {
	return r.Summary.EventsReported > 0
}
