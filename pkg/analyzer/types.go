// Package analyzer runs one pass of the upload-log pipeline: parse the log,
// keep what is newer than the watermark, and aggregate it per editor.
package analyzer

import (
	"time"

	"github.com/fanac/conlog/pkg/parser"
	"github.com/fanac/conlog/pkg/tally"
)

// AnalysisResult contains the complete analysis output.
type AnalysisResult struct {
	// Events are the reported events, in log order.
	Events []parser.Event

	// Aggregate holds the per-editor and total accumulators.
	Aggregate *tally.Result

	// Stats describes the parse pass.
	Stats parser.Stats

	// EventsParsed counts every event in the log.
	EventsParsed int

	// EventsReported counts the events newer than Since.
	EventsReported int

	// Since is the watermark (or epoch) the events were filtered against.
	Since time.Time

	// Now is the run time; it becomes the next watermark.
	Now time.Time

	// Metadata provides context about the run.
	Metadata AnalysisMetadata
}

// AnalysisMetadata provides context about the analysis run.
type AnalysisMetadata struct {
	// RunID identifies the run in logs and summaries.
	RunID string

	// Source names the log that was read.
	Source string

	// StartTime is when analysis began.
	StartTime time.Time

	// EndTime is when analysis completed.
	EndTime time.Time
}

// NextWatermark is the timestamp to persist after the run.
func (r *AnalysisResult) NextWatermark() time.Time {
	return r.Now
}

// HasActivity returns true if any events were reported.
func (r *AnalysisResult) HasActivity() bool {
	return r.EventsReported > 0
}
