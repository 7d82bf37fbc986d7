package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/fanac/conlog/pkg/parser"
	"github.com/fanac/conlog/pkg/tally"
	"github.com/fanac/conlog/pkg/watermark"
)

// Analyzer orchestrates parsing, watermark filtering and aggregation.
type Analyzer struct {
	parser *parser.Parser
	names  tally.EditorNames

	// Options
	epoch      time.Time
	stored     time.Time
	haveStored bool
	clock      func() time.Time
	runID      string
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithEditorNames sets the editor id -> display name table.
func WithEditorNames(names tally.EditorNames) AnalyzerOption {
	return func(a *Analyzer) {
		a.names = names
	}
}

// WithEpoch sets the lower bound used when there is no stored watermark.
func WithEpoch(epoch time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.epoch = epoch
	}
}

// WithWatermark supplies the watermark loaded from the store. ok=false means
// none was stored.
func WithWatermark(ts time.Time, ok bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.stored, a.haveStored = ts, ok
	}
}

// WithClock overrides the source of the current time.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.clock = now
	}
}

// WithRunID tags the result with a run identifier.
func WithRunID(id string) AnalyzerOption {
	return func(a *Analyzer) {
		a.runID = id
	}
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		parser: parser.NewParser(),
		names:  tally.DefaultEditorNames(),
		epoch:  watermark.DefaultEpoch,
		clock:  time.Now,
	}

	// Apply options
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze reads src to the end and aggregates the events newer than the
// watermark.
func (a *Analyzer) Analyze(ctx context.Context, src parser.LineSource, sourceName string) (*AnalysisResult, error) {
	start := time.Now()

	events, stats, err := a.parser.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", sourceName, err)
	}

	result := a.summarize(events, stats)
	result.Metadata = AnalysisMetadata{
		RunID:     a.runID,
		Source:    sourceName,
		StartTime: start,
		EndTime:   time.Now(),
	}
	return result, nil
}

// AnalyzeLines is Analyze over lines already in memory.
func (a *Analyzer) AnalyzeLines(lines []string, sourceName string) *AnalysisResult {
	start := time.Now()

	events, stats := a.parser.ParseLines(lines)
	result := a.summarize(events, stats)
	result.Metadata = AnalysisMetadata{
		RunID:     a.runID,
		Source:    sourceName,
		StartTime: start,
		EndTime:   time.Now(),
	}
	return result
}

func (a *Analyzer) summarize(events []parser.Event, stats parser.Stats) *AnalysisResult {
	since := watermark.Since(a.stored, a.haveStored, a.epoch)
	reported := watermark.Filter(events, since)

	return &AnalysisResult{
		Events:         reported,
		Aggregate:      tally.NewAggregator(a.names).Aggregate(reported),
		Stats:          stats,
		EventsParsed:   len(events),
		EventsReported: len(reported),
		Since:          since,
		Now:            wallClock(a.clock()),
	}
}

// wallClock drops the location and sub-second part of t, keeping its wall
// clock reading. Log and watermark timestamps carry no zone, so they are
// compared as wall-clock times in UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
