// Package parser turns raw ConEditor upload-log lines into file-added events.
package parser

import "time"

// Event records one file added to one convention instance by one editor.
// Events are never modified after the parser emits them.
type Event struct {
	// Timestamp comes from the most recent instance header; zero when none was seen.
	Timestamp time.Time

	// EditorID is the raw editor id (the local part of the editor's address).
	EditorID string

	// Series is the convention series name, e.g. "Boskone".
	Series string

	// Instance is the convention instance name, e.g. "Boskone 42".
	Instance string

	// Item is the display name of the added file.
	Item string

	// Pages is the page count reported for the file, 0 when absent.
	Pages int

	// Bytes is the interpreted file size, 0 when absent.
	Bytes int64

	// LineNum is the 1-based line number of the add line.
	LineNum int
}

// HasTimestamp reports whether the event could be dated.
func (e *Event) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}

// ParseContext is the running scan state carried from header lines to
// subsequent add lines. The last header of each kind wins.
type ParseContext struct {
	Series    string
	Instance  string
	EditorID  string
	Timestamp time.Time

	// sawDelta is set once a "^^deltas by" marker has been seen; from then on
	// start markers no longer change the editor.
	sawDelta bool
}

// LogLine is a raw log line before parsing.
type LogLine struct {
	// Content is the raw line text with any trailing carriage return removed.
	Content string

	// Source names where this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// Stats counts what a parse pass saw.
type Stats struct {
	LinesRead        int
	Headers          int
	MalformedHeaders int
	EditorMarkers    int
	AddLines         int
	UnmatchedAdds    int
	Events           int
}
