// Package watermark limits reports to log activity newer than the previous
// run and persists the new high-water timestamp.
package watermark

import (
	"time"

	"github.com/fanac/conlog/pkg/parser"
)

// DefaultEpoch is when the current upload-log format began. Without a stored
// watermark, activity up to and including this instant is not reported.
var DefaultEpoch = time.Date(2021, time.February, 3, 0, 0, 0, 0, time.UTC)

// Filter returns the events strictly newer than since, in their original
// order. Events without a timestamp are always dropped. The input slice is
// not modified.
func Filter(events []parser.Event, since time.Time) []parser.Event {
	kept := make([]parser.Event, 0, len(events))
	for _, ev := range events {
		if !ev.HasTimestamp() {
			continue
		}
		if ev.Timestamp.After(since) {
			kept = append(kept, ev)
		}
	}
	return kept
}

// Since picks the lower bound for a run: the stored watermark when there is
// one, otherwise epoch.
func Since(stored time.Time, ok bool, epoch time.Time) time.Time {
	if ok {
		return stored
	}
	return epoch
}
