package parser

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts used by the upload log and the watermark store.
const (
	// HeaderLayout parses the date in an instance header once its
	// whitespace has been collapsed, e.g. "Wednesday February 3, 2021 10:00:00 AM".
	HeaderLayout = "Monday January 2, 2006 3:04:05 PM"

	// WatermarkLayout is how watermark timestamps are written.
	WatermarkLayout = "January 02, 2006  03:04:05 PM"

	// watermarkParseLayout parses a watermark line after whitespace collapsing.
	watermarkParseLayout = "January 2, 2006 3:04:05 PM"

	// headerDateTokens is the number of whitespace-separated tokens that make
	// up the header date; anything after them is ignored.
	headerDateTokens = 6
)

// ParseHeaderTime parses the date portion of an instance header. Only the
// first six whitespace-separated tokens are used, so trailing text and runs
// of spaces are tolerated.
func ParseHeaderTime(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) < headerDateTokens {
		return time.Time{}, fmt.Errorf("header date %q: want %d fields, got %d", s, headerDateTokens, len(fields))
	}

	joined := strings.Join(fields[:headerDateTokens], " ")
	ts, err := time.Parse(HeaderLayout, joined)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing header date %q: %w", joined, err)
	}
	return ts, nil
}

// ParseWatermarkTime parses a watermark line such as
// "February 03, 2021  10:00:00 AM".
func ParseWatermarkTime(s string) (time.Time, error) {
	joined := strings.Join(strings.Fields(s), " ")
	ts, err := time.Parse(watermarkParseLayout, joined)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing watermark %q: %w", s, err)
	}
	return ts, nil
}

// FormatWatermarkTime renders t the way the watermark store records it.
func FormatWatermarkTime(t time.Time) string {
	return t.Format(WatermarkLayout)
}
