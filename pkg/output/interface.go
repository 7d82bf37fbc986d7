package output

import (
	"context"
	"io"
)

// Formatter renders a report in a specific layout.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name.
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// SandboxPrefixes hide test series from the Edie reports.
	SandboxPrefixes []string

	// FeaturedSeries sorts first in the Edie report.
	FeaturedSeries string

	// LinkBase is the site root that series and instance links hang off.
	LinkBase string

	// DefaultScanner is credited in the Edie report preamble.
	DefaultScanner string

	// Quiet limits the JSON summary to totals.
	Quiet bool
}
