package output

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fanac/conlog/pkg/tally"
)

// Report names, also used as the keys of the report file table.
const (
	NameSeries   = "series"
	NameInstance = "instance"
	NameDetail   = "detail"
	NameEdieOld  = "edie-old"
	NameEdie     = "edie"
)

// editorReport renders one section per editor.
type editorReport struct {
	name    string
	opts    FormatOptions
	section func(b *strings.Builder, heading, editor string, acc *tally.Accumulator)
}

func (f *editorReport) Name() string {
	return f.name
}

func (f *editorReport) Format(_ context.Context, report *Report, w io.Writer) error {
	var b strings.Builder
	agg := report.Aggregate()
	heading := dateRange(report.Metadata.Since, report.Metadata.Now)
	for _, editor := range agg.Editors {
		f.section(&b, heading, editor, agg.ByEditor[editor])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// NewSeriesFormatter lists the convention series each editor touched.
func NewSeriesFormatter(opts FormatOptions) Formatter {
	f := &editorReport{name: NameSeries, opts: opts}
	f.section = func(b *strings.Builder, heading, editor string, acc *tally.Accumulator) {
		writePlainHeading(b, heading, editor, acc)
		b.WriteString("Convention series updated: ")
		b.WriteString(strings.Join(acc.Tally.SeriesNames(), ", "))
		b.WriteString("\n\n")
	}
	return f
}

// NewInstanceFormatter lists each editor's series with their instances.
func NewInstanceFormatter(opts FormatOptions) Formatter {
	f := &editorReport{name: NameInstance, opts: opts}
	f.section = func(b *strings.Builder, heading, editor string, acc *tally.Accumulator) {
		writePlainHeading(b, heading, editor, acc)
		b.WriteString("Conventions updated: ")
		for _, series := range acc.Tally.SeriesNames() {
			b.WriteString(series + ": ")
			b.WriteString(strings.Join(SortInstances(acc.Tally.InstanceNames(series)), ", "))
			b.WriteString("\n")
		}
		b.WriteString("\n\n")
	}
	return f
}

// NewDetailFormatter lists every file each editor added.
func NewDetailFormatter(opts FormatOptions) Formatter {
	f := &editorReport{name: NameDetail, opts: opts}
	f.section = func(b *strings.Builder, heading, editor string, acc *tally.Accumulator) {
		writePlainHeading(b, heading, editor, acc)
		b.WriteString("Conventions updated: \n")
		for _, series := range acc.Tally.SeriesNames() {
			b.WriteString(series + ": \n")
			for _, instance := range SortInstances(acc.Tally.InstanceNames(series)) {
				b.WriteString("   " + instance + " -- ")
				b.WriteString(joinItems(acc.Tally.Items(series, instance)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n\n")
	}
	return f
}

// NewEdieOldFormatter renders the per-editor HTML detail report in the
// older paragraph-based layout.
func NewEdieOldFormatter(opts FormatOptions) Formatter {
	f := &editorReport{name: NameEdieOld, opts: opts}
	f.section = func(b *strings.Builder, heading, editor string, acc *tally.Accumulator) {
		b.WriteString(heading + "<p><p>\n\n")
		b.WriteString("Editor: " + escapeHTML(editor) + "<p>\n")
		b.WriteString(countsLine(acc) + "<p>\n")
		b.WriteString("Conventions updated: <p>\n")
		for _, series := range acc.Tally.SeriesNames() {
			if IsSandbox(series, f.opts.SandboxPrefixes) {
				continue
			}
			b.WriteString(link(seriesURL(f.opts.LinkBase, series), series) + ":<p>\n")
			for _, instance := range SortInstances(acc.Tally.InstanceNames(series)) {
				b.WriteString("   For " + escapeHTML(instance) + ", added ")
				b.WriteString(escapeHTML(joinItems(acc.Tally.Items(series, instance))))
				b.WriteString("<p>\n")
			}
			b.WriteString("<p>\n")
		}
		b.WriteString("<p><p>\n\n")
	}
	return f
}

func writePlainHeading(b *strings.Builder, heading, editor string, acc *tally.Accumulator) {
	b.WriteString(heading + "\n\n")
	b.WriteString("Editor: " + editor + "\n")
	b.WriteString(countsLine(acc) + "\n")
}

// EdieFormatter renders the merged HTML report published on the site.
// Series with a single instance collapse into that instance's line.
type EdieFormatter struct {
	opts FormatOptions
}

// NewEdieFormatter creates the merged HTML report formatter.
func NewEdieFormatter(opts FormatOptions) *EdieFormatter {
	return &EdieFormatter{opts: opts}
}

// Name returns the format name.
func (f *EdieFormatter) Name() string {
	return NameEdie
}

// Format renders the merged totals of every editor.
func (f *EdieFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	var b strings.Builder
	total := report.Aggregate().Total.Tally

	b.WriteString(dateRange(report.Metadata.Since, report.Metadata.Now) + "<p><p>\n\n")
	fmt.Fprintf(&b, "Conpubs: Unless otherwise noted, all scans are by %s.<br>\n", escapeHTML(f.opts.DefaultScanner))

	for _, series := range SortFeaturedFirst(total.SeriesNames(), f.opts.FeaturedSeries) {
		if IsSandbox(series, f.opts.SandboxPrefixes) {
			continue
		}
		instances := SortInstances(total.InstanceNames(series))
		if len(instances) == 1 {
			instance := instances[0]
			b.WriteString("--" + link(instanceURL(f.opts.LinkBase, series, instance), instance) + " added ")
			b.WriteString(escapeHTML(joinItems(total.Items(series, instance))))
			b.WriteString("<br>\n<br>\n")
			continue
		}

		b.WriteString("--" + link(seriesURL(f.opts.LinkBase, series), series) + ":<br>\n")
		for _, instance := range instances {
			b.WriteString("---" + escapeHTML(instance) + " added ")
			b.WriteString(escapeHTML(joinItems(total.Items(series, instance))))
			b.WriteString("<br>\n")
		}
		b.WriteString("<br>\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func seriesURL(base, series string) string {
	return base + "/" + url.PathEscape(series)
}

func instanceURL(base, series, instance string) string {
	return seriesURL(base, series) + "/" + url.PathEscape(instance)
}

func link(href, label string) string {
	return `<a href="` + href + `">` + escapeHTML(label) + "</a>"
}
