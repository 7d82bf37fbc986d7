package output

import (
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fanac/conlog/pkg/tally"
)

// DateLayout is used for the date range heading every report.
const DateLayout = "January 02, 2006"

var numberPrinter = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 15,728,640.
func FormatCount(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// dateRange renders "<since> -- <now>".
func dateRange(since, now time.Time) string {
	return since.Format(DateLayout) + " -- " + now.Format(DateLayout)
}

// countsLine renders the per-editor totals line.
func countsLine(acc *tally.Accumulator) string {
	return fmt.Sprintf("   %d items,   %d pages,   %s bytes", acc.ItemCount(), acc.Pages, FormatCount(acc.Bytes))
}

// StripExtension drops a trailing file extension. A name whose only dot is
// its first character, such as ".hidden", is left alone.
func StripExtension(name string) string {
	ext := path.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	trimmed := strings.TrimSuffix(name, ext)
	if strings.Trim(trimmed, ".") == "" {
		return name
	}
	return trimmed
}

// joinItems strips extensions and joins items with ", ".
func joinItems(items []string) string {
	stripped := make([]string, len(items))
	for i, item := range items {
		stripped[i] = StripExtension(item)
	}
	return strings.Join(stripped, ", ")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML escapes the characters that would break report markup.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
