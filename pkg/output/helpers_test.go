package output

import (
	"testing"
	"time"

	"github.com/fanac/conlog/pkg/analyzer"
)

var fixtureLog = []string{
	"Uploaded ConInstance: Boskone:Boskone 11 [conpubs@fanac.org Friday February 5, 2021  10:00:00 AM]",
	"^^deltas by conpubs@fanac.org:",
	">>add: Source=a; Sitename=b; Display=Program Book.pdf; URL=c; Size=15.0; Pages=40;",
	"Uploaded ConInstance: Boskone:Boskone 2 [conpubs@fanac.org Friday February 5, 2021  10:05:00 AM]",
	">>add: Source=a; Sitename=b; Display=Flyer; Size=150; Pages=2;",
	"Uploaded ConInstance: zzTest:zzTest 1 [conpubs@fanac.org Friday February 5, 2021  10:10:00 AM]",
	">>add: Source=a; Sitename=b; Display=Scratch; Size=1.0;",
	"Uploaded ConInstance: Worldcon:Chicon 7 [cp-edie@fanac.org Friday February 5, 2021  11:00:00 AM]",
	"^^deltas by cp-edie@fanac.org:",
	">>add: Source=a; Sitename=b; Display=Souvenir Book.pdf; Size=2.0; Pages=100;",
}

const fixtureHeading = "February 03, 2021 -- March 01, 2021"

func testOptions() FormatOptions {
	return FormatOptions{
		SandboxPrefixes: []string{"xx", "yy", "zz"},
		FeaturedSeries:  "Worldcon",
		LinkBase:        "https://fanac.org/conpubs",
		DefaultScanner:  "Mark Olson",
	}
}

func fixtureReport(t *testing.T) *Report {
	t.Helper()
	now := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)
	a := analyzer.NewAnalyzer(
		analyzer.WithClock(func() time.Time { return now }),
		analyzer.WithRunID("test-run"),
	)
	return NewReport(a.AnalyzeLines(fixtureLog, "updatelog.txt"))
}

func emptyReport(t *testing.T) *Report {
	t.Helper()
	now := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)
	a := analyzer.NewAnalyzer(analyzer.WithClock(func() time.Time { return now }))
	return NewReport(a.AnalyzeLines(nil, "updatelog.txt"))
}
