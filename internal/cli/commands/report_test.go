package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fanac/conlog/pkg/parser"
)

var reportNames = []string{
	"Con Series report.txt",
	"Con Instance report.txt",
	"Con detail report.txt",
	"Con detail report for Edie (old format).txt",
	"Con detail report for Edie.txt",
}

func TestRunReport_WritesReportsAndWatermark(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath)
	if err != nil {
		t.Fatalf("report failed: %v\nstderr: %s", err, stderr)
	}

	for _, name := range reportNames {
		if _, err := os.Stat(filepath.Join(env.outDir, name)); err != nil {
			t.Errorf("report %q not written: %v", name, err)
		}
	}

	series := readFile(t, filepath.Join(env.outDir, "Con Series report.txt"))
	if !strings.Contains(series, "Editor: Mark Olson\n   3 items,   42 pages,   16,777,366 bytes\n") {
		t.Errorf("unexpected series report:\n%s", series)
	}

	wm := strings.TrimSpace(readFile(t, env.watermark))
	if _, err := parser.ParseWatermarkTime(wm); err != nil {
		t.Errorf("watermark file holds %q: %v", wm, err)
	}

	if !strings.Contains(stdout, "4 items, 142 pages, 18,874,518 bytes in 3 series by 2 editor(s)") {
		t.Errorf("unexpected summary: %q", stdout)
	}
	if !strings.Contains(stderr, "run_id=") {
		t.Errorf("log lines should carry the run id:\n%s", stderr)
	}

	metrics := readFile(t, env.metrics)
	if !strings.Contains(metrics, "conlog_events_reported 4") {
		t.Errorf("unexpected metrics:\n%s", metrics)
	}
}

func TestRunReport_SecondRunReportsNothingNew(t *testing.T) {
	env := newTestEnv(t, "")

	if _, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath); err != nil {
		t.Fatalf("first run failed: %v\n%s", err, stderr)
	}

	stdout, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath)
	if err != nil {
		t.Fatalf("second run failed: %v\n%s", err, stderr)
	}
	if !strings.HasPrefix(stdout, "No new uploads since ") {
		t.Errorf("second run summary = %q", stdout)
	}

	series := readFile(t, filepath.Join(env.outDir, "Con Series report.txt"))
	if series != "" {
		t.Errorf("series report should be empty, got:\n%s", series)
	}
}

func TestRunReport_WatermarkPreservesComments(t *testing.T) {
	env := newTestEnv(t, "")
	writeFile(t, env.watermark, "# last run\n\nFebruary 01, 2021  09:00:00 AM\n")

	if _, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath); err != nil {
		t.Fatalf("report failed: %v\n%s", err, stderr)
	}

	lines := strings.Split(strings.TrimRight(readFile(t, env.watermark), "\n"), "\n")
	if len(lines) != 3 || lines[0] != "# last run" || lines[1] != "" {
		t.Fatalf("watermark file lines = %q", lines)
	}
	if lines[2] == "February 01, 2021  09:00:00 AM" {
		t.Error("watermark was not advanced")
	}
}

func TestRunReport_NoWatermarkUpdate(t *testing.T) {
	env := newTestEnv(t, "")
	writeFile(t, env.watermark, "February 01, 2021  09:00:00 AM\n")

	if _, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath, "--no-watermark-update"); err != nil {
		t.Fatalf("report failed: %v\n%s", err, stderr)
	}
	if got := readFile(t, env.watermark); got != "February 01, 2021  09:00:00 AM\n" {
		t.Errorf("watermark changed to %q", got)
	}
}

func TestRunReport_FiltersByStoredWatermark(t *testing.T) {
	env := newTestEnv(t, "")
	writeFile(t, env.watermark, "February 05, 2021  10:30:00 AM\n")

	stdout, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath, "--summary", "json")
	if err != nil {
		t.Fatalf("report failed: %v\n%s", err, stderr)
	}

	var summary struct {
		Items          int `json:"items"`
		EventsParsed   int `json:"events_parsed"`
		EventsReported int `json:"events_reported"`
	}
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("summary is not JSON: %v\n%s", err, stdout)
	}
	if summary.EventsParsed != 4 || summary.EventsReported != 1 || summary.Items != 1 {
		t.Errorf("summary = %+v", summary)
	}

	detail := readFile(t, filepath.Join(env.outDir, "Con detail report.txt"))
	if strings.Contains(detail, "Mark Olson") || !strings.Contains(detail, "Edie Stern") {
		t.Errorf("detail report should only list Edie's upload:\n%s", detail)
	}
}

func TestRunReport_DryRun(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath, "--dry-run")
	if err != nil {
		t.Fatalf("report failed: %v\n%s", err, stderr)
	}

	for _, name := range reportNames {
		if !strings.Contains(stdout, "===== "+name+" =====\n") {
			t.Errorf("dry run output missing banner for %q", name)
		}
		if _, err := os.Stat(filepath.Join(env.outDir, name)); !os.IsNotExist(err) {
			t.Errorf("dry run wrote %q", name)
		}
	}
	if _, err := os.Stat(env.watermark); !os.IsNotExist(err) {
		t.Error("dry run created the watermark file")
	}
}

func TestRunReport_SourceAndOutputOverrides(t *testing.T) {
	env := newTestEnv(t, "")
	other := filepath.Join(env.dir, "other.txt")
	writeFile(t, other, strings.SplitN(fixtureLog, "Uploaded ConInstance: Boskone:Boskone 2", 2)[0])
	outDir := t.TempDir()

	stdout, stderr, err := execute(t, NewReportCommand(),
		"--config", env.configPath, "--source", other, "--output-dir", outDir)
	if err != nil {
		t.Fatalf("report failed: %v\n%s", err, stderr)
	}
	if !strings.HasPrefix(stdout, "1 items, 40 pages") {
		t.Errorf("summary = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(outDir, "Con Series report.txt")); err != nil {
		t.Errorf("report not written to override dir: %v", err)
	}
}

func TestRunReport_Webhooks(t *testing.T) {
	var mu sync.Mutex
	var bodies []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	env := newTestEnv(t, `webhooks:
  - name: activity
    url: "`+server.URL+`/activity"
  - name: never
    url: "`+server.URL+`/never"
    trigger: never
`)

	if _, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath); err != nil {
		t.Fatalf("report failed: %v\n%s", err, stderr)
	}
	// Nothing new on the second run, so the on_activity hook stays quiet.
	if _, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath); err != nil {
		t.Fatalf("report failed: %v\n%s", err, stderr)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 1 {
		t.Fatalf("webhook calls = %d, want 1", len(bodies))
	}
	if !strings.Contains(bodies[0], `"events_reported":4`) {
		t.Errorf("unexpected payload: %s", bodies[0])
	}
}

func TestRunReport_WebhookFailureDoesNotFailRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	env := newTestEnv(t, "webhooks:\n  - url: \""+server.URL+"\"\n")

	_, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(stderr, "webhook failed") {
		t.Errorf("expected a webhook warning in the log:\n%s", stderr)
	}
}

func TestRunReport_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(env *testEnv) []string
	}{
		{"missing log", func(env *testEnv) []string {
			return []string{"--config", env.configPath, "--source", filepath.Join(env.dir, "missing.txt")}
		}},
		{"missing output dir", func(env *testEnv) []string {
			return []string{"--config", env.configPath, "--output-dir", filepath.Join(env.dir, "nope")}
		}},
		{"bad summary format", func(env *testEnv) []string {
			return []string{"--config", env.configPath, "--summary", "yaml"}
		}},
		{"bad log level", func(env *testEnv) []string {
			return []string{"--config", env.configPath, "--log-level", "loud"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			if _, _, err := execute(t, NewReportCommand(), tt.args(env)...); err == nil {
				t.Error("expected error")
			}
			if _, err := os.Stat(env.watermark); !os.IsNotExist(err) {
				t.Error("a failed run must not touch the watermark")
			}
		})
	}
}

func TestRunReport_MalformedWatermark(t *testing.T) {
	env := newTestEnv(t, "")
	writeFile(t, env.watermark, "yesterday-ish\n")

	if _, _, err := execute(t, NewReportCommand(), "--config", env.configPath); err == nil {
		t.Error("expected error for unreadable watermark")
	}
}

func TestRunReport_FTPConnectFailure(t *testing.T) {
	env := newTestEnv(t, "")
	creds := filepath.Join(env.dir, "creds.json")
	writeFile(t, creds, `{"HOST": "127.0.0.1:1", "ID": "conpubs", "PW": "x"}`)
	writeFile(t, env.configPath, `log_source:
  type: ftp
  path: updatelog.txt
  credentials: "`+creds+`"
  timeout: 2s
watermark_file: "`+env.watermark+`"
output_dir: "`+env.outDir+`"
`)

	_, stderr, err := execute(t, NewReportCommand(), "--config", env.configPath)
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !strings.Contains(stderr, "cannot reach the log source") {
		t.Errorf("expected a logged diagnostic:\n%s", stderr)
	}
	entries, _ := os.ReadDir(env.outDir)
	if len(entries) != 0 {
		t.Errorf("no reports should be written, found %d files", len(entries))
	}
}
