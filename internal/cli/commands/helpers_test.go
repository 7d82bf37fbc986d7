package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

var fixtureLog = strings.Join([]string{
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
}, "\n") + "\n"

// testEnv is a scratch directory holding a log, a config and an output dir.
type testEnv struct {
	dir        string
	logPath    string
	configPath string
	outDir     string
	watermark  string
	metrics    string
}

func newTestEnv(t *testing.T, extraConfig string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		logPath:    filepath.Join(dir, "updatelog.txt"),
		configPath: filepath.Join(dir, "conlog.yaml"),
		outDir:     filepath.Join(dir, "reports"),
		watermark:  filepath.Join(dir, "Last time.txt"),
		metrics:    filepath.Join(dir, "conlog.prom"),
	}

	writeFile(t, env.logPath, fixtureLog)
	if err := os.Mkdir(env.outDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := `log_source:
  type: file
  path: "` + env.logPath + `"
watermark_file: "` + env.watermark + `"
output_dir: "` + env.outDir + `"
metrics_file: "` + env.metrics + `"
` + extraConfig
	writeFile(t, env.configPath, cfg)
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// execute runs cmd with args and returns its stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
