package commands

import (
	"strings"
	"testing"
)

func TestNewReportCommand(t *testing.T) {
	cmd := NewReportCommand()

	if cmd.Use != "report" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"config", "log-level", "log-format", "source", "output-dir", "no-watermark-update", "dry-run", "summary"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, NewVersionCommand())
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "conlog "+Version+"\n" {
		t.Errorf("version output = %q", stdout)
	}
}

func TestRunValidate_Success(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, _, err := execute(t, NewValidateCommand(), "--config", env.configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	for _, want := range []string{"Configuration valid!", "file " + env.logPath, "Con detail report for Edie.txt"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunValidate_Defaults(t *testing.T) {
	stdout, _, err := execute(t, NewValidateCommand())
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(stdout, "built-in defaults") || !strings.Contains(stdout, "ftp updatelog.txt") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	env := newTestEnv(t, "")
	writeFile(t, env.configPath, "invalid: yaml: content")

	if _, _, err := execute(t, NewValidateCommand(), "--config", env.configPath); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestRunValidate_BadSettings(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{"bad epoch", "epoch: 02/03/2021\n"},
		{"path as report name", "reports:\n  series: reports/series.txt\n"},
		{"bad webhook", "webhooks:\n  - url: ftp://example.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.extra)
			if _, _, err := execute(t, NewValidateCommand(), "--config", env.configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	if _, _, err := execute(t, NewValidateCommand(), "--config", "/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
