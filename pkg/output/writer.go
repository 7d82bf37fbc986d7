package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Target pairs a formatter with the file name it is written to.
type Target struct {
	Formatter Formatter
	File      string
}

// StandardTargets returns the five reports with their file names.
// files is keyed by report name (NameSeries, NameInstance, ...).
func StandardTargets(opts FormatOptions, files map[string]string) []Target {
	return []Target{
		{Formatter: NewSeriesFormatter(opts), File: files[NameSeries]},
		{Formatter: NewInstanceFormatter(opts), File: files[NameInstance]},
		{Formatter: NewDetailFormatter(opts), File: files[NameDetail]},
		{Formatter: NewEdieOldFormatter(opts), File: files[NameEdieOld]},
		{Formatter: NewEdieFormatter(opts), File: files[NameEdie]},
	}
}

// WriteFiles renders every target into dir and returns the paths written.
// All reports are rendered before any file is touched; on a write failure
// the error names the file, and the paths already written are returned.
func WriteFiles(ctx context.Context, dir string, report *Report, targets []Target) ([]string, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output directory %s: not a directory", dir)
	}

	rendered := make([][]byte, len(targets))
	for i, t := range targets {
		if t.File == "" {
			return nil, fmt.Errorf("%s report: no file name", t.Formatter.Name())
		}
		var buf bytes.Buffer
		if err := t.Formatter.Format(ctx, report, &buf); err != nil {
			return nil, fmt.Errorf("rendering %s report: %w", t.Formatter.Name(), err)
		}
		rendered[i] = buf.Bytes()
	}

	written := make([]string, 0, len(targets))
	for i, t := range targets {
		path := filepath.Join(dir, t.File)
		if err := os.WriteFile(path, rendered[i], 0o644); err != nil {
			return written, fmt.Errorf("writing %s report to %s: %w", t.Formatter.Name(), path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteAll renders every target to w, each preceded by a banner line.
func WriteAll(ctx context.Context, w io.Writer, report *Report, targets []Target) error {
	for _, t := range targets {
		if _, err := fmt.Fprintf(w, "===== %s =====\n", t.File); err != nil {
			return err
		}
		if err := t.Formatter.Format(ctx, report, w); err != nil {
			return fmt.Errorf("rendering %s report: %w", t.Formatter.Name(), err)
		}
	}
	return nil
}
