package watermark

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fanac/conlog/pkg/parser"
)

// ErrReadOnly is returned by Save when the store file is not writable.
var ErrReadOnly = errors.New("watermark store is read-only")

// Store is the watermark text file. The first line that is neither blank nor
// a "#" comment holds the timestamp; comments and blank lines survive rewrites.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored timestamp. ok is false when the file is missing or
// holds no timestamp line.
func (s *Store) Load() (ts time.Time, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading watermark %s: %w", s.path, err)
	}

	for _, line := range splitLines(data) {
		if isKept(line) {
			continue
		}
		ts, err := parser.ParseWatermarkTime(line)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("watermark %s: %w", s.path, err)
		}
		return ts, true, nil
	}
	return time.Time{}, false, nil
}

// Writable reports whether Save can rewrite the file. A missing file is
// writable if its directory is.
func (s *Store) Writable() bool {
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	if err != nil {
		return false
	}
	if info.Mode().Perm()&0o200 == 0 {
		return false
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Save rewrites the file with ts as its timestamp line. Blank and comment
// lines are preserved in order; any previous timestamp line is dropped and
// the new one is appended.
func (s *Store) Save(ts time.Time) error {
	if !s.Writable() {
		return fmt.Errorf("%s: %w", s.path, ErrReadOnly)
	}

	var kept []string
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		for _, line := range splitLines(data) {
			if isKept(line) {
				kept = append(kept, line)
			}
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading watermark %s: %w", s.path, err)
	}

	var buf bytes.Buffer
	for _, line := range kept {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteString(parser.FormatWatermarkTime(ts))
	buf.WriteByte('\n')

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing watermark %s: %w", s.path, err)
	}
	return nil
}

// Reset removes the timestamp line, keeping comments, so the next run falls
// back to the epoch.
func (s *Store) Reset() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading watermark %s: %w", s.path, err)
	}
	if !s.Writable() {
		return fmt.Errorf("%s: %w", s.path, ErrReadOnly)
	}

	var buf bytes.Buffer
	for _, line := range splitLines(data) {
		if isKept(line) {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing watermark %s: %w", s.path, err)
	}
	return nil
}

// splitLines returns the trimmed lines of data.
func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	return lines
}

// isKept reports whether a trimmed line is blank or a comment.
func isKept(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}
