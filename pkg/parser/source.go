package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single log line.
const maxLineSize = 1024 * 1024

// ReaderSource implements LineSource over an io.Reader.
type ReaderSource struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	lineNum int
}

// NewReaderSource creates a LineSource reading lines from r. name is recorded
// on each line as its Source.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &ReaderSource{name: name, scanner: scanner}
}

// NewStringSource creates a LineSource over log text already held in memory.
func NewStringSource(text, name string) *ReaderSource {
	return NewReaderSource(strings.NewReader(text), name)
}

// OpenFileSource opens a log file as a LineSource. The caller must Close it.
func OpenFileSource(path string) (*ReaderSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	src := NewReaderSource(f, path)
	src.closer = f
	return src, nil
}

// Next returns the next line. Returns io.EOF when the input is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.name, err)
		}
		return nil, io.EOF
	}

	s.lineNum++
	return &LogLine{
		Content: strings.TrimSuffix(s.scanner.Text(), "\r"),
		Source:  s.name,
		LineNum: s.lineNum,
	}, nil
}

// Close releases the underlying file, if any.
func (s *ReaderSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
