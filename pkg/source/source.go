// Package source retrieves the raw upload log.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fanac/conlog/pkg/config"
)

// ErrConnect marks a failure to reach the log's host. A run stops before
// parsing when it sees this error.
var ErrConnect = errors.New("connecting to log source")

// Source fetches the full upload log.
type Source interface {
	// Fetch returns the raw log text.
	Fetch(ctx context.Context) ([]byte, error)

	// Name describes the source for logs and reports.
	Name() string
}

// New builds the Source described by cfg.
func New(cfg config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case config.SourceTypeFile:
		return NewFileSource(cfg.Path), nil
	case config.SourceTypeFTP:
		creds, err := LoadCredentials(cfg.Credentials)
		if err != nil {
			return nil, err
		}
		return NewFTPSource(creds, cfg.Dir, cfg.Path, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}

// FileSource reads the log from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Fetch reads the whole file.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("reading log file %s: %w", s.path, err)
	}
	return data, nil
}
