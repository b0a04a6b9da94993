// Package kvfile implements core.Storage over a directory of flat JSON
// records, one file per key.
package kvfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/avdw/jot/pkg/core"
)

// Store is a file-backed key-value store. Writes are atomic (temp file plus
// rename) so a crash mid-write never leaves a half-written record behind.
type Store struct {
	Dir    string
	logger *slog.Logger
}

// Config holds the configuration for the file store.
type Config struct {
	Dir    string
	Logger *slog.Logger
}

// New creates the data directory if needed and returns the store.
func New(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{Dir: cfg.Dir, logger: cfg.Logger}, nil
}

// Get reads the record for key. Returns core.ErrNoRecord when absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, core.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	return data, nil
}

// Set writes the record for key atomically.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Debug("writing record", "key", key, "path", path)
	}
	if err := writeFileAtomic(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid record key: %q", key)
	}
	return filepath.Join(s.Dir, key+".json"), nil
}
