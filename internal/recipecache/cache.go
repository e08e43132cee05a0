// Package recipecache stores the aggregated recipe listing the daemon
// produces and short-lived CLI consumers read. Writes are atomic (tmp file
// + rename in the same directory) and reads enforce an explicit staleness
// window, so a consumer either sees a complete, recent listing or nothing.
package recipecache

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"enwiro/internal/logging"
)

const (
	cacheFileName     = "recipes.cache"
	cacheTmpFileName  = "recipes.cache.tmp"
	heartbeatFileName = "heartbeat"

	// RefreshInterval is how often the daemon rewrites the cache.
	RefreshInterval = 40 * time.Second

	// stalenessBuffer tolerates one slow refresh cycle before readers
	// discard the cache.
	stalenessBuffer = 30 * time.Second

	// MaxAge is the staleness window: readers treat anything older as
	// absent.
	MaxAge = RefreshInterval + stalenessBuffer
)

// Store reads and writes the recipe cache files inside one runtime
// directory. The directory is created lazily on first write.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore builds a cache store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logging.NewComponentLogger(logger, "recipecache")}
}

// Dir returns the runtime directory this store operates in.
func (s *Store) Dir() string { return s.dir }

// CachePath returns the canonical cache file path.
func (s *Store) CachePath() string { return filepath.Join(s.dir, cacheFileName) }

// WriteAtomic replaces the cache content in one step: the content is
// written to a temporary file in the same directory, then renamed over the
// canonical path. Readers never observe a partial write.
func (s *Store) WriteAtomic(content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create runtime directory: %w", err)
	}
	tmpPath := filepath.Join(s.dir, cacheTmpFileName)
	if err := os.WriteFile(tmpPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write temporary cache file: %w", err)
	}
	if err := os.Rename(tmpPath, s.CachePath()); err != nil {
		return fmt.Errorf("rename cache file into place: %w", err)
	}
	s.logger.Debug("cache file updated", logging.String("path", s.CachePath()))
	return nil
}

// Read returns the cached listing when it exists and is fresh. The second
// return value reports usability: a missing, stale, or unreadable cache
// yields ("", false), never an error, and callers fall back to synchronous
// aggregation.
func (s *Store) Read() (string, bool) {
	path := s.CachePath()
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	age := time.Since(info.ModTime())
	if age > MaxAge {
		s.logger.Debug("cache is stale, ignoring", logging.Duration("age", age))
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("could not read cache file", logging.Error(err))
		return "", false
	}
	return string(data), true
}

// TouchHeartbeat records that a consumer successfully used the cache; the
// daemon watches this file's recency to decide whether anyone still needs
// it.
func (s *Store) TouchHeartbeat() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create runtime directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, heartbeatFileName), nil, 0o644); err != nil {
		return fmt.Errorf("touch heartbeat file: %w", err)
	}
	return nil
}

// HeartbeatMtime returns the heartbeat file's modification time. The
// second return value is false when no heartbeat exists yet.
func (s *Store) HeartbeatMtime() (time.Time, bool) {
	info, err := os.Stat(filepath.Join(s.dir, heartbeatFileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("could not stat heartbeat file", logging.Error(err))
		}
		return time.Time{}, false
	}
	return info.ModTime(), true
}
