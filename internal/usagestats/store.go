// Package usagestats persists per-environment activation history backed by
// SQLite and ranks environments by frecency, so the most relevant
// environments surface first in listings.
package usagestats

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users then need to delete the stats database.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Stats is the recorded usage history for one environment.
type Stats struct {
	Name            string
	Cookbook        string
	Description     string
	ActivationCount int64
	LastActivated   time.Time
}

// Store manages usage-stats persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the stats database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure stats directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == nil:
		if version != schemaVersion {
			return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
				ErrSchemaMismatch, version, schemaVersion, s.path)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		// Fresh schema_version table, fall through to initialize.
	default:
		// Tables do not exist yet.
	}

	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// RecordActivation bumps the activation count and timestamp for name,
// creating the row on first use.
func (s *Store) RecordActivation(ctx context.Context, name string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO env_stats (name, activation_count, last_activated)
         VALUES (?, 1, ?)
         ON CONFLICT(name) DO UPDATE SET
             activation_count = activation_count + 1,
             last_activated = excluded.last_activated`,
		name, now,
	)
	if err != nil {
		return fmt.Errorf("record activation for %q: %w", name, err)
	}
	return nil
}

// RecordMetadata stores the owning cookbook and description for name
// without counting an activation.
func (s *Store) RecordMetadata(ctx context.Context, name, cookbookName, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO env_stats (name, cookbook, description)
         VALUES (?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET
             cookbook = excluded.cookbook,
             description = excluded.description`,
		name, cookbookName, description,
	)
	if err != nil {
		return fmt.Errorf("record metadata for %q: %w", name, err)
	}
	return nil
}

// Get returns the stats row for name; the second return value is false when
// no history exists.
func (s *Store) Get(ctx context.Context, name string) (Stats, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, cookbook, description, activation_count, last_activated
         FROM env_stats WHERE name = ?`, name)
	stats, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, false, nil
	}
	if err != nil {
		return Stats{}, false, fmt.Errorf("load stats for %q: %w", name, err)
	}
	return stats, true, nil
}

// All returns every recorded stats row, most recently activated first.
func (s *Store) All(ctx context.Context) ([]Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, cookbook, description, activation_count, last_activated
         FROM env_stats ORDER BY last_activated DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	var results []Stats
	for rows.Next() {
		stats, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		results = append(results, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(row rowScanner) (Stats, error) {
	var stats Stats
	var lastActivated string
	if err := row.Scan(&stats.Name, &stats.Cookbook, &stats.Description, &stats.ActivationCount, &lastActivated); err != nil {
		return Stats{}, err
	}
	if lastActivated != "" {
		parsed, err := time.Parse(time.RFC3339Nano, lastActivated)
		if err != nil {
			return Stats{}, fmt.Errorf("parse last_activated %q: %w", lastActivated, err)
		}
		stats.LastActivated = parsed
	}
	return stats, nil
}
