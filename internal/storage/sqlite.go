// Package storage provides SQLite-based persistence for team snapshots and
// battle results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultMaxSnapshots bounds the snapshot pool.
const DefaultMaxSnapshots = 30

// Store manages the SQLite database connection.
type Store struct {
	db           *sql.DB
	maxSnapshots int
	logger       *log.Logger
	now          func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMaxSnapshots overrides the snapshot pool size. Non-positive values are ignored.
func WithMaxSnapshots(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxSnapshots = n
		}
	}
}

// WithLogger sets the logger used to report skipped rows.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{
		db:           db,
		maxSnapshots: DefaultMaxSnapshots,
		logger:       log.New(io.Discard),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS team_snapshots (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL,
			round INTEGER NOT NULL DEFAULT 1,
			health INTEGER NOT NULL DEFAULT 0,
			trophies INTEGER NOT NULL DEFAULT 0,
			tray TEXT NOT NULL DEFAULT '[]',
			kids TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS battle_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			opponent_id TEXT,
			round INTEGER NOT NULL DEFAULT 0,
			player_stars INTEGER NOT NULL DEFAULT 0,
			opponent_stars INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battle_results_winner ON battle_results(winner);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
