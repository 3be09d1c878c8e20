package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const currentVersion = 2

const memoryPath = ":memory:"

// ErrNotFound is returned when a key has no record.
var ErrNotFound = errors.New("not found")

type Store struct {
	db   *sql.DB
	path string
	bus  *bus

	// known is the key set last published to subscribers; Sync diffs
	// against it to detect writes from other processes.
	mu    sync.Mutex
	known map[string]struct{}
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{
		db:    db,
		path:  dbPath,
		bus:   newBus(),
		known: map[string]struct{}{},
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	keys, err := s.keys()
	if err != nil {
		db.Close()
		return nil, err
	}
	s.known = keys
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(memoryPath)
}

// Path returns the database file path, or ":memory:".
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	s.bus.close()
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS trains (
		key         TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		dest        TEXT NOT NULL,
		hours       INTEGER NOT NULL CHECK (hours BETWEEN 0 AND 23),
		mins        INTEGER NOT NULL CHECK (mins BETWEEN 0 AND 59),
		freq        INTEGER NOT NULL CHECK (freq > 0),
		date_added  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) migrateV2() error {
	const ddl = `
	CREATE INDEX IF NOT EXISTS idx_trains_dest ON trains(dest);
	`
	_, err := s.db.Exec(ddl)
	return err
}
