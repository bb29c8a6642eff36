// ABOUTME: SQLite-backed key-value store for persisted client state
// ABOUTME: Holds the auth token pair, cached user profile, and chat session id

package store

import (
	"database/sql"
	_ "embed"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ahermansen/todochat/internal/config"
)

//go:embed schema.sql
var schema string

// Logical keys. Absence of a key always reads as "unset", never an error.
const (
	KeyAuthToken    = "authToken"
	KeyAuthUser     = "authUser"
	KeyRefreshToken = "refreshToken"
	KeySessionUUID  = "chatSessionUUID"
)

// Store wraps the settings database.
type Store struct {
	db *sql.DB
}

// Open creates the store in the application data directory and
// initializes the schema.
func Open() (*Store, error) {
	dir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, "todochat.db"))
}

// OpenPath opens a store at an explicit path. Used by tests.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves a value by key. A missing key returns "".
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set stores a value, replacing any previous one.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Delete removes a key. Deleting an absent key is a no-op.
func (s *Store) Delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
			return err
		}
	}
	return nil
}
