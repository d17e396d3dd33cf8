package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/dance-party/internal/shared"
)

// LocalStorage is a key/value store over the local_storage table.
type LocalStorage struct {
	db *sql.DB
}

// NewLocalStorage creates a new [LocalStorage] with the given database connection.
//
// The database must already be migrated, see [shared.OpenDatabase].
func NewLocalStorage(db *sql.DB) *LocalStorage {
	return &LocalStorage{db: db}
}

// Get returns the value stored under key and whether it was present.
func (s *LocalStorage) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read %s: %v", shared.ErrStorage, key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *LocalStorage) Set(key, value string) error {
	query := `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", shared.ErrStorage, key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *LocalStorage) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM local_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: failed to remove %s: %v", shared.ErrStorage, key, err)
	}
	return nil
}
