package store

import (
	"database/sql"
	"fmt"

	"github.com/opladen-thuis/backend/models"
)

// SQLiteStore keeps the two blobs as rows in the blobs table. SQLite gives us
// atomic writes for free; with one local user there is never a second writer.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) loadBlob(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		// Absent data is an empty collection / defaults, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load blob %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) saveBlob(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) LoadSessions() ([]models.Session, error) {
	raw, err := s.loadBlob(sessionsKey)
	if err != nil {
		return nil, err
	}
	return decodeSessions(raw)
}

func (s *SQLiteStore) SaveSessions(sessions []models.Session) error {
	raw, err := encodeSessions(sessions)
	if err != nil {
		return err
	}
	return s.saveBlob(sessionsKey, raw)
}

func (s *SQLiteStore) LoadSettings() (models.Settings, error) {
	raw, err := s.loadBlob(settingsKey)
	if err != nil {
		return models.DefaultSettings(), err
	}
	return decodeSettings(raw)
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	raw, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	return s.saveBlob(settingsKey, raw)
}
