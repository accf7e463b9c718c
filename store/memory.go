package store

import "github.com/opladen-thuis/backend/models"

// MemoryStore is the in-memory Store used by tests. It round-trips through
// the same JSON codecs as the SQLite store so merge-on-load behaves
// identically.
type MemoryStore struct {
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) LoadSessions() ([]models.Session, error) {
	return decodeSessions(s.blobs[sessionsKey])
}

func (s *MemoryStore) SaveSessions(sessions []models.Session) error {
	raw, err := encodeSessions(sessions)
	if err != nil {
		return err
	}
	s.blobs[sessionsKey] = raw
	return nil
}

func (s *MemoryStore) LoadSettings() (models.Settings, error) {
	return decodeSettings(s.blobs[settingsKey])
}

func (s *MemoryStore) SaveSettings(settings models.Settings) error {
	raw, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	s.blobs[settingsKey] = raw
	return nil
}

// SeedSettingsJSON stores a raw settings blob, letting tests exercise the
// merge of partial persisted objects over the defaults.
func (s *MemoryStore) SeedSettingsJSON(raw string) {
	s.blobs[settingsKey] = []byte(raw)
}
