// Package store is the persistence boundary of the tracker: two named JSON
// blobs (the session collection and the settings object) behind a small
// load/save port. The core never touches storage directly; it gets a Store
// injected so tests can swap in the in-memory implementation.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/opladen-thuis/backend/models"
)

// Storage keys, kept identical to the original app's local-store keys so an
// existing database stays readable.
const (
	sessionsKey = "opladen-thuis-sessions"
	settingsKey = "opladen-thuis-settings"
)

type Store interface {
	LoadSessions() ([]models.Session, error)
	SaveSessions(sessions []models.Session) error
	LoadSettings() (models.Settings, error)
	SaveSettings(settings models.Settings) error
}

func decodeSessions(raw []byte) ([]models.Session, error) {
	if len(raw) == 0 {
		return []models.Session{}, nil
	}
	var sessions []models.Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

func encodeSessions(sessions []models.Session) ([]byte, error) {
	if sessions == nil {
		sessions = []models.Session{}
	}
	raw, err := json.Marshal(sessions)
	if err != nil {
		return nil, fmt.Errorf("encode sessions: %w", err)
	}
	return raw, nil
}

// decodeSettings merges a persisted (possibly partial) settings object over
// the defaults: fields absent from the stored JSON keep their default value.
func decodeSettings(raw []byte) (models.Settings, error) {
	settings := models.DefaultSettings()
	if len(raw) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func encodeSettings(settings models.Settings) ([]byte, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return raw, nil
}
