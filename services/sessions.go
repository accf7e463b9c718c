package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/opladen-thuis/backend/models"
	"github.com/opladen-thuis/backend/store"
)

// DateFormat is the calendar-date layout used everywhere in the tracker.
// Dates carry no time or timezone component.
const DateFormat = "2006-01-02"

// Round2 rounds to 2 decimal places, half away from zero at the cent level.
// Every monetary and energy value passes through it before storage or
// aggregation; no unrounded intermediate is ever persisted.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// TodayISO returns the current local calendar date as YYYY-MM-DD.
func TodayISO() string {
	return time.Now().Format(DateFormat)
}

// NewSession builds a session from a charge fraction and the current
// settings. Pure construction, no side effects; persisting is the caller's
// job. The tariff is snapshotted so later settings edits never change past
// sessions. An empty date means today.
//
// Fractions above 1 are accepted here; rejecting them is the responsibility
// of the entry point taking user input.
func NewSession(fraction float64, settings models.Settings, source models.SessionSource, date string) models.Session {
	if date == "" {
		date = TodayISO()
	}
	energy := Round2(fraction * settings.ReferenceCapacityKWh)
	amount := Round2(energy * settings.TariffPerKWh)
	return models.Session{
		ID:           uuid.NewString(),
		Date:         date,
		Kind:         models.KindForFraction(fraction),
		Fraction:     fraction,
		EnergyKWh:    energy,
		TariffPerKWh: settings.TariffPerKWh,
		Amount:       amount,
		Source:       source,
	}
}

// DuplicateDateError signals that adding a session needs explicit user
// confirmation because the date already has one or more sessions.
type DuplicateDateError struct {
	Date  string
	Count int
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("%d session(s) already recorded on %s", e.Count, e.Date)
}

// SessionService owns the persisted session collection.
type SessionService struct {
	store store.Store
}

func NewSessionService(st store.Store) *SessionService {
	return &SessionService{store: st}
}

// List returns all sessions ordered by date ascending. Order is always
// re-derived by sorting; the stored collection is keyed by nothing but id.
func (s *SessionService) List() ([]models.Session, error) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		return nil, err
	}
	sortByDate(sessions)
	return sessions, nil
}

// Create runs the manual entry flow: duplicate-date check, then factory,
// then persist. Without confirmation a same-day duplicate is rejected with
// a DuplicateDateError and nothing is written.
func (s *SessionService) Create(fraction float64, date string, confirmed bool) (models.Session, error) {
	if date == "" {
		date = TodayISO()
	}
	sessions, err := s.store.LoadSessions()
	if err != nil {
		return models.Session{}, err
	}
	if existing := SessionsOnDate(sessions, date); len(existing) > 0 && !confirmed {
		return models.Session{}, &DuplicateDateError{Date: date, Count: len(existing)}
	}

	settings, err := s.store.LoadSettings()
	if err != nil {
		return models.Session{}, err
	}
	session := NewSession(fraction, settings, models.SourceManual, date)

	sessions = append(sessions, session)
	sortByDate(sessions)
	if err := s.store.SaveSessions(sessions); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Delete removes a session by id. Deleting an unknown id is a no-op, so a
// repeated delete is always safe.
func (s *SessionService) Delete(id string) (int, error) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		return 0, err
	}
	kept := sessions[:0]
	for _, session := range sessions {
		if session.ID != id {
			kept = append(kept, session)
		}
	}
	deleted := len(sessions) - len(kept)
	if deleted == 0 {
		return 0, nil
	}
	if err := s.store.SaveSessions(kept); err != nil {
		return 0, err
	}
	return deleted, nil
}

// Clear wipes the whole collection. The confirmation dialog lives in the UI.
func (s *SessionService) Clear() error {
	return s.store.SaveSessions([]models.Session{})
}

// SessionsOnDate returns the sessions recorded on exactly the given date.
func SessionsOnDate(sessions []models.Session, date string) []models.Session {
	var matched []models.Session
	for _, session := range sessions {
		if session.Date == date {
			matched = append(matched, session)
		}
	}
	return matched
}

func sortByDate(sessions []models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date < sessions[j].Date
	})
}
