package services

import (
	"errors"
	"testing"

	"github.com/opladen-thuis/backend/models"
	"github.com/opladen-thuis/backend/store"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact value unchanged", 5.94, 5.94},
		{"classic float drift sum", 0.1 + 0.2, 0.3},
		{"drift sum below one", 0.7 + 0.1, 0.8},
		{"half rounds away from zero", 0.125, 0.13},
		{"negative half rounds away from zero", -0.125, -0.13},
		{"integer stays integer", 18, 18},
		{"third decimal dropped", 1.664, 1.66},
		{"third decimal rounds up", 1.666, 1.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewSession(t *testing.T) {
	settings := models.Settings{TariffPerKWh: 0.28, ReferenceCapacityKWh: 18, Currency: "EUR"}

	tests := []struct {
		name       string
		fraction   float64
		wantKind   models.SessionKind
		wantEnergy float64
		wantAmount float64
	}{
		{"full charge", 1, models.KindFull, 18, 5.04},
		{"partial charge", 0.33, models.KindPartial, 5.94, 1.66},
		{"half charge", 0.5, models.KindPartial, 9, 2.52},
		{"just below full", 0.99, models.KindPartial, 17.82, 4.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(tt.fraction, settings, models.SourceManual, "2025-07-04")

			if session.ID == "" {
				t.Error("expected a fresh id")
			}
			if session.Date != "2025-07-04" {
				t.Errorf("Date = %q, want 2025-07-04", session.Date)
			}
			if session.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", session.Kind, tt.wantKind)
			}
			if session.EnergyKWh != tt.wantEnergy {
				t.Errorf("EnergyKWh = %v, want %v", session.EnergyKWh, tt.wantEnergy)
			}
			if session.Amount != tt.wantAmount {
				t.Errorf("Amount = %v, want %v", session.Amount, tt.wantAmount)
			}
			if session.TariffPerKWh != settings.TariffPerKWh {
				t.Errorf("TariffPerKWh = %v, want snapshot of %v", session.TariffPerKWh, settings.TariffPerKWh)
			}
			if session.Source != models.SourceManual {
				t.Errorf("Source = %q, want manual", session.Source)
			}
		})
	}
}

func TestNewSessionDefaultsToToday(t *testing.T) {
	session := NewSession(0.5, models.DefaultSettings(), models.SourceManual, "")
	if session.Date != TodayISO() {
		t.Errorf("Date = %q, want today's date %q", session.Date, TodayISO())
	}
}

func TestNewSessionUniqueIDs(t *testing.T) {
	settings := models.DefaultSettings()
	a := NewSession(1, settings, models.SourceManual, "2025-07-04")
	b := NewSession(1, settings, models.SourceManual, "2025-07-04")
	if a.ID == b.ID {
		t.Errorf("two sessions got the same id %q", a.ID)
	}
}

func TestKindForFraction(t *testing.T) {
	tests := []struct {
		fraction float64
		want     models.SessionKind
	}{
		{1, models.KindFull},
		{1.2, models.KindFull},
		{0.99, models.KindPartial},
		{0.01, models.KindPartial},
	}
	for _, tt := range tests {
		if got := models.KindForFraction(tt.fraction); got != tt.want {
			t.Errorf("KindForFraction(%v) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}

func TestCreateDuplicateDatePolicy(t *testing.T) {
	svc := NewSessionService(store.NewMemoryStore())

	if _, err := svc.Create(1, "2025-07-04", false); err != nil {
		t.Fatalf("first session on a date should not need confirmation: %v", err)
	}

	// Second session on the same date without confirmation is rejected.
	_, err := svc.Create(0.5, "2025-07-04", false)
	var dup *DuplicateDateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateDateError, got %v", err)
	}
	if dup.Date != "2025-07-04" || dup.Count != 1 {
		t.Errorf("DuplicateDateError = %+v, want date 2025-07-04 count 1", dup)
	}

	// Declining left the collection untouched.
	sessions, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("rejected candidate must not be saved, have %d sessions", len(sessions))
	}

	// Confirmed, the duplicate goes through.
	if _, err := svc.Create(0.5, "2025-07-04", true); err != nil {
		t.Fatalf("confirmed duplicate should be added: %v", err)
	}
	sessions, _ = svc.List()
	if len(sessions) != 2 {
		t.Fatalf("have %d sessions, want 2", len(sessions))
	}

	// A different date needs no confirmation.
	if _, err := svc.Create(1, "2025-07-05", false); err != nil {
		t.Fatalf("different date should not need confirmation: %v", err)
	}
}

func TestListSortedByDate(t *testing.T) {
	svc := NewSessionService(store.NewMemoryStore())

	for _, date := range []string{"2025-07-04", "2025-01-15", "2025-03-01"} {
		if _, err := svc.Create(1, date, false); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2025-01-15", "2025-03-01", "2025-07-04"}
	for i, date := range want {
		if sessions[i].Date != date {
			t.Errorf("sessions[%d].Date = %q, want %q", i, sessions[i].Date, date)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := NewSessionService(store.NewMemoryStore())

	session, err := svc.Create(1, "2025-07-04", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(0.5, "2025-07-05", false); err != nil {
		t.Fatal(err)
	}

	deleted, err := svc.Delete(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("first delete removed %d, want 1", deleted)
	}

	// Second delete of the same id is a safe no-op.
	deleted, err = svc.Delete(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Errorf("second delete removed %d, want 0", deleted)
	}

	sessions, _ := svc.List()
	if len(sessions) != 1 {
		t.Errorf("have %d sessions after deletes, want 1", len(sessions))
	}
}

func TestClear(t *testing.T) {
	svc := NewSessionService(store.NewMemoryStore())

	if _, err := svc.Create(1, "2025-07-04", false); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(); err != nil {
		t.Fatal(err)
	}

	sessions, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("have %d sessions after clear, want 0", len(sessions))
	}
}

func TestSessionsOnDate(t *testing.T) {
	sessions := []models.Session{
		{ID: "a", Date: "2025-07-04"},
		{ID: "b", Date: "2025-07-05"},
		{ID: "c", Date: "2025-07-04"},
	}

	matched := SessionsOnDate(sessions, "2025-07-04")
	if len(matched) != 2 {
		t.Fatalf("matched %d sessions, want 2", len(matched))
	}
	if matched[0].ID != "a" || matched[1].ID != "c" {
		t.Errorf("matched ids %q, %q; want a, c", matched[0].ID, matched[1].ID)
	}

	if got := SessionsOnDate(sessions, "2025-01-01"); len(got) != 0 {
		t.Errorf("matched %d sessions on empty date, want 0", len(got))
	}
}

func TestCreateUsesCurrentSettings(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSessionService(st)

	if err := st.SaveSettings(models.Settings{TariffPerKWh: 0.3, ReferenceCapacityKWh: 20, Currency: "EUR"}); err != nil {
		t.Fatal(err)
	}

	session, err := svc.Create(0.5, "2025-07-04", false)
	if err != nil {
		t.Fatal(err)
	}
	if session.EnergyKWh != 10 {
		t.Errorf("EnergyKWh = %v, want 10 (0.5 of 20)", session.EnergyKWh)
	}
	if session.Amount != 3 {
		t.Errorf("Amount = %v, want 3", session.Amount)
	}

	// Raising the tariff later must not touch the stored session.
	if err := st.SaveSettings(models.Settings{TariffPerKWh: 0.99, ReferenceCapacityKWh: 20, Currency: "EUR"}); err != nil {
		t.Fatal(err)
	}
	sessions, _ := svc.List()
	if sessions[0].TariffPerKWh != 0.3 {
		t.Errorf("stored tariff snapshot changed to %v", sessions[0].TariffPerKWh)
	}
}
