package services

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/opladen-thuis/backend/models"
)

// ParseImport parses the legacy export format into sessions:
//
//	Datum;Procent;KW;Bedrag
//	4-7-2025;0,33;5,94;1,66
//
// Semicolon-separated, comma as decimal separator, dates D-M-YYYY without
// leading zeros. Real files interleave quarterly summary rows whose first
// field starts with "Q"; those and the header row are skipped. Any row that
// fails to parse is dropped silently — partial success is the expected
// outcome, and a fully malformed document yields an empty list.
func ParseImport(text string) []models.Session {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	sessions := []models.Session{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, ";")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		rawDate := parts[0]

		// Header row, embedded quarterly summaries, empty date.
		if rawDate == "Datum" || strings.HasPrefix(rawDate, "Q") || rawDate == "" {
			continue
		}
		if len(parts) < 4 {
			continue
		}

		fraction, ok1 := parseDutchFloat(parts[1])
		energy, ok2 := parseDutchFloat(parts[2])
		amount, ok3 := parseDutchFloat(parts[3])
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		date, ok := reformatDate(rawDate)
		if !ok {
			continue
		}

		// The source file has no tariff column; recover it from the row's
		// own totals so later tariff changes cannot rewrite history.
		tariff := models.DefaultTariffPerKWh
		if energy > 0 {
			tariff = Round2(amount / energy)
		}

		sessions = append(sessions, models.Session{
			ID:           uuid.NewString(),
			Date:         date,
			Kind:         models.KindForFraction(fraction),
			Fraction:     fraction,
			EnergyKWh:    energy,
			TariffPerKWh: tariff,
			Amount:       amount,
			Source:       models.SourceImported,
		})
	}

	return sessions
}

// parseDutchFloat parses a number that uses a comma as decimal separator.
func parseDutchFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// reformatDate turns D-M-YYYY into YYYY-MM-DD, zero-padding day and month.
func reformatDate(raw string) (string, bool) {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return "", false
	}
	day, month, year := pad2(parts[0]), pad2(parts[1]), parts[2]
	return year + "-" + month + "-" + day, true
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// ImportResult reports what an import did to the collection.
type ImportResult struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// Import parses the text, merges the parsed sessions into the collection and
// re-sorts by date. Existing sessions are never touched.
func (s *SessionService) Import(text string) (ImportResult, error) {
	imported := ParseImport(text)

	sessions, err := s.store.LoadSessions()
	if err != nil {
		return ImportResult{}, err
	}
	sessions = append(sessions, imported...)
	sortByDate(sessions)
	if err := s.store.SaveSessions(sessions); err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Imported: len(imported), Total: len(sessions)}, nil
}
