package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/opladen-thuis/backend/services"
)

type ExportHandler struct {
	sessions *services.SessionService
}

func NewExportHandler(sessions *services.SessionService) *ExportHandler {
	return &ExportHandler{sessions: sessions}
}

// ExportCSV writes the collection in the exact legacy format the importer
// reads (semicolons, comma decimals, D-M-YYYY), so an exported file can be
// re-imported without loss.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List()
	if err != nil {
		log.Printf("Export error: %v", err)
		http.Error(w, "Failed to export data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	filename := fmt.Sprintf("oplaadsessies-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	var sb strings.Builder
	sb.WriteString("Datum;Procent;KW;Bedrag\n")
	for _, session := range sessions {
		sb.WriteString(legacyDate(session.Date))
		sb.WriteByte(';')
		sb.WriteString(dutchFloat(session.Fraction))
		sb.WriteByte(';')
		sb.WriteString(dutchFloat(session.EnergyKWh))
		sb.WriteByte(';')
		sb.WriteString(dutchFloat(session.Amount))
		sb.WriteByte('\n')
	}

	if _, err := w.Write([]byte(sb.String())); err != nil {
		log.Printf("Error writing CSV: %v", err)
	}
}

// legacyDate turns YYYY-MM-DD back into D-M-YYYY without leading zeros.
func legacyDate(date string) string {
	d, err := time.Parse(services.DateFormat, date)
	if err != nil {
		return date
	}
	return d.Format("2-1-2006")
}

// dutchFloat formats with a comma as decimal separator, using the shortest
// exact representation so whole numbers stay whole ("18", not "18,00").
func dutchFloat(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}
