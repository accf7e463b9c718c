package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/opladen-thuis/backend/services"
	"github.com/opladen-thuis/backend/store"
)

type ReportHandler struct {
	sessions *services.SessionService
	store    store.Store
}

func NewReportHandler(sessions *services.SessionService, st store.Store) *ReportHandler {
	return &ReportHandler{sessions: sessions, store: st}
}

// QuarterPDF renders the quarterly overview as a downloadable PDF. The PDF
// is built in memory first so a render failure never leaks a half-written
// response.
func (h *ReportHandler) QuarterPDF(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List()
	if err != nil {
		log.Printf("Failed to load sessions: %v", err)
		http.Error(w, "Failed to load sessions", http.StatusInternalServerError)
		return
	}
	settings, err := h.store.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings: %v", err)
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteQuarterReportPDF(&buf, sessions, settings, time.Now()); err != nil {
		log.Printf("Failed to generate PDF report: %v", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	filename := fmt.Sprintf("kwartaaloverzicht-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(buf.Bytes())
}
