package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/opladen-thuis/backend/services"
)

type SummaryHandler struct {
	sessions *services.SessionService
}

func NewSummaryHandler(sessions *services.SessionService) *SummaryHandler {
	return &SummaryHandler{sessions: sessions}
}

// Get returns the per-quarter summaries (ascending, with the running quarter
// flagged) and the grand total over all quarters.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List()
	if err != nil {
		log.Printf("Failed to load sessions: %v", err)
		http.Error(w, "Failed to load sessions", http.StatusInternalServerError)
		return
	}

	summaries := services.Summarize(sessions)
	services.MarkCurrent(summaries, time.Now())
	total := services.GrandTotal(summaries)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"quarters": summaries,
		"total":    total,
	})
}
