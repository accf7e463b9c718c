package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/opladen-thuis/backend/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List()
	if err != nil {
		log.Printf("Failed to load sessions: %v", err)
		http.Error(w, "Failed to load sessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

type createSessionRequest struct {
	Fraction float64 `json:"fraction"`
	Date     string  `json:"date"`
	Confirm  bool    `json:"confirm"`
}

// Create adds a manual session. The fraction must be in (0, 1]; the factory
// itself does not enforce the upper bound, this endpoint does. When the date
// already has sessions the request must carry "confirm": true, otherwise it
// is answered with 409 and nothing is saved.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Fraction <= 0 || req.Fraction > 1 {
		http.Error(w, "Fraction must be between 0 (exclusive) and 1 (inclusive)", http.StatusBadRequest)
		return
	}

	session, err := h.sessions.Create(req.Fraction, req.Date, req.Confirm)
	if err != nil {
		var dup *services.DuplicateDateError
		if errors.As(err, &dup) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":    "duplicate_date",
				"date":     dup.Date,
				"existing": dup.Count,
			})
			return
		}
		log.Printf("Failed to create session: %v", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	deleted, err := h.sessions.Delete(id)
	if err != nil {
		log.Printf("Failed to delete session %s: %v", id, err)
		http.Error(w, "Failed to delete session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "success",
		"deleted_count": deleted,
	})
}

// Clear deletes every session. The "are you sure" dialog is the client's
// concern; by the time this is called the user already confirmed.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(); err != nil {
		log.Printf("Failed to clear sessions: %v", err)
		http.Error(w, "Failed to clear sessions", http.StatusInternalServerError)
		return
	}

	log.Println("All sessions cleared")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}
