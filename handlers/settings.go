package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/opladen-thuis/backend/models"
	"github.com/opladen-thuis/backend/store"
)

type SettingsHandler struct {
	store store.Store
}

func NewSettingsHandler(st store.Store) *SettingsHandler {
	return &SettingsHandler{store: st}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings: %v", err)
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// Update replaces the settings. Tariff and reference capacity must be
// strictly positive; an invalid edit is rejected and the stored values stay
// untouched. Past sessions are never recalculated.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.TariffPerKWh <= 0 {
		http.Error(w, "Tariff must be a positive number", http.StatusBadRequest)
		return
	}
	if req.ReferenceCapacityKWh <= 0 {
		http.Error(w, "Reference capacity must be a positive number", http.StatusBadRequest)
		return
	}
	if req.Currency == "" {
		current, err := h.store.LoadSettings()
		if err != nil {
			log.Printf("Failed to load settings: %v", err)
			http.Error(w, "Failed to load settings", http.StatusInternalServerError)
			return
		}
		req.Currency = current.Currency
	}

	if err := h.store.SaveSettings(req); err != nil {
		log.Printf("Failed to save settings: %v", err)
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}
