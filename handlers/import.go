package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/opladen-thuis/backend/services"
)

type ImportHandler struct {
	sessions *services.SessionService
}

func NewImportHandler(sessions *services.SessionService) *ImportHandler {
	return &ImportHandler{sessions: sessions}
}

// ImportCSV ingests a legacy export file uploaded as multipart field "csv".
// Malformed rows are skipped, not fatal; the response reports how many
// sessions were actually imported.
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	// 10MB max
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("csv")
	if err != nil {
		http.Error(w, "No CSV file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	text, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Failed to read uploaded file: %v", err)
		http.Error(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}

	result, err := h.sessions.Import(string(text))
	if err != nil {
		log.Printf("Failed to import sessions: %v", err)
		http.Error(w, "Failed to import sessions", http.StatusInternalServerError)
		return
	}

	log.Printf("CSV import completed: %d sessions imported, collection now holds %d", result.Imported, result.Total)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "success",
		"imported": result.Imported,
		"total":    result.Total,
	})
}
