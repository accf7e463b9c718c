package main

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/opladen-thuis/backend/config"
	"github.com/opladen-thuis/backend/database"
	"github.com/opladen-thuis/backend/handlers"
	"github.com/opladen-thuis/backend/services"
	"github.com/opladen-thuis/backend/store"
	"github.com/rs/cors"
)

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC RECOVERED: %v", err)
				log.Printf("Stack trace: %s", debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s - completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func main() {
	log.Println("Starting Opladen Thuis backend...")
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	st := store.NewSQLiteStore(db)
	sessionService := services.NewSessionService(st)

	sessionHandler := handlers.NewSessionHandler(sessionService)
	importHandler := handlers.NewImportHandler(sessionService)
	exportHandler := handlers.NewExportHandler(sessionService)
	settingsHandler := handlers.NewSettingsHandler(st)
	summaryHandler := handlers.NewSummaryHandler(sessionService)
	reportHandler := handlers.NewReportHandler(sessionService, st)

	r := mux.NewRouter()

	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.HandleFunc("/api/health", healthCheck).Methods("GET")

	r.HandleFunc("/api/sessions", sessionHandler.List).Methods("GET")
	r.HandleFunc("/api/sessions", sessionHandler.Create).Methods("POST")
	r.HandleFunc("/api/sessions", sessionHandler.Clear).Methods("DELETE")
	r.HandleFunc("/api/sessions/import", importHandler.ImportCSV).Methods("POST")
	r.HandleFunc("/api/sessions/export", exportHandler.ExportCSV).Methods("GET")
	r.HandleFunc("/api/sessions/{id}", sessionHandler.Delete).Methods("DELETE")

	r.HandleFunc("/api/settings", settingsHandler.Get).Methods("GET")
	r.HandleFunc("/api/settings", settingsHandler.Update).Methods("PUT")

	r.HandleFunc("/api/summary", summaryHandler.Get).Methods("GET")
	r.HandleFunc("/api/report/pdf", reportHandler.QuarterPDF).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:4173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  180 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
