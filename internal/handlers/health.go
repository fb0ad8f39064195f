package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	apiVersion  = "2.0.0"
	welcomeText = "Janus 2.0 API - Welcome"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Port    int    `json:"port"`
}

// HealthRouter registers the unauthenticated index and health routes.
func HealthRouter(r chi.Router, port int) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(welcomeText))
	})
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: apiVersion, Port: port})
	})
}
