package server

import (
	"net/http"

	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Retrieval pipeline
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchHandler) // POST - run the tiered search

	// API routes - Knowledge base
	mux.HandleFunc("/api/ingest", s.app.IngestHandler.IngestHandler) // POST - manual ingestion

	// API routes - Semantic cache administration
	mux.HandleFunc("/api/cache/stats", s.app.CacheHandler.StatsHandler) // GET
	mux.HandleFunc("/api/cache/clear", s.app.CacheHandler.ClearHandler) // POST

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.StatusHandler) // GET - stores and hit rate
	mux.HandleFunc("/api/health", s.healthHandler)                   // GET - liveness
	mux.HandleFunc("/api/version", s.versionHandler)                 // GET

	return mux
}

// healthHandler handles GET /api/health requests
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if !handlers.RequireMethod(w, r, http.MethodGet) {
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// versionHandler handles GET /api/version requests
func (s *Server) versionHandler(w http.ResponseWriter, r *http.Request) {
	if !handlers.RequireMethod(w, r, http.MethodGet) {
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.Build,
	})
}
