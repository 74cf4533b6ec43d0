// Package api provides the HTTP server for Ahorify.
// It exposes the engagement and transaction REST APIs consumed by the
// web client.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahorify/ahorify/internal/app/engagement"
	"github.com/ahorify/ahorify/internal/app/finance"
	"github.com/ahorify/ahorify/internal/domain"
)

// Server is the Ahorify HTTP API server.
type Server struct {
	engagement     *engagement.Service
	finance        *finance.Service
	analytics      *finance.Analytics
	prefs          domain.PreferencesStore // nil disables /api/preferences
	corsOrigins    []string                // empty allows any origin
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(eng *engagement.Service, fin *finance.Service, an *finance.Analytics, version string) *Server {
	return &Server{engagement: eng, finance: fin, analytics: an, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetPreferences mounts the user preferences endpoints.
func (s *Server) SetPreferences(store domain.PreferencesStore) { s.prefs = store }

// SetCORSOrigins restricts cross-origin requests to the given origins.
func (s *Server) SetCORSOrigins(origins []string) { s.corsOrigins = origins }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware(s.corsOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/engagement", s.handleRecordEngagement)
		r.Get("/progress", s.handleProgress)
		r.Get("/milestones", s.handleMilestones)
		r.Get("/levels", s.handleLevels)

		r.Post("/transactions", s.handleAddTransaction)
		r.Get("/transactions", s.handleListTransactions)
		r.Delete("/transactions/{id}", s.handleDeleteTransaction)
		r.Get("/transactions/summary", s.handleSummary)
		r.Get("/transactions/categories", s.handleCategories)

		r.Get("/analytics/health", s.handleHealthScore)

		if s.prefs != nil {
			r.Get("/preferences", s.handleGetPreferences)
			r.Put("/preferences", s.handlePutPreferences)
		}
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// userID resolves the acting user from the query string, defaulting to
// the single-profile user.
func userID(r *http.Request) string {
	if u := r.URL.Query().Get("user_id"); u != "" {
		return u
	}
	return "default_user"
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers. An empty origin list, or a list
// containing "*", allows any origin; otherwise the request origin must
// match one of the configured origins to receive CORS headers.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed := "*"
			if !allowAll {
				allowed = ""
				reqOrigin := r.Header.Get("Origin")
				for _, o := range origins {
					if o == reqOrigin {
						allowed = o
						break
					}
				}
			}
			if allowed != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
