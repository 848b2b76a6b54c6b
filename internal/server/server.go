// Package server exposes the HTTP surface of the notify daemon: the SSE
// event stream, the health check, and the index page.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/alfredjeanlab/chatwire/internal/auth"
	"github.com/alfredjeanlab/chatwire/internal/registry"
	"github.com/alfredjeanlab/chatwire/internal/store"
)

// defaultKeepalive is used when no interval is configured.
const defaultKeepalive = 30 * time.Second

//go:embed index.html
var indexHTML []byte

// Server wires the subscriber registry, the token verifier, and the store
// behind the HTTP handlers.
type Server struct {
	registry  *registry.Registry
	verifier  auth.Verifier
	store     store.Store
	keepalive time.Duration
	logger    *slog.Logger
}

// New returns a Server. keepalive <= 0 selects the default interval.
func New(reg *registry.Registry, verifier auth.Verifier, st store.Store, keepalive time.Duration, logger *slog.Logger) *Server {
	if keepalive <= 0 {
		keepalive = defaultKeepalive
	}
	return &Server{
		registry:  reg,
		verifier:  verifier,
		store:     st,
		keepalive: keepalive,
		logger:    logger,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events", s.requireUser(s.handleEvents))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	return mux
}

// handleHealth handles GET /healthz: database reachability plus live
// connection counts.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"users":       s.registry.Users(),
		"connections": s.registry.Receivers(),
	})
}

// handleIndex serves the embedded demo page that opens an event stream.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML) //nolint:errcheck
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
