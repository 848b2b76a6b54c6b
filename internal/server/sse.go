package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alfredjeanlab/chatwire/internal/idgen"
)

// handleEvents handles GET /events: one long-lived SSE stream per connection.
// Events arrive from the user's multicast point in publish order; a keep-alive
// comment goes out whenever the stream has been idle for the configured
// interval.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, userID int64) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	connID, err := idgen.Generate()
	if err != nil {
		connID = "cn-unknown"
	}

	rcv := s.registry.Subscribe(userID)
	defer s.registry.Unsubscribe(rcv)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering.
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	s.logger.Info("stream opened", "user_id", userID, "conn_id", connID)
	defer s.logger.Info("stream closed", "user_id", userID, "conn_id", connID)

	ctx := r.Context()
	keepalive := time.NewTicker(s.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-rcv.Events():
			data, err := ev.Wire()
			if err != nil {
				s.logger.Warn("failed to marshal event", "type", ev.Type, "conn_id", connID, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event:%s\ndata:%s\n\n", ev.Type, data); err != nil {
				return
			}
			flusher.Flush()
			keepalive.Reset(s.keepalive)

		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ":keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
