// ABOUTME: Loopback HTTP server for the presentation layer, including the SSE event stream
// ABOUTME: Route registration, lifecycle, and graceful shutdown

// Package api serves the engine's command surface over a loopback HTTP
// listener. The presentation window talks JSON to it and subscribes to
// /api/events for capture notifications and window toggle signals.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pastify/pastify/internal/engine"
	"github.com/pastify/pastify/internal/notify"
)

// Server exposes the engine over HTTP
type Server struct {
	engine     *engine.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a server bound to addr. The address should stay on the
// loopback interface; the API carries clipboard history in the clear.
func NewServer(e *engine.Engine, addr string) *Server {
	s := &Server{
		engine: e,
		logger: slog.Default().With("component", "api"),
	}
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// RegisterRoutes attaches the API handlers to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/entries/", s.handleEntryRoutes)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/health", s.handleHealth)
}

// Run starts the listener and blocks until ctx is cancelled, then shuts
// down gracefully. Returns nil on graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	s.logger.Info("api listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Fresh context: the run context is already cancelled
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleEvents streams engine events as Server-Sent Events. Capture events
// carry the stored entry; window events have no payload.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.sendJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()
	events, subID := s.engine.Subscribe(ctx)
	s.logger.Debug("event stream opened", "subscriber", subID)
	defer s.logger.Debug("event stream closed", "subscriber", subID)

	s.writeSSEEvent(w, "connected", map[string]string{"subscriber": subID})
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.writeSSEEvent(w, string(ev.Kind), sseEventData(ev))
			flusher.Flush()
		}
	}
}

// sseEventData picks the JSON payload for an event.
func sseEventData(ev *notify.Event) any {
	if ev.Entry != nil {
		resp := entryToResponse(ev.Entry)
		return &resp
	}
	return map[string]string{}
}

// writeSSEEvent writes one event in SSE wire format.
func (s *Server) writeSSEEvent(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("marshaling SSE event", "event", event, "err", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
