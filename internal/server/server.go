// Package server implements the local control API of a running wallboard.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/watchfire-io/wallboard/internal/exchange"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// Server exposes the dispatcher over HTTP on the loopback interface.
// Status changes made here use OriginRemote.
type Server struct {
	dispatcher *wallboard.Dispatcher
	logger     *slog.Logger
	mux        *http.ServeMux
	httpServer *http.Server
	listener   net.Listener
	port       int
}

// New creates a server listening on 127.0.0.1:port. Pass 0 for a dynamic port.
func New(d *wallboard.Dispatcher, port int, logger *slog.Logger) (*Server, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	s := NewHandler(d, logger)
	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.httpServer = &http.Server{
		Handler:      s.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s, nil
}

// NewHandler creates a server without a listener, for use with httptest.
func NewHandler(d *wallboard.Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		dispatcher: d,
		logger:     logger.With("component", "server"),
		mux:        http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /agents", s.handleListAgents)
	s.mux.HandleFunc("POST /agents/{name}/status", s.handleSetStatus)
	s.mux.HandleFunc("GET /export", s.handleExport)
	s.mux.HandleFunc("POST /import", s.handleImport)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Serve serves requests until Stop is called.
func (s *Server) Serve() error {
	s.logger.Info("control API listening", "addr", s.listener.Addr().String())
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("control API shutdown", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	reg := s.dispatcher.Registry()
	available := reg.Count(models.AgentStatusAvailable)
	writeJSON(w, http.StatusOK, AgentsResponse{
		Agents:    reg.Snapshot(),
		Available: available,
		Tooltip:   wallboard.Tooltip(available),
	})
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	ev, err := s.dispatcher.Dispatch(r.Context(), r.PathValue("name"), models.AgentStatus(req.Status), wallboard.OriginRemote)
	if err != nil {
		writeDispatchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewStatusResponse(ev))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(exchange.ExportText(s.dispatcher.Registry().All())))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	report, err := exchange.Apply(r.Context(), s.dispatcher, req.Entries, wallboard.OriginRemote)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, NewImportResponse(report))
}

func writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallboard.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, CodeInvalidStatus, err.Error())
	case errors.Is(err, wallboard.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
