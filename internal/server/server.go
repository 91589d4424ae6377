// Package server exposes the HTTP control surface of the rotation service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"modem-rotatord/internal/pkg/config"
	"modem-rotatord/internal/pkg/logging"
	"modem-rotatord/internal/pkg/version"
	"modem-rotatord/internal/port"

	"github.com/sirupsen/logrus"
)

const serviceName = "modem-rotatord"

// Server serves the rotation API over HTTP.
type Server struct {
	rotator port.Rotator
	httpSrv *http.Server
	logger  *logrus.Entry
}

// New creates the HTTP server with all routes registered.
func New(cfg *config.Config, rotator port.Rotator) *Server {
	s := &Server{
		rotator: rotator,
		logger:  logging.WithComponent("http"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/rotate", s.handleRotate)

	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.withLogging(mux),
		ReadHeaderTimeout: 5 * time.Second,
		// No write timeout: a rotation takes tens of seconds.
	}
	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("Shutdown did not complete cleanly")
		}
	}()

	s.logger.WithField("addr", s.httpSrv.Addr).Info("Starting HTTP server")
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// handleRoot serves the service metadata and is the catch-all for unknown
// routes.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Endpoint not found"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": serviceName,
		"version": version.GetGitInfo().Tag,
		"endpoints": map[string]string{
			"/status": "Get connection status",
			"/rotate": "Rotate connection",
			"/health": "Health check",
		},
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, s.rotator.Status(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	// A rotation runs to completion even if the client goes away, so it is
	// detached from the request context. A failed cycle is still a 200
	// with success:false; it is a result, not a transport error.
	result := s.rotator.Rotate(context.Background())
	writeJSON(w, http.StatusOK, result)
}

// withLogging narrates every request to the audit log.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(body)
}
