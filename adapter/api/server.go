// Package api provides the HTTP API for the siteline service.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/storeops/siteline/internal/app"
	"github.com/storeops/siteline/internal/shared/apperror"
	"github.com/storeops/siteline/internal/shared/infrastructure/metrics"
)

// Server is the HTTP API server.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg ServerConfig, container *app.Container, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	s := &Server{
		mux:     mux,
		logger:  logger,
		metrics: container.Metrics,
	}

	locations := NewLocationHandler(container)
	plans := NewPlanHandler(container)
	regions := NewRegionHandler(container)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(container.Metrics.Registry, promhttp.HandlerOpts{}))

	s.route("POST /api/v1/locations", locations.Create)
	s.route("GET /api/v1/locations", locations.List)
	s.route("GET /api/v1/locations/export", locations.Export)
	s.route("GET /api/v1/locations/statistics", locations.Statistics)
	s.route("POST /api/v1/locations/batch", locations.BatchOperate)
	s.route("GET /api/v1/locations/{id}", locations.Get)
	s.route("PUT /api/v1/locations/{id}", locations.Update)
	s.route("DELETE /api/v1/locations/{id}", locations.Delete)
	s.route("POST /api/v1/locations/{id}/status", locations.ChangeStatus)
	s.route("POST /api/v1/locations/{id}/priority", locations.ChangePriority)
	s.route("POST /api/v1/locations/{id}/score", locations.UpdateScore)
	s.route("GET /api/v1/locations/{id}/follow-ups", locations.ListFollowUps)
	s.route("POST /api/v1/locations/{id}/follow-ups", locations.CreateFollowUp)
	s.route("GET /api/v1/locations/{id}/audit", locations.ListAuditTrail)
	s.route("POST /api/v1/follow-ups/{id}/complete", locations.CompleteFollowUp)
	s.route("DELETE /api/v1/follow-ups/{id}", locations.DeleteFollowUp)

	s.route("POST /api/v1/plans", plans.Create)
	s.route("GET /api/v1/plans", plans.List)
	s.route("GET /api/v1/plans/{id}", plans.Get)
	s.route("POST /api/v1/plans/{id}/status", plans.ChangeStatus)

	s.route("POST /api/v1/regions", regions.Create)
	s.route("GET /api/v1/regions", regions.List)
	s.route("POST /api/v1/regions/{id}/active", regions.SetActive)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// route registers a handler wrapped with latency instrumentation.
func (s *Server) route(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(recorder, r)
		s.metrics.HTTPRequestDuration.
			WithLabelValues(pattern, strconv.Itoa(recorder.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError maps an application error onto an HTTP status and writes the
// JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindBadRequest:
		status = http.StatusBadRequest
	case apperror.KindConflict:
		status = http.StatusConflict
	case apperror.KindForbidden:
		status = http.StatusForbidden
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
		message = "internal server error"
	}
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
