// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Default route paths.
const (
	DefaultMetricsPath = "/metrics"
	healthPath         = "/healthz"
	statsPath          = "/stats"
)

// Server wires HTTP routes for the exporter.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	metricsHandler *MetricsHandler
	metricsPath    string
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMetricsPath sets the path the exposition is served on.
func WithMetricsPath(path string) Option {
	return func(s *Server) {
		if path != "" {
			s.metricsPath = path
		}
	}
}

// NewServer creates a new API server with all handlers. gatherer supplies
// the exposition served on the metrics path.
func NewServer(statsProvider StatsProvider, gatherer prometheus.Gatherer, opts ...Option) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(statsProvider),
		statsHandler:   NewStatsHandler(statsProvider),
		metricsHandler: NewMetricsHandler(gatherer),
		metricsPath:    DefaultMetricsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc(healthPath, MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc(statsPath, MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc(s.metricsPath, MetricsMiddleware(s.metricsHandler.HandleMetrics, "metrics"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// requireGet rejects anything but GET and HEAD.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	return false
}
