// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	statsProvider StatsProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(statsProvider StatsProvider) *HealthHandler {
	return &HealthHandler{statsProvider: statsProvider}
}

type healthResponse struct {
	Status  string `json:"status"`
	Started bool   `json:"started"`
}

// HandleHealth handles GET /healthz requests. It reports ok once the
// collection service has started.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	started, _ := h.statsProvider.GetStats()["started"].(bool)
	if !started {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "starting"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Started: true})
}

// MetricsHandler serves the Prometheus exposition.
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a handler over gatherer. A scrape that partly
// fails still serves what was gathered.
func NewMetricsHandler(gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{
		handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			ErrorHandling: promhttp.ContinueOnError,
		}),
	}
}

// HandleMetrics handles GET on the metrics path.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	h.handler.ServeHTTP(w, r)
}
