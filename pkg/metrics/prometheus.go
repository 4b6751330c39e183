// Package metrics provides the exporter's own Prometheus instrumentation:
// how long collection takes, how often caches hit, how the RCON channel
// behaves. Game measurements are exposed by internal/adapters/exporter.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages the exporter self-metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Collection cycle
	collectionDuration prometheus.Histogram
	collectionsTotal   prometheus.Counter
	playersCollected   prometheus.Gauge
	workerCount        prometheus.Gauge
	unclassifiedStats  *prometheus.CounterVec

	// Snapshot cache
	cacheRequests *prometheus.CounterVec

	// RCON
	rconRequests        *prometheus.CounterVec
	rconRequestDuration prometheus.Histogram
	rconReconnects      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
}

// current holds the process-wide manager and the registry it writes to.
var current atomic.Pointer[global] //nolint:gochecknoglobals // singleton metrics manager

type global struct {
	manager  *Manager
	registry *prometheus.Registry
}

func init() { //nolint:gochecknoinits // recorders work before Configure is called
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry and returns that registry. Call it during startup, before the
// registry is handed to a scrape handler.
func Configure(opts ...Option) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	all := append([]Option{WithPrometheusRegistry(registry)}, opts...)
	current.Store(&global{manager: NewManager(all...), registry: registry})
	return registry
}

func manager() *Manager {
	return current.Load().manager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mcstats",
		subsystem:        "exporter",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.collectionDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "collection_duration_seconds",
		Help:        "Duration of one full collection cycle",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.collectionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "collections_total",
		Help:        "Total number of collection cycles run",
		ConstLabels: constLabels,
	})

	m.playersCollected = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "players_collected",
		Help:        "Players normalized during the last collection cycle",
		ConstLabels: constLabels,
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_count",
		Help:        "Upper bound of concurrent player normalizations",
		ConstLabels: constLabels,
	})

	m.unclassifiedStats = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "unclassified_stats_total",
			Help:        "Raw statistic keys that could not be classified and were skipped",
			ConstLabels: constLabels,
		},
		[]string{"schema"},
	)

	m.cacheRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "snapshot_cache_requests_total",
			Help:        "Snapshot cache lookups by cache and result (hit, miss, absent, parse_error)",
			ConstLabels: constLabels,
		},
		[]string{"cache", "result"},
	)

	m.rconRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rcon_requests_total",
			Help:        "RCON commands issued by command and status",
			ConstLabels: constLabels,
		},
		[]string{"command", "status"},
	)

	m.rconRequestDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rcon_request_duration_seconds",
		Help:        "Round-trip latency of RCON commands",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.rconReconnects = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rcon_connects_total",
		Help:        "RCON connections established",
		ConstLabels: constLabels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Soft errors by component and type",
			ConstLabels: constLabels,
		},
		[]string{"component", "error_type"},
	)
}

// Collection cycle.

// RecordCollection observes one finished collection cycle.
func RecordCollection(seconds float64, players int) {
	manager().RecordCollection(seconds, players)
}

// RecordCollection observes one finished collection cycle.
func (m *Manager) RecordCollection(seconds float64, players int) {
	if !m.enabled {
		return
	}
	m.collectionsTotal.Inc()
	m.collectionDuration.Observe(seconds)
	m.playersCollected.Set(float64(players))
}

// UpdateWorkerCount records the normalization fan-out bound.
func UpdateWorkerCount(count int) {
	if m := manager(); m.enabled {
		m.workerCount.Set(float64(count))
	}
}

// RecordUnclassifiedStats adds n skipped statistic keys for a schema.
func RecordUnclassifiedStats(schema string, n int) {
	if m := manager(); m.enabled && n > 0 {
		m.unclassifiedStats.WithLabelValues(schema).Add(float64(n))
	}
}

// Snapshot cache.

// RecordCacheLookup counts a snapshot cache lookup outcome.
func RecordCacheLookup(cache, result string) {
	if m := manager(); m.enabled {
		m.cacheRequests.WithLabelValues(cache, result).Inc()
	}
}

// RCON.

// RecordRconRequest counts one RCON command and its latency.
func RecordRconRequest(command, status string, seconds float64) {
	m := manager()
	if !m.enabled {
		return
	}
	m.rconRequests.WithLabelValues(command, status).Inc()
	m.rconRequestDuration.Observe(seconds)
}

// RecordRconConnect counts an established RCON connection.
func RecordRconConnect() {
	if m := manager(); m.enabled {
		m.rconReconnects.Inc()
	}
}

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if m := manager(); m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	if m := manager(); m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
	}
}

// Errors.

// RecordErrorByComponent records a soft error for a component.
func RecordErrorByComponent(component, errorType string) {
	if m := manager(); m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// GetRegistry returns the registry holding the self-metrics. Game families
// live on a separate registry and are merged at the scrape handler.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}
