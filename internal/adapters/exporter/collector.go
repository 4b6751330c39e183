// Package exporter exposes projected families through the Prometheus
// client library.
package exporter

import (
	"context"
	"strings"
	"time"

	"github.com/okian/mcstats/internal/domain/projection"
	"github.com/okian/mcstats/pkg/logger"
	"github.com/okian/mcstats/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Source runs one collection cycle.
type Source interface {
	Collect(ctx context.Context) []projection.Family
}

// Collector runs a collection cycle on every scrape. It describes nothing up
// front, so it registers as an unchecked collector.
type Collector struct {
	source  Source
	timeout time.Duration
	logger  logger.Logger
}

// New creates a Collector over source.
func New(source Source, opts ...Option) *Collector {
	c := &Collector{source: source, timeout: 10 * time.Second, logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("exporter")
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	for _, f := range c.source.Collect(ctx) {
		c.emit(ctx, ch, f)
	}
}

func (c *Collector) emit(ctx context.Context, ch chan<- prometheus.Metric, f projection.Family) {
	if len(f.Samples) == 0 {
		return
	}
	desc := prometheus.NewDesc(f.Name, f.Help, f.Labels, nil)
	valueType := prometheus.GaugeValue
	if f.Type == projection.Counter {
		valueType = prometheus.CounterValue
	}

	seen := make(map[string]struct{}, len(f.Samples))
	for _, s := range f.Samples {
		key := strings.Join(s.Labels, "\xff")
		if _, dup := seen[key]; dup {
			c.logger.Warn(ctx, "duplicate sample dropped",
				logger.String("family", f.Name),
				logger.Any("labels", s.Labels))
			metrics.RecordErrorByComponent("exporter", "duplicate_sample")
			continue
		}
		seen[key] = struct{}{}

		m, err := prometheus.NewConstMetric(desc, valueType, s.Value, s.Labels...)
		if err != nil {
			c.logger.Error(ctx, "invalid sample", logger.String("family", f.Name), logger.Error(err))
			metrics.RecordErrorByComponent("exporter", "invalid_sample")
			continue
		}
		ch <- m
	}
}
