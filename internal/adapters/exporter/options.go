package exporter

import (
	"time"

	"github.com/okian/mcstats/pkg/logger"
)

// Option applies a configuration option to the Collector.
type Option func(*Collector)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds one collection cycle.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}
