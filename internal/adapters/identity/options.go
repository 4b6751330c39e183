package identity

import (
	"github.com/okian/mcstats/internal/adapters/snapshot"
	"github.com/okian/mcstats/pkg/logger"
)

// Option applies a configuration option to the Directory.
type Option func(*Directory)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithCache shares an existing JSON snapshot cache.
func WithCache(c *snapshot.Cache[any]) Option {
	return func(d *Directory) {
		if c != nil {
			d.cache = c
		}
	}
}
