package world

import "github.com/okian/mcstats/pkg/logger"

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithWorldName overrides the level-name from server.properties.
func WithWorldName(name string) Option {
	return func(r *Reader) {
		r.world = name
	}
}
