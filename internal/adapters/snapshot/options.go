package snapshot

import "github.com/okian/mcstats/pkg/logger"

type options struct {
	logger logger.Logger
}

// Option applies a configuration option to a Cache.
type Option func(*options)

// WithLogger sets the logger used for missing and malformed files.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
