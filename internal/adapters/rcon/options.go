package rcon

import (
	"time"

	"github.com/okian/mcstats/pkg/logger"
	"golang.org/x/time/rate"
)

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*Pool)

// WithPoolLogger sets the pool's logger.
func WithPoolLogger(l logger.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTimeout bounds dialling and every request.
func WithTimeout(d time.Duration) PoolOption {
	return func(p *Pool) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithRate paces requests to perSecond with the given burst.
func WithRate(perSecond float64, burst int) PoolOption {
	return func(p *Pool) {
		if perSecond > 0 && burst > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithDialer replaces the session dialer.
func WithDialer(d Dialer) PoolOption {
	return func(p *Pool) {
		if d != nil {
			p.dial = d
		}
	}
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithLogger sets the client's logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithForge enables the Forge-only entity and mod queries.
func WithForge(enabled bool) Option {
	return func(c *Client) {
		c.forge = enabled
	}
}

// WithTTL sets how long volatile answers (online roster, entity counts) and
// near-static answers (mods, world meta) are reused.
func WithTTL(volatile, static time.Duration) Option {
	return func(c *Client) {
		if volatile > 0 {
			c.volatileTTL = volatile
		}
		if static > 0 {
			c.staticTTL = static
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
