// Package rcon queries live server state over the remote console protocol.
package rcon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/mcstats/pkg/logger"
	"github.com/okian/mcstats/pkg/metrics"
	"golang.org/x/time/rate"
)

// Conn is one authenticated console session.
type Conn interface {
	Execute(command string) (string, error)
	Close() error
}

// Dialer opens and authenticates a session.
type Dialer func(ctx context.Context, addr, password string, timeout time.Duration) (Conn, error)

// Pool keeps one persistent session. Requests are serialized and paced; a
// failed request discards the session so the next one re-dials.
type Pool struct {
	addr     string
	password string
	timeout  time.Duration
	dial     Dialer
	limiter  *rate.Limiter
	logger   logger.Logger

	mu     sync.Mutex
	conn   Conn
	closed bool
}

// NewPool creates a pool for the console at addr. Nothing is dialled until
// the first request.
func NewPool(addr, password string, opts ...PoolOption) *Pool {
	p := &Pool{
		addr:     addr,
		password: password,
		timeout:  3 * time.Second,
		dial:     DialRCON,
		limiter:  rate.NewLimiter(rate.Limit(10), 4),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("rcon")
	return p
}

// Execute runs one console command and returns its reply.
func (p *Pool) Execute(ctx context.Context, command string) (string, error) {
	start := time.Now()
	var reply string
	err := p.withConn(ctx, func(c Conn) error {
		var err error
		reply, err = c.Execute(command)
		return err
	})

	status := "ok"
	if err != nil {
		status = "error"
		metrics.RecordErrorByComponent("rcon", "request")
	}
	metrics.RecordRconRequest(command, status, time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("rcon %q: %w", command, err)
	}
	return reply, nil
}

// withConn runs fn on the pooled session, dialling it first if needed. The
// session is released on return and discarded when fn fails.
func (p *Pool) withConn(ctx context.Context, fn func(Conn) error) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if p.conn == nil {
		conn, err := p.dial(ctx, p.addr, p.password, p.timeout)
		if err != nil {
			return fmt.Errorf("dial %s: %w", p.addr, err)
		}
		metrics.RecordRconConnect()
		p.logger.Debug(ctx, "session opened", logger.String("addr", p.addr))
		p.conn = conn
	}

	if err := fn(p.conn); err != nil {
		p.discardLocked(ctx)
		return err
	}
	return nil
}

func (p *Pool) discardLocked(ctx context.Context) {
	if p.conn == nil {
		return
	}
	if err := p.conn.Close(); err != nil {
		p.logger.Debug(ctx, "close after failure", logger.Error(err))
	}
	p.conn = nil
}

// Close closes the session; later requests fail with ErrPoolClosed.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
