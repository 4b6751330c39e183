// Package snapshot memoizes parsed file content keyed by path. An entry is
// reused until the file's modification time changes.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/okian/mcstats/pkg/logger"
	"github.com/okian/mcstats/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Lookup results reported to self-metrics.
const (
	resultHit        = "hit"
	resultMiss       = "miss"
	resultAbsent     = "absent"
	resultParseError = "parse_error"
	resultIOError    = "io_error"
)

// entry is immutable once stored; a refresh stores a new pointer.
type entry[T any] struct {
	modTime time.Time
	value   T
}

// Cache holds the last parsed value of each file it has been asked for.
// It is safe for concurrent use.
type Cache[T any] struct {
	name   string
	parse  Parser[T]
	logger logger.Logger

	entries sync.Map // path -> *entry[T]
	flight  singleflight.Group
}

// New creates a cache whose values are produced by parse. name labels the
// cache in logs and metrics.
func New[T any](name string, parse Parser[T], opts ...Option) *Cache[T] {
	o := options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		name:   name,
		parse:  parse,
		logger: o.logger.Named("snapshot." + name),
	}
}

// Fetch returns the parsed content of path. The file is only read when no
// entry exists or its modification time differs from the stored one. A
// missing or malformed file yields (zero, false).
func (c *Cache[T]) Fetch(ctx context.Context, path string) (T, bool) {
	var zero T

	info, err := os.Stat(path)
	if err != nil {
		c.entries.Delete(path)
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug(ctx, "file not found", logger.String("path", path))
			metrics.RecordCacheLookup(c.name, resultAbsent)
			return zero, false
		}
		c.logger.Warn(ctx, "stat failed", logger.String("path", path), logger.Error(err))
		metrics.RecordCacheLookup(c.name, resultIOError)
		return zero, false
	}

	if e, ok := c.load(path); ok && e.modTime.Equal(info.ModTime()) {
		metrics.RecordCacheLookup(c.name, resultHit)
		return e.value, true
	}

	ch := c.flight.DoChan(path, func() (any, error) {
		return c.refresh(path)
	})
	select {
	case <-ctx.Done():
		return zero, false
	case res := <-ch:
		if res.Err != nil {
			c.entries.Delete(path)
			result := resultIOError
			if errors.Is(res.Err, ErrParse) {
				result = resultParseError
			}
			if errors.Is(res.Err, fs.ErrNotExist) {
				result = resultAbsent
			}
			c.logger.Warn(ctx, "file unusable", logger.String("path", path), logger.Error(res.Err))
			metrics.RecordCacheLookup(c.name, result)
			return zero, false
		}
		metrics.RecordCacheLookup(c.name, resultMiss)
		return res.Val.(*entry[T]).value, true
	}
}

// Forget drops the entry for path so the next Fetch re-reads it.
func (c *Cache[T]) Forget(path string) {
	c.entries.Delete(path)
}

// Len returns the number of cached entries.
func (c *Cache[T]) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *Cache[T]) load(path string) (*entry[T], bool) {
	v, ok := c.entries.Load(path)
	if !ok {
		return nil, false
	}
	return v.(*entry[T]), true
}

// refresh reads and parses path. The stored modification time is taken from
// the open handle so it matches the bytes that were parsed.
func (c *Cache[T]) refresh(path string) (*entry[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	value, err := c.parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	e := &entry[T]{modTime: info.ModTime(), value: value}
	c.entries.Store(path, e)
	return e, nil
}
