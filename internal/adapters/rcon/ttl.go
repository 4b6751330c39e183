package rcon

import (
	"context"
	"sync"
	"time"
)

// ttlValue memoizes the last successful answer of one query. Failures are
// not stored, so the next call asks again.
type ttlValue[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	value   T
	expires time.Time
	valid   bool
}

func newTTLValue[T any](ttl time.Duration, now func() time.Time) *ttlValue[T] {
	return &ttlValue[T]{ttl: ttl, now: now}
}

// get returns the stored answer while fresh, else calls load. Concurrent
// callers wait for a single load.
func (v *ttlValue[T]) get(ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.valid && v.now().Before(v.expires) {
		return v.value, nil
	}
	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	v.value = value
	v.expires = v.now().Add(v.ttl)
	v.valid = true
	return value, nil
}
