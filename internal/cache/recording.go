package cache

import (
	"context"
	"sync/atomic"
)

// Recording wraps a backend and counts lookups and writes.
type Recording struct {
	inner  Backend
	hits   atomic.Int64
	misses atomic.Int64
	stores atomic.Int64
}

// Stats is a snapshot of [Recording] counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Stores int64 `json:"stores"`
}

// NewRecording wraps inner. A nil inner is replaced by [Null].
func NewRecording(inner Backend) *Recording {
	if inner == nil {
		inner = Null{}
	}
	return &Recording{inner: inner}
}

func (r *Recording) Fetch(ctx context.Context, key string) (string, bool) {
	v, ok := r.inner.Fetch(ctx, key)
	if ok {
		r.hits.Add(1)
	} else {
		r.misses.Add(1)
	}
	return v, ok
}

func (r *Recording) Store(ctx context.Context, key, value string) string {
	r.stores.Add(1)
	return r.inner.Store(ctx, key, value)
}

// Unwrap returns the wrapped backend.
func (r *Recording) Unwrap() Backend {
	return r.inner
}

// Stats returns the current counters.
func (r *Recording) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load(), Stores: r.stores.Load()}
}

func (r *Recording) Clear(ctx context.Context) error { return Clear(ctx, r.inner) }

func (r *Recording) Len(ctx context.Context) (int, error) { return Len(ctx, r.inner) }

func (r *Recording) Close() error { return Close(r.inner) }
