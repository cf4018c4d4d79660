package spotify

import (
	"sync"

	"github.com/desertthunder/spotq/internal/cache"
)

var (
	defaultMu    sync.RWMutex
	defaultCache cache.Backend = cache.Null{}
)

// DefaultCache returns the process-wide default cache backend.
func DefaultCache() cache.Backend {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCache
}

// SetDefaultCache replaces the process-wide default cache backend and returns the previous one.
//
// Clients capture the default when they are constructed, so existing clients keep the backend they started with.
// A nil backend restores the pass-through [cache.Null].
func SetDefaultCache(b cache.Backend) cache.Backend {
	if b == nil {
		b = cache.Null{}
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultCache
	defaultCache = b
	return prev
}
