package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotq/internal/shared"
)

// Backend identifiers accepted by [Open].
const (
	NameNull   = "null"
	NameMemory = "memory"
	NameSQLite = "sqlite"
	NameRedis  = "redis"
)

// Backend is a string key-value store.
type Backend interface {
	// Fetch returns the value stored under key and true, or "" and false on a miss.
	Fetch(ctx context.Context, key string) (string, bool)

	// Store saves value under key and returns value.
	Store(ctx context.Context, key, value string) string
}

// Clearer is implemented by backends that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Counter is implemented by backends that can report their size.
type Counter interface {
	Len(ctx context.Context) (int, error)
}

// Closer is implemented by backends holding external resources.
type Closer interface {
	Close() error
}

// Null is the pass-through backend. It never retains data.
type Null struct{}

func (Null) Fetch(ctx context.Context, key string) (string, bool) { return "", false }

func (Null) Store(ctx context.Context, key, value string) string { return value }

// Name returns the identifier of b, or "custom" for backends defined outside this package.
func Name(b Backend) string {
	switch v := b.(type) {
	case Null, *Null:
		return NameNull
	case *Memory:
		return NameMemory
	case *SQLite:
		return NameSQLite
	case *Redis:
		return NameRedis
	case *Recording:
		return Name(v.inner)
	default:
		return "custom"
	}
}

// Open builds the backend selected by conf.Backend. An empty identifier selects [Null].
func Open(conf shared.CacheConfig, logger *log.Logger) (Backend, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	switch strings.ToLower(strings.TrimSpace(conf.Backend)) {
	case "", NameNull:
		return Null{}, nil
	case NameMemory:
		return NewMemory(), nil
	case NameSQLite:
		if conf.Path == "" {
			return nil, fmt.Errorf("%w: cache.path is required for the sqlite backend", shared.ErrInvalidConfig)
		}
		return OpenSQLite(conf.Path, conf.MaxOpenConns, logger)
	case NameRedis:
		ttl, err := conf.EntryTTL()
		if err != nil {
			return nil, err
		}
		return OpenRedis(conf.RedisURL, ttl, logger)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, conf.Backend)
	}
}

// Clear drops every entry of b when supported.
func Clear(ctx context.Context, b Backend) error {
	if c, ok := b.(Clearer); ok {
		return c.Clear(ctx)
	}
	return fmt.Errorf("%w: clear on %s", shared.ErrUnsupported, Name(b))
}

// Len reports the number of entries in b when supported.
func Len(ctx context.Context, b Backend) (int, error) {
	if c, ok := b.(Counter); ok {
		return c.Len(ctx)
	}
	return 0, fmt.Errorf("%w: len on %s", shared.ErrUnsupported, Name(b))
}

// Close releases resources held by b, if any.
func Close(b Backend) error {
	if c, ok := b.(Closer); ok {
		return c.Close()
	}
	return nil
}
