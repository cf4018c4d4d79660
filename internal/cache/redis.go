package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "spotq:"

// Redis stores entries in Redis under the "spotq:" prefix.
//
// A positive ttl expires entries after that duration; zero keeps them forever.
type Redis struct {
	client *redis.Client
	owned  bool
	ttl    time.Duration
	logger *log.Logger
}

// OpenRedis connects to the server at url (redis://host:port/db).
func OpenRedis(url string, ttl time.Duration, logger *log.Logger) (*Redis, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: cache.redis_url is required for the redis backend", shared.ErrInvalidConfig)
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: cache.redis_url: %v", shared.ErrInvalidConfig, err)
	}

	r := NewRedis(redis.NewClient(opts), ttl, logger)
	r.owned = true
	return r, nil
}

// NewRedis wraps an existing client. The caller keeps ownership of client.
func NewRedis(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Redis{client: client, ttl: ttl, logger: shared.WithLogger(logger, "cache", NameRedis)}
}

func (r *Redis) Fetch(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("failed to fetch cache entry", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func (r *Redis) Store(ctx context.Context, key, value string) string {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		r.logger.Warn("failed to store cache entry", "key", key, "error", err)
	}
	return value
}

func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear cache entries: %w", err)
	}
	return nil
}

func (r *Redis) Len(ctx context.Context) (int, error) {
	keys, err := r.keys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (r *Redis) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return keys, nil
}

// Close closes the client when it was opened by [OpenRedis].
func (r *Redis) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}
