package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/spotq/internal/cache"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheClear removes every entry from the configured backend.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	b, err := r.backend()
	if err != nil {
		return err
	}

	if err := cache.Clear(ctx, b); err != nil {
		if errors.Is(err, shared.ErrUnsupported) {
			return fmt.Errorf("%w: %s backend cannot be cleared", shared.ErrUnsupported, cache.Name(b))
		}
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("cache cleared", "backend", cache.Name(b))
	return r.writePlain("✓ Cache cleared (%s)\n", cache.Name(b))
}

// CacheStats prints the backend name and entry count.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	b, err := r.backend()
	if err != nil {
		return err
	}

	stats := struct {
		Backend string `json:"backend"`
		Entries *int   `json:"entries"`
	}{Backend: cache.Name(b)}

	n, err := cache.Len(ctx, b)
	switch {
	case err == nil:
		stats.Entries = &n
	case errors.Is(err, shared.ErrUnsupported):
	default:
		return fmt.Errorf("failed to count cache entries: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, false)
	}

	if stats.Entries == nil {
		return r.writePlain("Backend: %s\nEntries: n/a\n", stats.Backend)
	}
	return r.writePlain("Backend: %s\nEntries: %d\n", stats.Backend, n)
}
