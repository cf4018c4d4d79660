package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/spotq/internal/cache"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the example config when none exists and prepares the configured cache.
//
// For the sqlite backend this creates the database file and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		return fmt.Errorf("%w: --config path is empty", shared.ErrMissingArgument)
	}

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file exists", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		if r.config, err = shared.LoadConfig(configPath); err != nil {
			return err
		}
		if err := shared.ApplyEnv(r.config); err != nil {
			return err
		}
		if b := cmd.String("cache"); b != "" {
			r.config.Cache.Backend = b
		}
		r.writePlain("✓ Config written to %s\n", configPath)
	}

	backend := strings.ToLower(strings.TrimSpace(r.config.Cache.Backend))
	if backend != cache.NameSQLite {
		r.writePlain("Cache backend: %s (nothing to migrate)\n", r.config.Cache.Backend)
		return nil
	}

	r.logger.Info("initializing cache database", "path", r.config.Cache.Path)

	b, err := cache.OpenSQLite(r.config.Cache.Path, r.config.Cache.MaxOpenConns, r.logger)
	if err != nil {
		return fmt.Errorf("failed to prepare cache database: %w", err)
	}
	defer b.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Cache.Path)
	r.writePlain("✓ Cache database ready at %s\n", r.config.Cache.Path)
	return nil
}
