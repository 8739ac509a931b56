package app

import (
	"context"
	"fmt"

	"github.com/4Lienau/directory-sync/internal/config"
	"github.com/4Lienau/directory-sync/internal/store"
)

// loadDatabaseConfig loads configuration and requires a database section.
func loadDatabaseConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("database configuration is required")
	}
	return cfg, nil
}

// setupStore loads configuration and opens the database pool for one-shot
// commands. The returned cleanup closes the pool.
func setupStore(ctx context.Context, configPath string) (*config.Config, *store.Store, func(), error) {
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Database == nil {
		return nil, nil, nil, fmt.Errorf("database configuration is required")
	}

	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	maxConns := cfg.Database.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}

	pool, err := store.Connect(ctx, connString, maxConns)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	st, err := store.New(pool)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("failed to create store: %w", err)
	}

	return cfg, st, pool.Close, nil
}
