package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelins/tapcore/internal/config"
	"github.com/avelins/tapcore/internal/database"
	"github.com/avelins/tapcore/internal/database/memory"
	"github.com/avelins/tapcore/internal/database/postgres"
	"github.com/avelins/tapcore/internal/logger"
	"github.com/avelins/tapcore/internal/repository"
)

// InitializeSessionStore selects and connects the session state store.
// The postgres backend returns its pool for readiness checks; the in-memory
// backend (dev mode, tests) returns a nil pool.
func InitializeSessionStore(ctx context.Context, cfg *config.Config) (repository.Session, *pgxpool.Pool, error) {
	backend := cfg.StoreBackend
	if cfg.DevMode {
		backend = config.StoreBackendMemory
	}

	switch backend {
	case config.StoreBackendMemory:
		logger.Info("Using in-memory session store")
		return memory.NewSessionRepository(), nil, nil

	case config.StoreBackendPostgres:
		pool, err := database.NewPool(
			cfg.GetDBConnString(),
			database.DefaultMaxConnections,
			database.DefaultMaxIdleTime,
			database.DefaultMaxLifetime,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database pool: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		logger.Info("Connected to postgres session store",
			"host", cfg.DBHost,
			"database", cfg.DBName)
		return postgres.NewSessionRepository(pool), pool, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
