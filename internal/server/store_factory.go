package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/league-stats-service/internal/config"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
	"github.com/preston-bernstein/league-stats-service/internal/metrics"
	"github.com/preston-bernstein/league-stats-service/internal/store"
)

// storeFactory assembles the configured blob backend with shared wrappers (retry + metrics).
type storeFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newStoreFactory(logger *slog.Logger, metrics *metrics.Recorder) storeFactory {
	return storeFactory{logger: logger, metrics: metrics}
}

func (f storeFactory) build(ctx context.Context, cfg config.StoreConfig) (*store.LeagueStore, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = config.StoreMemory
	}
	blobs, err := f.open(ctx, backend, cfg)
	if err != nil {
		return nil, err
	}
	// Network backends get retries; local ones fail fast.
	if backend == config.StoreRedis || backend == config.StorePostgres {
		blobs = store.NewRetrying(blobs, f.logger, 0, 0)
	}
	logging.Info(f.logger, "league store ready", logging.FieldBackend, backend)
	return store.NewLeagueStore(store.NewInstrumented(blobs, backend, f.metrics)), nil
}

func (f storeFactory) open(ctx context.Context, backend string, cfg config.StoreConfig) (store.Blobs, error) {
	switch backend {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreFS:
		return store.NewFSStore(cfg.DataDir)
	case config.StoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("store backend %q requires REDIS_URL", backend)
		}
		return store.NewRedisStore(cfg.RedisURL, cfg.RedisPrefix)
	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("store backend %q requires DATABASE_URL", backend)
		}
		return store.NewSQLStore(ctx, store.DriverPostgres, cfg.DatabaseURL)
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return store.NewSQLStore(ctx, store.DriverSQLite, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
