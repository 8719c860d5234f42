package kv

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/infrastructure/logger"
)

// Open creates the medium selected by cfg.Store.Medium. When tracing is
// true the store is wrapped with TracedStore.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, tracing bool) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Store.Medium {
	case config.MediumMemory:
		store = NewMemoryStore()
	case config.MediumRedis:
		store, err = NewRedisStore(ctx, RedisOptions{
			Addr:      cfg.Redis.Addr(),
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Store.KeyPrefix,
		})
	case config.MediumSQL:
		store, err = openSQL(cfg, log)
	case config.MediumS3:
		store, err = NewS3Store(ctx, cfg.S3)
	default:
		err = fmt.Errorf("unknown store medium %q", cfg.Store.Medium)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Medium, err)
	}

	log.Info("Key-value medium ready",
		zap.String("medium", cfg.Store.Medium),
		zap.Duration("read_latency", cfg.Store.ReadLatency),
	)

	if tracing {
		return WithTracing(store, cfg.Store.Medium), nil
	}
	return store, nil
}

func openSQL(cfg *config.Config, log *zap.Logger) (*SQLStore, error) {
	gl := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := OpenDatabase(cfg.Database, gl)
	if err != nil {
		return nil, err
	}
	store := NewSQLStore(db)
	if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DriverSQLite {
		if err := store.AutoMigrate(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
		}
	}
	return store, nil
}
