// Package storage opens the key/value store selected by the configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/acadmate/internal/client/config"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
	"github.com/dmitrijs2005/acadmate/internal/kvstore/postgres"
	"github.com/dmitrijs2005/acadmate/internal/kvstore/redis"
	"github.com/dmitrijs2005/acadmate/internal/kvstore/sqlite"
)

// Opener functions are seams so tests can avoid real servers.
var (
	openSQLite = func(ctx context.Context, dsn string) (kvstore.Store, func() error, error) {
		s, err := sqlite.Open(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	openPostgres = func(ctx context.Context, dsn string) (kvstore.Store, func() error, error) {
		s, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	openRedis = func(ctx context.Context, addr, password, namespace string) (kvstore.Store, func() error, error) {
		s, err := redis.Open(ctx, addr, password, namespace)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
)

// Open returns the configured store, wrapped in a quota check when
// cfg.QuotaBytes is positive, and a function releasing its resources.
func Open(ctx context.Context, cfg *config.Config) (kvstore.Store, func() error, error) {
	var (
		store   kvstore.Store
		closeFn func() error
		err     error
	)

	switch cfg.StorageDriver {
	case config.DriverSQLite, "":
		store, closeFn, err = openSQLite(ctx, cfg.StorageDSN)
	case config.DriverPostgres:
		store, closeFn, err = openPostgres(ctx, cfg.StorageDSN)
	case config.DriverRedis:
		store, closeFn, err = openRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisNamespace)
	case config.DriverMemory:
		store, closeFn = kvstore.NewMemoryStore(), func() error { return nil }
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}

	if cfg.QuotaBytes > 0 {
		store = kvstore.NewQuotaStore(store, cfg.QuotaBytes)
	}
	return store, closeFn, nil
}
