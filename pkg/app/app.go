package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/fabric-atlas/pkg/cache"
	"github.com/de-tools/fabric-atlas/pkg/services/analytics"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
	"github.com/de-tools/fabric-atlas/pkg/services/ordersync"
	"github.com/de-tools/fabric-atlas/pkg/services/sources"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/orders"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/syncstate"
	"github.com/rs/zerolog"
)

// App holds the services shared by the web server and the terminal CLI.
type App struct {
	Settings   *config.Settings
	DB         *sql.DB
	Profiles   config.Registry
	Orders     orders.Store
	SyncStates syncstate.Store
	Catalog    *sources.Catalog
	Cache      cache.Cache
	Analytics  analytics.Service
	Sync       *ordersync.DefaultController

	redis *cache.RedisCache
}

func New(ctx context.Context, settings *config.Settings) (*App, error) {
	logger := zerolog.Ctx(ctx)

	profiles, err := config.NewRegistry(settings.Sources.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create source profile registry: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.DB.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	a := &App{Settings: settings, DB: db, Profiles: profiles}

	if a.Orders, err = orders.NewStore(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create order store: %w", err)
	}
	if a.SyncStates, err = syncstate.NewStore(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create sync state store: %w", err)
	}

	switch settings.Cache.Backend {
	case config.CacheBackendRedis:
		a.redis, err = cache.NewRedisCacheFromURL(ctx, settings.Cache.RedisURL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Cache = a.redis
	default:
		a.Cache = cache.NewMemoryCache()
	}
	logger.Debug().Str("backend", string(settings.Cache.Backend)).Msg("analytics cache ready")

	a.Catalog = sources.NewCatalog(profiles, sources.DefaultRegistry(a.Orders), a.Orders)
	a.Analytics = analytics.NewService(a.Catalog, a.Cache, settings.Cache.TTL)
	a.Sync = ordersync.NewController(db, a.Catalog, a.SyncStates, a.Orders, ordersync.RunnerConfig{
		Interval: settings.Sync.Interval,
	})

	return a, nil
}

// Close stops running syncs and releases sources, cache and database.
func (a *App) Close() error {
	var errs []error
	if a.Sync != nil {
		a.Sync.Shutdown()
	}
	if a.Catalog != nil {
		errs = append(errs, a.Catalog.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
