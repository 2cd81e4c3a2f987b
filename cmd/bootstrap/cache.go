package bootstrap

import (
	"context"

	"slotmarket/internal/infra/cache"
	"slotmarket/internal/pkg/config"
	"slotmarket/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCache,
	),
)

// NewCache selects the cache backend. Redis is the default; "memory"
// keeps the process self-contained for tests and local runs.
func NewCache(lc fx.Lifecycle, cfg config.Config) (shared.Cache, error) {
	if cfg.Cache.Backend == "memory" {
		return cache.NewMemoryCache(), nil
	}

	redisCache, cleanup, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return redisCache, nil
}
