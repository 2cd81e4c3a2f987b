package cache

import (
	"context"
	"errors"
	"time"

	"slotmarket/internal/pkg/config"
	"slotmarket/internal/pkg/errs"
	"slotmarket/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// RedisCache backs the shared.Cache port with a redis instance. Values
// are plain strings; expiry is delegated to redis TTLs.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (*RedisCache, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		_ = client.Close()
	}
	return &RedisCache{client: client}, cleanup, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, errs.Wrap(err, "failed to get cache key")
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to set cache key")
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errs.Wrap(err, "failed to delete cache key")
	}
	return nil
}

var _ shared.Cache = (*RedisCache)(nil)
