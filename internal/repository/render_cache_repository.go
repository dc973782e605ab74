package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"videepat_foods/internal/storage"
	redisapp "videepat_foods/internal/storage/redis"
)

const renderScanBatch = 100

// RedisRenderCache второй уровень кэша отрисованных страниц, общий для всех инстансов.
type RedisRenderCache struct {
	Client *redisapp.Client
}

func NewRedisRenderCache(client *redisapp.Client) *RedisRenderCache {
	return &RedisRenderCache{Client: client}
}

func (r *RedisRenderCache) GetRendered(ctx context.Context, key string) (string, error) {
	const op = "repository.render_cache_repository.GetRendered"

	val, err := r.Client.Get(ctx, renderKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrCacheMiss
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return val, nil
}

func (r *RedisRenderCache) SetRendered(ctx context.Context, key, html string, ttl time.Duration) error {
	const op = "repository.render_cache_repository.SetRendered"

	if err := r.Client.Set(ctx, renderKey(key), html, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteRendered drops every cached rendering whose key starts with prefix.
// Keys are walked with SCAN so a large keyspace never blocks Redis.
func (r *RedisRenderCache) DeleteRendered(ctx context.Context, prefix string) error {
	const op = "repository.render_cache_repository.DeleteRendered"

	match := renderKey(prefix) + "*"

	var cursor uint64
	for {
		keys, next, err := r.Client.Scan(ctx, cursor, match, renderScanBatch).Result()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if len(keys) > 0 {
			if err := r.Client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func renderKey(key string) string {
	return "render:" + key
}
