package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/storage"
	redisapp "videepat_foods/internal/storage/redis"
)

type RedisCartRepo struct {
	Client *redisapp.Client
	TTL    time.Duration
}

func NewRedisCartRepo(client *redisapp.Client, ttl time.Duration) *RedisCartRepo {
	return &RedisCartRepo{Client: client, TTL: ttl}
}

func (r *RedisCartRepo) GetCart(ctx context.Context, cartID string) (models.Cart, error) {
	const op = "repository.cart_repository.GetCart"

	raw, err := r.Client.Get(ctx, cartKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Cart{}, fmt.Errorf("%s: %w", op, storage.ErrCartNotFound)
		}
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	cart.ID = cartID

	return cart, nil
}

// SaveCart перезаписывает корзину и продлевает TTL.
func (r *RedisCartRepo) SaveCart(ctx context.Context, cart models.Cart) error {
	const op = "repository.cart_repository.SaveCart"

	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Set(ctx, cartKey(cart.ID), raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisCartRepo) DeleteCart(ctx context.Context, cartID string) error {
	const op = "repository.cart_repository.DeleteCart"

	if err := r.Client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}
