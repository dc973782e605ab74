package repository

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	redisapp "videepat_foods/internal/storage/redis"
)

// Repository собирает все хранилища приложения поверх одного пула и клиента redis.
type Repository struct {
	Page     PageRepository
	Story    StoryRepository
	Product  ProductRepository
	Category CategoryRepository
	Coupon   CouponRepository
	Hero     HeroRepository
	Cart     CartRepository
	Render   RenderCache
}

func NewRepository(db *pgxpool.Pool, rdb *redisapp.Client, cartTTL time.Duration) *Repository {
	return &Repository{
		Page:     NewPageRepository(db),
		Story:    NewStoryRepository(db),
		Product:  NewProductRepository(db),
		Category: NewCategoryRepository(db),
		Coupon:   NewCouponRepository(db),
		Hero:     NewHeroRepository(db),
		Cart:     NewRedisCartRepo(rdb, cartTTL),
		Render:   NewRedisRenderCache(rdb),
	}
}
