package repository

import (
	"context"
	"time"

	"videepat_foods/internal/domain/models"
)

type PageRepository interface {
	CreatePage(ctx context.Context, page models.Page) (models.Page, error)
	UpdatePage(ctx context.Context, page models.Page, expectedVersion int) (models.Page, error)
	GetPageByID(ctx context.Context, id string) (models.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (models.Page, error)
	ListPages(ctx context.Context) ([]models.Page, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	DeletePage(ctx context.Context, id string) error
}

type StoryRepository interface {
	CreateStory(ctx context.Context, story models.Story) (models.Story, error)
	UpdateStory(ctx context.Context, story models.Story) (models.Story, error)
	GetStoryByID(ctx context.Context, id string) (models.Story, error)
	ListStories(ctx context.Context, activeOnly bool) ([]models.Story, error)
	DeleteStory(ctx context.Context, id string) error
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) (models.Product, error)
	GetProductByID(ctx context.Context, id string) (models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (models.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
}

type CouponRepository interface {
	CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (models.Coupon, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	IncrementUsage(ctx context.Context, id string) error
}

type HeroRepository interface {
	GetHero(ctx context.Context) (models.Hero, error)
	SaveHero(ctx context.Context, h models.Hero) (models.Hero, error)
}

type CartRepository interface {
	GetCart(ctx context.Context, cartID string) (models.Cart, error)
	SaveCart(ctx context.Context, cart models.Cart) error
	DeleteCart(ctx context.Context, cartID string) error
}

type RenderCache interface {
	GetRendered(ctx context.Context, key string) (string, error)
	SetRendered(ctx context.Context, key, html string, ttl time.Duration) error
	DeleteRendered(ctx context.Context, prefix string) error
}
