package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/lib/slug"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/storage"
)

var (
	ErrProductName    = errors.New("product name is required")
	ErrProductPrice   = errors.New("price must be positive and discount below price")
	ErrCategoryName   = errors.New("category name is required")
	ErrCouponCode     = errors.New("coupon code is required")
	ErrCouponValue    = errors.New("discount value out of range")
	ErrCouponType     = errors.New("discount type must be percentage or flat")
	ErrCouponScope    = errors.New("applied_to type must be all, products or categories")
	ErrCouponScopeIDs = errors.New("scoped coupon needs at least one id")
)

const heroCacheKey = "hero"

// CatalogInvalidator сбрасывает отрисованные страницы после изменения каталога или hero.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

type CatalogService struct {
	log          *slog.Logger
	products     repository.ProductRepository
	categories   repository.CategoryRepository
	coupons      repository.CouponRepository
	hero         repository.HeroRepository
	cache        *cache.Cache
	catalogCache CatalogInvalidator
}

func NewCatalogService(
	log *slog.Logger,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	coupons repository.CouponRepository,
	hero repository.HeroRepository,
	ttl time.Duration,
) *CatalogService {
	return &CatalogService{
		log:        log,
		products:   products,
		categories: categories,
		coupons:    coupons,
		hero:       hero,
		cache:      cache.New(ttl, 2*ttl),
	}
}

// SetCatalogInvalidator wires the storefront cache after both services exist.
func (s *CatalogService) SetCatalogInvalidator(h CatalogInvalidator) {
	s.catalogCache = h
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	const op = "catalog_service.ListProducts"

	products, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	const op = "catalog_service.GetProduct"

	p, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// GetActiveProduct hides inactive products from the storefront.
func (s *CatalogService) GetActiveProduct(ctx context.Context, id string) (models.Product, error) {
	const op = "catalog_service.GetActiveProduct"

	p, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if !p.IsActive {
		return models.Product{}, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
	}

	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	const op = "catalog_service.CreateProduct"
	log := s.log.With(slog.String("op", op), slog.String("name", p.Name))

	if err := validateProduct(&p); err != nil {
		log.Warn("invalid product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		log.Error("failed to create product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateCatalog(ctx)
	log.Info("product created", slog.String("product_id", created.ID))

	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	const op = "catalog_service.UpdateProduct"
	log := s.log.With(slog.String("op", op), slog.String("product_id", p.ID))

	if err := validateProduct(&p); err != nil {
		log.Warn("invalid product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.products.UpdateProduct(ctx, p)
	if err != nil {
		log.Error("failed to update product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateCatalog(ctx)
	log.Info("product updated")

	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	const op = "catalog_service.DeleteProduct"

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateCatalog(ctx)
	s.log.Info("product deleted", slog.String("op", op), slog.String("product_id", id))

	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	const op = "catalog_service.ListCategories"

	categories, err := s.categories.ListCategories(ctx, activeOnly)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (models.Category, error) {
	const op = "catalog_service.GetCategory"

	c, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	const op = "catalog_service.CreateCategory"

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Category{}, fmt.Errorf("%s: %w", op, ErrCategoryName)
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	} else {
		c.Slug = slug.Normalize(c.Slug)
	}
	if c.MediaType == "" {
		c.MediaType = models.MediaKindImage
	}

	created, err := s.categories.CreateCategory(ctx, c)
	if err != nil {
		s.log.Error("failed to create category", slog.String("op", op), sl.Err(err))
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateCatalog(ctx)

	return created, nil
}

func (s *CatalogService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	const op = "catalog_service.ListCoupons"

	coupons, err := s.coupons.ListCoupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return coupons, nil
}

func (s *CatalogService) CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error) {
	const op = "catalog_service.CreateCoupon"
	log := s.log.With(slog.String("op", op), slog.String("code", c.Code))

	if err := validateCoupon(&c); err != nil {
		log.Warn("invalid coupon", sl.Err(err))
		return models.Coupon{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.coupons.CreateCoupon(ctx, c)
	if err != nil {
		log.Error("failed to create coupon", sl.Err(err))
		return models.Coupon{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("coupon created", slog.String("coupon_id", created.ID))

	return created, nil
}

// GetHero returns the storefront hero. When none is stored yet the default
// hero is saved and returned.
func (s *CatalogService) GetHero(ctx context.Context) (models.Hero, error) {
	const op = "catalog_service.GetHero"

	if cached, ok := s.cache.Get(heroCacheKey); ok {
		return cached.(models.Hero), nil
	}

	h, err := s.hero.GetHero(ctx)
	if errors.Is(err, storage.ErrHeroNotFound) {
		s.log.Info("no hero stored, creating default", slog.String("op", op))
		h, err = s.hero.SaveHero(ctx, models.DefaultHero())
	}
	if err != nil {
		s.log.Error("failed to load hero", slog.String("op", op), sl.Err(err))
		return models.Hero{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(heroCacheKey, h, cache.DefaultExpiration)

	return h, nil
}

// UpdateHero replaces the single hero record, creating it when missing.
func (s *CatalogService) UpdateHero(ctx context.Context, h models.Hero) (models.Hero, error) {
	const op = "catalog_service.UpdateHero"

	current, err := s.GetHero(ctx)
	if err != nil {
		return models.Hero{}, fmt.Errorf("%s: %w", op, err)
	}
	h.ID = current.ID

	saved, err := s.hero.SaveHero(ctx, h)
	if err != nil {
		s.log.Error("failed to save hero", slog.String("op", op), sl.Err(err))
		return models.Hero{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(heroCacheKey, saved, cache.DefaultExpiration)
	s.invalidateCatalog(ctx)
	s.log.Info("hero updated", slog.String("op", op), slog.String("hero_id", saved.ID))

	return saved, nil
}

func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if s.catalogCache != nil {
		s.catalogCache.InvalidateCatalog(ctx)
	}
}

func validateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrProductName
	}
	if p.Price <= 0 {
		return ErrProductPrice
	}
	if p.DiscountPrice != nil && (*p.DiscountPrice <= 0 || *p.DiscountPrice >= p.Price) {
		return ErrProductPrice
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.Price = models.RoundMoney(p.Price)
	return nil
}

func validateCoupon(c *models.Coupon) error {
	c.Code = models.NormalizeCode(c.Code)
	if c.Code == "" {
		return ErrCouponCode
	}

	switch c.DiscountType {
	case models.DiscountPercentage:
		if c.DiscountValue <= 0 || c.DiscountValue > 100 {
			return ErrCouponValue
		}
	case models.DiscountFlat:
		if c.DiscountValue <= 0 {
			return ErrCouponValue
		}
	default:
		return ErrCouponType
	}

	if c.MinCartValue < 0 {
		return ErrCouponValue
	}

	switch c.AppliedTo.Type {
	case "":
		c.AppliedTo.Type = models.ScopeAll
	case models.ScopeAll:
	case models.ScopeProducts, models.ScopeCategories:
		if len(c.AppliedTo.IDs) == 0 {
			return ErrCouponScopeIDs
		}
	default:
		return ErrCouponScope
	}

	return nil
}
