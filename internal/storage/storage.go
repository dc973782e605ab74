package storage

import "errors"

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrStoryNotFound    = errors.New("story not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrHeroNotFound     = errors.New("hero not found")
	ErrCartNotFound     = errors.New("cart not found")
)

var (
	ErrSlugExists       = errors.New("a page with this name or slug already exists")
	ErrCouponCodeExists = errors.New("coupon code already exists")
	ErrCategoryExists   = errors.New("category slug already exists")
	ErrVersionConflict  = errors.New("page was modified by someone else")
)

var ErrCacheMiss = errors.New("cache miss")
