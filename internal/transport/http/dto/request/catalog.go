package request

import (
	"time"

	"videepat_foods/internal/domain/models"
)

type ProductRequest struct {
	Name          string            `json:"name" validate:"required,max=200"`
	Description   string            `json:"description" validate:"max=5000"`
	Price         float64           `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64          `json:"discount_price,omitempty" validate:"omitempty,gt=0,ltfield=Price"`
	Stock         int               `json:"stock" validate:"min=0"`
	Images        []string          `json:"images" validate:"dive,required"`
	CategoryIDs   []string          `json:"category_ids"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	IsActive      *bool             `json:"is_active,omitempty"`
}

func (r ProductRequest) Model() models.Product {
	return models.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		Stock:         r.Stock,
		Images:        r.Images,
		CategoryIDs:   r.CategoryIDs,
		Attributes:    r.Attributes,
		IsActive:      r.IsActive == nil || *r.IsActive,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url" validate:"omitempty,max=2048"`
	MediaType   string `json:"media_type" validate:"omitempty,oneof=image video"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r CategoryRequest) Model() models.Category {
	return models.Category{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		MediaURL:    r.MediaURL,
		MediaType:   models.MediaKind(r.MediaType),
		IsActive:    r.IsActive == nil || *r.IsActive,
	}
}

type CouponRequest struct {
	Code          string     `json:"code" validate:"required,max=40"`
	DiscountType  string     `json:"discount_type" validate:"required,oneof=percentage flat"`
	DiscountValue float64    `json:"discount_value" validate:"required,gt=0"`
	MinCartValue  float64    `json:"min_cart_value" validate:"min=0"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	UsageLimit    *int       `json:"usage_limit,omitempty" validate:"omitempty,min=1"`
	IsActive      *bool      `json:"is_active,omitempty"`
	AppliedTo     struct {
		Type string   `json:"type" validate:"omitempty,oneof=all products categories"`
		IDs  []string `json:"ids"`
	} `json:"applied_to"`
}

func (r CouponRequest) Model() models.Coupon {
	return models.Coupon{
		Code:          r.Code,
		DiscountType:  models.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		MinCartValue:  r.MinCartValue,
		ExpiryDate:    r.ExpiryDate,
		UsageLimit:    r.UsageLimit,
		IsActive:      r.IsActive == nil || *r.IsActive,
		AppliedTo: models.AppliedTo{
			Type: models.ScopeType(r.AppliedTo.Type),
			IDs:  r.AppliedTo.IDs,
		},
	}
}
