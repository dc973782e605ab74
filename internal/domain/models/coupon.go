package models

import (
	"errors"
	"strings"
	"time"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

type ScopeType string

const (
	ScopeAll        ScopeType = "all"
	ScopeProducts   ScopeType = "products"
	ScopeCategories ScopeType = "categories"
)

var (
	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrCouponMinCartValue  = errors.New("cart value is below coupon minimum")
	ErrCouponNotApplicable = errors.New("coupon does not apply to cart items")
)

type AppliedTo struct {
	Type ScopeType `json:"type"`
	IDs  []string  `json:"ids"`
}

type Coupon struct {
	ID            string       `json:"id,omitempty"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	MinCartValue  float64      `json:"min_cart_value"`
	ExpiryDate    *time.Time   `json:"expiry_date,omitempty"`
	UsageLimit    *int         `json:"usage_limit,omitempty"`
	UsageCount    int          `json:"usage_count"`
	IsActive      bool         `json:"is_active"`
	AppliedTo     AppliedTo    `json:"applied_to"`
	CreatedAt     time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     time.Time    `json:"updatedAt,omitempty"`
}

// NormalizeCode приводит код купона к каноническому виду
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount считает скидку по купону для корзины на момент now.
// Скидка никогда не превышает сумму подходящих позиций.
func (c Coupon) Discount(cart Cart, now time.Time) (float64, error) {
	if !c.IsActive {
		return 0, ErrCouponInactive
	}
	if c.ExpiryDate != nil && now.After(*c.ExpiryDate) {
		return 0, ErrCouponExpired
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return 0, ErrCouponExhausted
	}

	subtotal := cart.Total()
	if subtotal < c.MinCartValue {
		return 0, ErrCouponMinCartValue
	}

	eligible := 0.0
	for _, item := range cart.Items {
		if c.applies(item) {
			eligible += item.LineTotal()
		}
	}
	if eligible <= 0 {
		return 0, ErrCouponNotApplicable
	}

	var discount float64
	switch c.DiscountType {
	case DiscountFlat:
		discount = c.DiscountValue
	default:
		discount = eligible * c.DiscountValue / 100
	}
	if discount > eligible {
		discount = eligible
	}
	if discount < 0 {
		discount = 0
	}

	return RoundMoney(discount), nil
}

func (c Coupon) applies(item CartItem) bool {
	switch c.AppliedTo.Type {
	case ScopeProducts:
		return contains(c.AppliedTo.IDs, item.ProductID)
	case ScopeCategories:
		for _, id := range item.CategoryIDs {
			if contains(c.AppliedTo.IDs, id) {
				return true
			}
		}
		return false
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
