package response

import "videepat_foods/internal/domain/models"

// Документы API отдаются с id и _id: старые клиенты читают _id.

type PageResponse struct {
	models.Page
	AltID string `json:"_id,omitempty"`
}

type StoryResponse struct {
	models.Story
	AltID string `json:"_id,omitempty"`
}

type ProductResponse struct {
	models.Product
	AltID string `json:"_id,omitempty"`
}

type CategoryResponse struct {
	models.Category
	AltID string `json:"_id,omitempty"`
}

type CouponResponse struct {
	models.Coupon
	AltID string `json:"_id,omitempty"`
}

type HeroResponse struct {
	models.Hero
	AltID string `json:"_id,omitempty"`
}

func Page(p models.Page) PageResponse { return PageResponse{Page: p, AltID: p.ID} }

func Story(s models.Story) StoryResponse { return StoryResponse{Story: s, AltID: s.ID} }

func Product(p models.Product) ProductResponse { return ProductResponse{Product: p, AltID: p.ID} }

func Category(c models.Category) CategoryResponse { return CategoryResponse{Category: c, AltID: c.ID} }

func Coupon(c models.Coupon) CouponResponse { return CouponResponse{Coupon: c, AltID: c.ID} }

func Hero(h models.Hero) HeroResponse { return HeroResponse{Hero: h, AltID: h.ID} }

// List maps a slice of models to their documents; never returns nil.
func List[M any, D any](items []M, conv func(M) D) []D {
	out := make([]D, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out
}
