package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"
)

// Attributes произвольные свойства товара (состав, аллергены, варианты)
type Attributes map[string]string

// Value реализует интерфейс driver.Valuer для сериализации Attributes в JSONB
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan реализует интерфейс sql.Scanner для десериализации JSONB в Attributes
func (a *Attributes) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("attributes: unsupported scan type")
}

// Product товар каталога. Цены в рупиях.
type Product struct {
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	DiscountPrice *float64   `json:"discount_price,omitempty"`
	Stock         int        `json:"stock"`
	Images        []string   `json:"images"`
	CategoryIDs   []string   `json:"category_ids"`
	Attributes    Attributes `json:"attributes,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at,omitempty"`
}

// EffectivePrice returns the discount price when one is set below the list price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// Cover returns the first product image or "".
func (p Product) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) InCategory(id string) bool {
	for _, c := range p.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

type Category struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	MediaURL    string    `json:"media_url"`
	MediaType   MediaKind `json:"media_type"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// Hero баннер главной страницы. Существует в единственном экземпляре.
type Hero struct {
	ID               string    `json:"id,omitempty"`
	Title            string    `json:"title"`
	Subtitle         string    `json:"subtitle"`
	Description      string    `json:"description"`
	BackgroundImage  string    `json:"backgroundImage"`
	CTAText          string    `json:"ctaText"`
	CTALink          string    `json:"ctaLink"`
	SecondaryCTAText string    `json:"secondaryCtaText"`
	SecondaryCTALink string    `json:"secondaryCtaLink"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

func DefaultHero() Hero {
	return Hero{
		Title:            "Fresh from Our Village",
		Subtitle:         "Authentic flavors, delivered to your doorstep",
		Description:      "Experience the taste of tradition with our handpicked selection of village-fresh products",
		BackgroundImage:  "/assets/hero.png",
		CTAText:          "Explore Our Products",
		CTALink:          "/products",
		SecondaryCTAText: "Our Story",
		SecondaryCTALink: "/story",
		IsActive:         true,
	}
}

// RoundMoney округляет сумму до пайсы
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
