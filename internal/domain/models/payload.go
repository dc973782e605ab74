package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type BlockType string

const (
	BlockText        BlockType = "text"
	BlockImage       BlockType = "image"
	BlockVideo       BlockType = "video"
	BlockButton      BlockType = "button"
	BlockProductList BlockType = "product_list"
	BlockOfferBanner BlockType = "offer_banner"
	BlockCouponBlock BlockType = "coupon_block"
	BlockFAQ         BlockType = "faq"
	BlockTestimonial BlockType = "testimonial"
	BlockHTML        BlockType = "html"
)

// BlockTypes lists every block type in palette order.
var BlockTypes = []BlockType{
	BlockText,
	BlockImage,
	BlockVideo,
	BlockButton,
	BlockProductList,
	BlockOfferBanner,
	BlockCouponBlock,
	BlockFAQ,
	BlockTestimonial,
	BlockHTML,
}

var (
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrUnknownField     = errors.New("unknown payload field")
	ErrInvalidValue     = errors.New("invalid field value")
)

// Payload содержимое блока. Набор полей закрыт и зависит от типа блока.
type Payload interface {
	BlockType() BlockType
	// Get returns the field value in its property-panel string form.
	Get(field string) string
	// Set replaces one field. Other fields stay untouched.
	Set(field, value string) error
	Clone() Payload
}

// NewPayload returns an empty payload of the concrete type for t.
func NewPayload(t BlockType) (Payload, error) {
	switch t {
	case BlockText:
		return &TextPayload{}, nil
	case BlockImage:
		return &ImagePayload{}, nil
	case BlockVideo:
		return &VideoPayload{}, nil
	case BlockButton:
		return &ButtonPayload{}, nil
	case BlockProductList:
		return &ProductListPayload{}, nil
	case BlockOfferBanner:
		return &OfferBannerPayload{}, nil
	case BlockCouponBlock:
		return &CouponBlockPayload{}, nil
	case BlockFAQ:
		return &FAQPayload{}, nil
	case BlockTestimonial:
		return &TestimonialPayload{}, nil
	case BlockHTML:
		return &HTMLPayload{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
}

func unknownField(t BlockType, field string) error {
	return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, t, field)
}

type TextPayload struct {
	Heading   string    `json:"heading"`
	Body      string    `json:"body"`
	Alignment TextAlign `json:"alignment,omitempty"`
}

func (p *TextPayload) BlockType() BlockType { return BlockText }
func (p *TextPayload) Clone() Payload       { c := *p; return &c }

func (p *TextPayload) Get(field string) string {
	switch field {
	case "heading":
		return p.Heading
	case "body":
		return p.Body
	case "alignment":
		return string(p.Alignment)
	}
	return ""
}

func (p *TextPayload) Set(field, value string) error {
	switch field {
	case "heading":
		p.Heading = value
	case "body":
		p.Body = value
	case "alignment":
		switch TextAlign(value) {
		case AlignLeft, AlignCenter, AlignRight:
			p.Alignment = TextAlign(value)
		default:
			return fmt.Errorf("%w: alignment %q", ErrInvalidValue, value)
		}
	default:
		return unknownField(BlockText, field)
	}
	return nil
}

type ImagePayload struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Alt     string `json:"alt,omitempty"`
}

func (p *ImagePayload) BlockType() BlockType { return BlockImage }
func (p *ImagePayload) Clone() Payload       { c := *p; return &c }

func (p *ImagePayload) Get(field string) string {
	switch field {
	case "url":
		return p.URL
	case "caption":
		return p.Caption
	case "alt":
		return p.Alt
	}
	return ""
}

func (p *ImagePayload) Set(field, value string) error {
	switch field {
	case "url":
		p.URL = value
	case "caption":
		p.Caption = value
	case "alt":
		p.Alt = value
	default:
		return unknownField(BlockImage, field)
	}
	return nil
}

type VideoPayload struct {
	URL string `json:"url"`
}

func (p *VideoPayload) BlockType() BlockType { return BlockVideo }
func (p *VideoPayload) Clone() Payload       { c := *p; return &c }

func (p *VideoPayload) Get(field string) string {
	if field == "url" {
		return p.URL
	}
	return ""
}

func (p *VideoPayload) Set(field, value string) error {
	if field != "url" {
		return unknownField(BlockVideo, field)
	}
	p.URL = value
	return nil
}

type ButtonPayload struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

func (p *ButtonPayload) BlockType() BlockType { return BlockButton }
func (p *ButtonPayload) Clone() Payload       { c := *p; return &c }

func (p *ButtonPayload) Get(field string) string {
	switch field {
	case "text":
		return p.Text
	case "link":
		return p.Link
	}
	return ""
}

func (p *ButtonPayload) Set(field, value string) error {
	switch field {
	case "text":
		p.Text = value
	case "link":
		p.Link = value
	default:
		return unknownField(BlockButton, field)
	}
	return nil
}

type ProductListStyle string

const (
	ProductListGrid     ProductListStyle = "grid"
	ProductListCarousel ProductListStyle = "carousel"
	ProductListList     ProductListStyle = "list"
)

// ProductListPayload выводит товары каталога. Limit 0 означает "все".
type ProductListPayload struct {
	Style      ProductListStyle `json:"style"`
	Limit      int              `json:"limit,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
}

func (p *ProductListPayload) BlockType() BlockType { return BlockProductList }
func (p *ProductListPayload) Clone() Payload       { c := *p; return &c }

func (p *ProductListPayload) Get(field string) string {
	switch field {
	case "style":
		return string(p.Style)
	case "limit":
		return strconv.Itoa(p.Limit)
	case "category_id":
		return p.CategoryID
	}
	return ""
}

func (p *ProductListPayload) Set(field, value string) error {
	switch field {
	case "style":
		switch ProductListStyle(value) {
		case ProductListGrid, ProductListCarousel, ProductListList:
			p.Style = ProductListStyle(value)
		default:
			return fmt.Errorf("%w: style %q", ErrInvalidValue, value)
		}
	case "limit":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("%w: limit %q", ErrInvalidValue, value)
		}
		p.Limit = n
	case "category_id":
		p.CategoryID = value
	default:
		return unknownField(BlockProductList, field)
	}
	return nil
}

type OfferBannerPayload struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	CTAText         string `json:"cta_text"`
	CTALink         string `json:"cta_link"`
	BackgroundImage string `json:"background_image,omitempty"`
}

func (p *OfferBannerPayload) BlockType() BlockType { return BlockOfferBanner }
func (p *OfferBannerPayload) Clone() Payload       { c := *p; return &c }

func (p *OfferBannerPayload) Get(field string) string {
	switch field {
	case "title":
		return p.Title
	case "subtitle":
		return p.Subtitle
	case "cta_text":
		return p.CTAText
	case "cta_link":
		return p.CTALink
	case "background_image":
		return p.BackgroundImage
	}
	return ""
}

func (p *OfferBannerPayload) Set(field, value string) error {
	switch field {
	case "title":
		p.Title = value
	case "subtitle":
		p.Subtitle = value
	case "cta_text":
		p.CTAText = value
	case "cta_link":
		p.CTALink = value
	case "background_image":
		p.BackgroundImage = value
	default:
		return unknownField(BlockOfferBanner, field)
	}
	return nil
}

type CouponBlockPayload struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (p *CouponBlockPayload) BlockType() BlockType { return BlockCouponBlock }
func (p *CouponBlockPayload) Clone() Payload       { c := *p; return &c }

func (p *CouponBlockPayload) Get(field string) string {
	switch field {
	case "code":
		return p.Code
	case "description":
		return p.Description
	}
	return ""
}

func (p *CouponBlockPayload) Set(field, value string) error {
	switch field {
	case "code":
		p.Code = strings.ToUpper(strings.TrimSpace(value))
	case "description":
		p.Description = value
	default:
		return unknownField(BlockCouponBlock, field)
	}
	return nil
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQPayload. В панели свойств items редактируется как текст,
// по одной паре "вопрос :: ответ" на строку.
type FAQPayload struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

const faqSeparator = "::"

func (p *FAQPayload) BlockType() BlockType { return BlockFAQ }

func (p *FAQPayload) Clone() Payload {
	c := *p
	if p.Items != nil {
		c.Items = append([]FAQItem(nil), p.Items...)
	}
	return &c
}

func (p *FAQPayload) Get(field string) string {
	switch field {
	case "title":
		return p.Title
	case "items":
		lines := make([]string, 0, len(p.Items))
		for _, item := range p.Items {
			lines = append(lines, item.Question+" "+faqSeparator+" "+item.Answer)
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func (p *FAQPayload) Set(field, value string) error {
	switch field {
	case "title":
		p.Title = value
	case "items":
		var items []FAQItem
		for _, line := range strings.Split(value, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			q, a, ok := strings.Cut(line, faqSeparator)
			if !ok {
				return fmt.Errorf("%w: faq line %q has no %q", ErrInvalidValue, line, faqSeparator)
			}
			items = append(items, FAQItem{Question: strings.TrimSpace(q), Answer: strings.TrimSpace(a)})
		}
		p.Items = items
	default:
		return unknownField(BlockFAQ, field)
	}
	return nil
}

type TestimonialPayload struct {
	Quote     string `json:"quote"`
	Author    string `json:"author"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (p *TestimonialPayload) BlockType() BlockType { return BlockTestimonial }
func (p *TestimonialPayload) Clone() Payload       { c := *p; return &c }

func (p *TestimonialPayload) Get(field string) string {
	switch field {
	case "quote":
		return p.Quote
	case "author":
		return p.Author
	case "role":
		return p.Role
	case "avatar_url":
		return p.AvatarURL
	}
	return ""
}

func (p *TestimonialPayload) Set(field, value string) error {
	switch field {
	case "quote":
		p.Quote = value
	case "author":
		p.Author = value
	case "role":
		p.Role = value
	case "avatar_url":
		p.AvatarURL = value
	default:
		return unknownField(BlockTestimonial, field)
	}
	return nil
}

// HTMLPayload хранит разметку как есть; санитизация выполняется при рендере.
type HTMLPayload struct {
	Markup string `json:"html"`
}

func (p *HTMLPayload) BlockType() BlockType { return BlockHTML }
func (p *HTMLPayload) Clone() Payload       { c := *p; return &c }

func (p *HTMLPayload) Get(field string) string {
	if field == "html" {
		return p.Markup
	}
	return ""
}

func (p *HTMLPayload) Set(field, value string) error {
	if field != "html" {
		return unknownField(BlockHTML, field)
	}
	p.Markup = value
	return nil
}
