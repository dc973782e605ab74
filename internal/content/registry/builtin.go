package registry

import "videepat_foods/internal/domain/models"

func builtins() []Definition {
	return []Definition{
		{
			Type:  models.BlockText,
			Label: "Text",
			Default: func() models.Payload {
				return &models.TextPayload{
					Heading:   "New Heading",
					Body:      "Add your text here...",
					Alignment: models.AlignLeft,
				}
			},
			Fields: []Field{
				{Key: "heading", Label: "Heading", Kind: FieldText},
				{Key: "body", Label: "Body", Kind: FieldTextarea},
				{Key: "alignment", Label: "Alignment", Kind: FieldSelect, Options: []string{"left", "center", "right"}},
			},
			Render: renderText,
		},
		{
			Type:    models.BlockImage,
			Label:   "Image",
			Default: func() models.Payload { return &models.ImagePayload{URL: "", Caption: ""} },
			Fields: []Field{
				{Key: "url", Label: "Image", Kind: FieldMedia},
				{Key: "caption", Label: "Caption", Kind: FieldText},
				{Key: "alt", Label: "Alt text", Kind: FieldText},
			},
			Render: renderImage,
		},
		{
			Type:    models.BlockVideo,
			Label:   "Video",
			Default: func() models.Payload { return &models.VideoPayload{URL: ""} },
			Fields: []Field{
				{Key: "url", Label: "Video URL", Kind: FieldURL},
			},
			Render: renderVideo,
		},
		{
			Type:    models.BlockButton,
			Label:   "Button",
			Default: func() models.Payload { return &models.ButtonPayload{Text: "Click Here", Link: "#"} },
			Fields: []Field{
				{Key: "text", Label: "Button text", Kind: FieldText},
				{Key: "link", Label: "Link", Kind: FieldURL},
			},
			Render: renderButton,
		},
		{
			Type:    models.BlockProductList,
			Label:   "Product list",
			Default: func() models.Payload { return &models.ProductListPayload{Style: models.ProductListGrid} },
			Fields: []Field{
				{Key: "style", Label: "Display", Kind: FieldSelect, Options: []string{"grid", "carousel", "list"}},
				{Key: "limit", Label: "Max products", Kind: FieldNumber},
				{Key: "category_id", Label: "Category", Kind: FieldText},
			},
			Render: renderProductList,
		},
		{
			Type:  models.BlockOfferBanner,
			Label: "Offer banner",
			Default: func() models.Payload {
				return &models.OfferBannerPayload{
					Title:   "Special Offer",
					CTAText: "Shop Now",
					CTALink: "/products",
				}
			},
			Fields: []Field{
				{Key: "title", Label: "Title", Kind: FieldText},
				{Key: "subtitle", Label: "Subtitle", Kind: FieldText},
				{Key: "cta_text", Label: "Button text", Kind: FieldText},
				{Key: "cta_link", Label: "Button link", Kind: FieldURL},
				{Key: "background_image", Label: "Background", Kind: FieldMedia},
			},
			Render: renderOfferBanner,
		},
		{
			Type:    models.BlockCouponBlock,
			Label:   "Coupon",
			Default: func() models.Payload { return &models.CouponBlockPayload{} },
			Fields: []Field{
				{Key: "code", Label: "Coupon code", Kind: FieldText},
				{Key: "description", Label: "Description", Kind: FieldText},
			},
			Render: renderCoupon,
		},
		{
			Type:    models.BlockFAQ,
			Label:   "FAQ",
			Default: func() models.Payload { return &models.FAQPayload{Title: "Frequently Asked Questions"} },
			Fields: []Field{
				{Key: "title", Label: "Title", Kind: FieldText},
				{Key: "items", Label: "Questions (question :: answer per line)", Kind: FieldTextarea},
			},
			Render: renderFAQ,
		},
		{
			Type:    models.BlockTestimonial,
			Label:   "Testimonial",
			Default: func() models.Payload { return &models.TestimonialPayload{} },
			Fields: []Field{
				{Key: "quote", Label: "Quote", Kind: FieldTextarea},
				{Key: "author", Label: "Author", Kind: FieldText},
				{Key: "role", Label: "Role", Kind: FieldText},
				{Key: "avatar_url", Label: "Avatar", Kind: FieldMedia},
			},
			Render: renderTestimonial,
		},
		{
			Type:    models.BlockHTML,
			Label:   "Custom HTML",
			Default: func() models.Payload { return &models.HTMLPayload{} },
			Fields: []Field{
				{Key: "html", Label: "HTML", Kind: FieldTextarea},
			},
			Render: renderHTML,
		},
	}
}
