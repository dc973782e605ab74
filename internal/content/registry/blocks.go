package registry

import (
	"fmt"
	"html/template"
	"strings"

	"videepat_foods/internal/domain/models"
)

func renderText(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.TextPayload)
	if !ok || (strings.TrimSpace(p.Heading) == "" && strings.TrimSpace(p.Body) == "") {
		return placeholder(b.Type, "Empty text")
	}

	align := p.Alignment
	if align == "" {
		align = models.AlignLeft
	}

	var sb strings.Builder
	sb.WriteString(`<div class="text-block text-block--` + esc(string(align)) + `">`)
	if h := strings.TrimSpace(p.Heading); h != "" {
		sb.WriteString(`<h2 class="text-block__heading">` + esc(h) + `</h2>`)
	}
	for _, para := range paragraphs(p.Body) {
		sb.WriteString(`<p class="text-block__body">` + para + `</p>`)
	}
	sb.WriteString(`</div>`)

	return template.HTML(sb.String())
}

func renderImage(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.ImagePayload)
	if !ok || strings.TrimSpace(p.URL) == "" {
		return placeholder(b.Type, "No image selected")
	}

	alt := p.Alt
	if alt == "" {
		alt = p.Caption
	}

	var sb strings.Builder
	sb.WriteString(`<figure class="image-block">`)
	sb.WriteString(`<img class="image-block__img" src="` + esc(SafeURL(p.URL)) + `" alt="` + esc(alt) + `" loading="lazy" />`)
	if c := strings.TrimSpace(p.Caption); c != "" {
		sb.WriteString(`<figcaption class="image-block__caption">` + esc(c) + `</figcaption>`)
	}
	sb.WriteString(`</figure>`)

	return template.HTML(sb.String())
}

func renderVideo(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.VideoPayload)
	if !ok || strings.TrimSpace(p.URL) == "" {
		return placeholder(b.Type, "No video URL")
	}
	return VideoMarkup(p.URL, "video-block")
}

func renderButton(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.ButtonPayload)
	if !ok || strings.TrimSpace(p.Text) == "" {
		return placeholder(b.Type, "Button without text")
	}

	link := p.Link
	if strings.TrimSpace(link) == "" {
		link = "#"
	}

	return template.HTML(`<a class="btn btn--primary" href="` + esc(SafeURL(link)) + `">` + esc(p.Text) + `</a>`)
}

func renderProductList(ctx Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.ProductListPayload)
	if !ok {
		return placeholder(b.Type, "")
	}

	var products []models.Product
	if ctx != nil {
		products = ctx.Products(*p)
	}
	if len(products) == 0 {
		return placeholder(b.Type, "No products to show")
	}

	style := p.Style
	if style == "" {
		style = models.ProductListGrid
	}

	var sb strings.Builder
	sb.WriteString(`<div class="product-list product-list--` + esc(string(style)) + `">`)
	for _, product := range products {
		sb.WriteString(string(ProductCard(product)))
	}
	sb.WriteString(`</div>`)

	return template.HTML(sb.String())
}

// ProductCard renders the catalog card shared by product lists and the storefront grid.
func ProductCard(p models.Product) template.HTML {
	var sb strings.Builder
	sb.WriteString(`<article class="product-card" data-product-id="` + esc(p.ID) + `">`)
	sb.WriteString(`<a class="product-card__link" href="/products/` + esc(p.ID) + `">`)
	if cover := p.Cover(); cover != "" {
		sb.WriteString(`<img class="product-card__image" src="` + esc(SafeURL(cover)) + `" alt="` + esc(p.Name) + `" loading="lazy" />`)
	} else {
		sb.WriteString(`<div class="product-card__image product-card__image--empty"></div>`)
	}
	sb.WriteString(`<h3 class="product-card__name">` + esc(p.Name) + `</h3>`)
	sb.WriteString(`</a>`)

	sb.WriteString(`<p class="product-card__price">`)
	if price := p.EffectivePrice(); price < p.Price {
		sb.WriteString(`<span class="price price--old">` + FormatPrice(p.Price) + `</span> `)
		sb.WriteString(`<span class="price price--sale">` + FormatPrice(price) + `</span>`)
	} else {
		sb.WriteString(`<span class="price">` + FormatPrice(p.Price) + `</span>`)
	}
	sb.WriteString(`</p>`)

	sb.WriteString(`<form method="post" action="/cart/items"><input type="hidden" name="product_id" value="` + esc(p.ID) + `" />`)
	sb.WriteString(`<button class="btn btn--small" type="submit">Add to cart</button></form>`)
	sb.WriteString(`</article>`)

	return template.HTML(sb.String())
}

func renderOfferBanner(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.OfferBannerPayload)
	if !ok || strings.TrimSpace(p.Title) == "" {
		return placeholder(b.Type, "Offer without title")
	}

	var sb strings.Builder
	sb.WriteString(`<div class="offer-banner"`)
	if bg := strings.TrimSpace(p.BackgroundImage); bg != "" {
		sb.WriteString(` style="background-image: url('` + esc(SafeURL(bg)) + `')"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(`<h2 class="offer-banner__title">` + esc(p.Title) + `</h2>`)
	if s := strings.TrimSpace(p.Subtitle); s != "" {
		sb.WriteString(`<p class="offer-banner__subtitle">` + esc(s) + `</p>`)
	}
	if strings.TrimSpace(p.CTAText) != "" {
		link := p.CTALink
		if link == "" {
			link = "#"
		}
		sb.WriteString(`<a class="btn btn--accent" href="` + esc(SafeURL(link)) + `">` + esc(p.CTAText) + `</a>`)
	}
	sb.WriteString(`</div>`)

	return template.HTML(sb.String())
}

func renderCoupon(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.CouponBlockPayload)
	if !ok || strings.TrimSpace(p.Code) == "" {
		return placeholder(b.Type, "No coupon code")
	}

	var sb strings.Builder
	sb.WriteString(`<div class="coupon-block" data-coupon-code="` + esc(p.Code) + `">`)
	sb.WriteString(`<span class="coupon-block__code">` + esc(p.Code) + `</span>`)
	if d := strings.TrimSpace(p.Description); d != "" {
		sb.WriteString(`<p class="coupon-block__description">` + esc(d) + `</p>`)
	}
	sb.WriteString(`</div>`)

	return template.HTML(sb.String())
}

func renderFAQ(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.FAQPayload)
	if !ok || len(p.Items) == 0 {
		return placeholder(b.Type, "No questions yet")
	}

	var sb strings.Builder
	sb.WriteString(`<div class="faq-block">`)
	if t := strings.TrimSpace(p.Title); t != "" {
		sb.WriteString(`<h2 class="faq-block__title">` + esc(t) + `</h2>`)
	}
	for _, item := range p.Items {
		sb.WriteString(`<details class="faq-block__item"><summary>` + esc(item.Question) + `</summary>`)
		sb.WriteString(`<p>` + esc(item.Answer) + `</p></details>`)
	}
	sb.WriteString(`</div>`)

	return template.HTML(sb.String())
}

func renderTestimonial(_ Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.TestimonialPayload)
	if !ok || strings.TrimSpace(p.Quote) == "" {
		return placeholder(b.Type, "Empty testimonial")
	}

	var sb strings.Builder
	sb.WriteString(`<blockquote class="testimonial">`)
	sb.WriteString(`<p class="testimonial__quote">` + esc(p.Quote) + `</p>`)
	if p.Author != "" {
		sb.WriteString(`<footer class="testimonial__author">`)
		if p.AvatarURL != "" {
			sb.WriteString(`<img class="testimonial__avatar" src="` + esc(SafeURL(p.AvatarURL)) + `" alt="` + esc(p.Author) + `" />`)
		}
		sb.WriteString(`<cite>` + esc(p.Author) + `</cite>`)
		if p.Role != "" {
			sb.WriteString(`<span class="testimonial__role">` + esc(p.Role) + `</span>`)
		}
		sb.WriteString(`</footer>`)
	}
	sb.WriteString(`</blockquote>`)

	return template.HTML(sb.String())
}

func renderHTML(ctx Context, b models.Block) template.HTML {
	p, ok := b.Content.(*models.HTMLPayload)
	if !ok || strings.TrimSpace(p.Markup) == "" || ctx == nil {
		return placeholder(b.Type, "Empty HTML")
	}

	clean := ctx.SanitizeHTML(p.Markup)
	if strings.TrimSpace(clean) == "" {
		return placeholder(b.Type, "Empty HTML")
	}

	return template.HTML(`<div class="html-block">` + clean + `</div>`)
}

// FormatPrice formats a rupee amount the way the storefront shows it.
func FormatPrice(v float64) string {
	v = models.RoundMoney(v)
	if v == float64(int64(v)) {
		return fmt.Sprintf("₹%d", int64(v))
	}
	return fmt.Sprintf("₹%.2f", v)
}
