package render

import (
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
)

// View описывает контекст отображения: устройство и товары каталога,
// доступные блокам product_list.
type View struct {
	Device  Device
	Catalog []models.Product
}

// Renderer только читает дерево страницы и строит HTML.
type Renderer struct {
	reg    *registry.Registry
	policy *bluemonday.Policy
}

func New(reg *registry.Registry) *Renderer {
	if reg == nil {
		reg = registry.Default()
	}
	return &Renderer{
		reg:    reg,
		policy: bluemonday.UGCPolicy(),
	}
}

// blockContext adapts a View to what block renderers may read.
type blockContext struct {
	policy  *bluemonday.Policy
	catalog []models.Product
}

func (c blockContext) SanitizeHTML(in string) string {
	return c.policy.Sanitize(in)
}

// Products returns active catalog items matching the list's category, capped by its limit.
func (c blockContext) Products(list models.ProductListPayload) []models.Product {
	out := make([]models.Product, 0, len(c.catalog))
	for _, p := range c.catalog {
		if !p.IsActive {
			continue
		}
		if list.CategoryID != "" && !p.InCategory(list.CategoryID) {
			continue
		}
		out = append(out, p)
		if list.Limit > 0 && len(out) == list.Limit {
			break
		}
	}
	return out
}

func (r *Renderer) context(v View) blockContext {
	return blockContext{policy: r.policy, catalog: v.Catalog}
}

func (r *Renderer) Sanitize(in string) string {
	return r.policy.Sanitize(in)
}

// Page renders every section in order.
func (r *Renderer) Page(page models.Page, v View) template.HTML {
	layout := page.Layout
	if layout == "" {
		layout = models.PageLayoutDefault
	}

	var sb strings.Builder
	sb.WriteString(`<main class="page page--` + esc(string(layout)) + `" data-page-id="` + esc(page.ID) + `">`)
	for _, sec := range page.Sections {
		sb.WriteString(string(r.Section(sec, v)))
	}
	sb.WriteString(`</main>`)

	return template.HTML(sb.String())
}

// Section renders a section wrapper whose classes follow its layout:
// full spans the viewport, boxed is a max-width container, split is a
// two column grid.
func (r *Renderer) Section(sec models.Section, v View) template.HTML {
	layout := sec.Layout
	if !models.ValidSectionLayout(layout) {
		layout = models.SectionLayoutBoxed
	}

	var sb strings.Builder
	sb.WriteString(`<section id="` + esc(sec.ID) + `" class="section section--` + string(layout) + `"`)
	if style := sectionStyle(sec.Styles); style != "" {
		sb.WriteString(` style="` + esc(style) + `"`)
	}
	sb.WriteString(`>`)

	switch layout {
	case models.SectionLayoutSplit:
		sb.WriteString(`<div class="section__inner section__grid section__grid--split">`)
	case models.SectionLayoutFull:
		sb.WriteString(`<div class="section__inner section__inner--full">`)
	default:
		sb.WriteString(`<div class="section__inner container">`)
	}
	for _, blk := range sec.Blocks {
		sb.WriteString(string(r.Block(blk, v)))
	}
	sb.WriteString(`</div></section>`)

	return template.HTML(sb.String())
}

// Block renders one block with its styles and entrance animation.
// A block hidden on the view's device renders nothing.
func (r *Renderer) Block(blk models.Block, v View) template.HTML {
	device := v.Device
	if device == "" {
		device = DeviceDesktop
	}
	if !Visible(blk.Visibility, device) {
		return ""
	}

	classes := []string{"block", "block--" + string(blk.Type)}
	if blk.Animation.Enabled() {
		classes = append(classes, "animate-once")
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + esc(strings.Join(classes, " ")) + `" data-block-id="` + esc(blk.ID) + `"`)
	if blk.Animation.Enabled() {
		sb.WriteString(` data-animate="` + esc(string(blk.Animation.Type)) + `" data-delay="` + formatDelay(blk.Animation.Delay) + `"`)
	}
	if style := blockStyle(blk.Styles); style != "" {
		sb.WriteString(` style="` + esc(style) + `"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(string(r.reg.Render(r.context(v), blk)))
	sb.WriteString(`</div>`)

	return template.HTML(sb.String())
}

var cssUnsafe = regexp.MustCompile(`[^a-zA-Z0-9#%.,() -]`)

// cssValue keeps only characters that cannot break out of a declaration.
func cssValue(v string) string {
	return strings.TrimSpace(cssUnsafe.ReplaceAllString(v, ""))
}

func cssURL(u string) string {
	u = registry.SafeURL(u)
	if u == "#" {
		return ""
	}
	return strings.NewReplacer(`'`, "%27", `"`, "%22", `\`, "", "\n", "", ")", "%29").Replace(u)
}

func sectionStyle(s models.SectionStyles) string {
	var parts []string
	if v := cssValue(s.BackgroundColor); v != "" {
		parts = append(parts, "background-color: "+v)
	}
	if s.BackgroundImage != "" {
		if u := cssURL(s.BackgroundImage); u != "" {
			parts = append(parts, "background-image: url('"+u+"')", "background-size: cover", "background-position: center")
		}
	}
	if v := cssValue(s.Padding); v != "" {
		parts = append(parts, "padding: "+v)
	}
	return strings.Join(parts, "; ")
}

func blockStyle(s models.BlockStyles) string {
	var parts []string
	switch s.TextAlign {
	case models.AlignLeft, models.AlignCenter, models.AlignRight:
		parts = append(parts, "text-align: "+string(s.TextAlign))
	}
	if v := cssValue(s.Color); v != "" {
		parts = append(parts, "color: "+v)
	}
	if v := cssValue(s.BackgroundColor); v != "" {
		parts = append(parts, "background-color: "+v)
	}
	return strings.Join(parts, "; ")
}

func formatDelay(d float64) string {
	if d < 0 {
		d = 0
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}
