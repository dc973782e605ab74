package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Shell общие данные обёртки документа
type Shell struct {
	Title       string
	Description string
	CartCount   int
}

type HomeData struct {
	Shell
	Hero       models.Hero
	Categories []models.Category
	Products   []models.Product
}

type ProductsData struct {
	Shell
	Category *models.Category
	Products []models.Product
}

type ProductData struct {
	Shell
	Product models.Product
}

type CartData struct {
	Shell
	Cart  models.Cart
	Error string
}

type OrderData struct {
	Shell
	Order models.Order
}

// ContentData wraps markup the Renderer already produced (pages, stories).
type ContentData struct {
	Shell
	Body template.HTML
}

const (
	ViewHome     = "home"
	ViewProducts = "products"
	ViewProduct  = "product"
	ViewCart     = "cart"
	ViewOrder    = "order"
	ViewContent  = "content"
	ViewNotFound = "notfound"
)

// Views документы витрины: layout + одна страница на шаблон
type Views struct {
	set map[string]*template.Template
}

func NewViews() (*Views, error) {
	const op = "render.NewViews"

	funcs := template.FuncMap{
		"price":   registry.FormatPrice,
		"card":    registry.ProductCard,
		"safeURL": registry.SafeURL,
		"video":   registry.VideoMarkup,
	}

	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names := []string{ViewHome, ViewProducts, ViewProduct, ViewCart, ViewOrder, ViewContent, ViewNotFound}
	set := make(map[string]*template.Template, len(names))
	for _, name := range names {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, err := clone.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, name, err)
		}
		set[name] = clone
	}

	return &Views{set: set}, nil
}

func MustViews() *Views {
	v, err := NewViews()
	if err != nil {
		panic(err)
	}
	return v
}

// Execute writes the named view wrapped in the document layout.
func (v *Views) Execute(w io.Writer, name string, data any) error {
	const op = "render.Views.Execute"

	tmpl, ok := v.set[name]
	if !ok {
		return fmt.Errorf("%s: unknown view %q", op, name)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
