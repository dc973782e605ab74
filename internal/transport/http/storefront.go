package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/render"
	"videepat_foods/internal/repository"
	storefrontsvc "videepat_foods/internal/services/storefront_service"
)

// device берёт ?device= для предпросмотра, иначе смотрит на User-Agent.
func device(c echo.Context) render.Device {
	if d, ok := render.ParseDevice(c.QueryParam("device")); ok {
		return d
	}
	return render.DeviceFromUserAgent(c.Request().UserAgent())
}

func (r *Routers) shell(c echo.Context, title, description string) render.Shell {
	s := render.Shell{Title: title, Description: description}

	if id, err := cartID(c, false); err == nil && id != "" {
		if cart, err := r.CartService.GetCart(c.Request().Context(), id); err == nil {
			s.CartCount = cart.Count()
		}
	}

	return s
}

func (r *Routers) view(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.views.Execute(&buf, name, data); err != nil {
		r.log.Error("failed to execute view", slog.String("view", name), sl.Err(err))
		return c.String(http.StatusInternalServerError, "internal server error")
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func (r *Routers) notFoundView(c echo.Context) error {
	return r.view(c, http.StatusNotFound, render.ViewNotFound, render.ContentData{
		Shell: r.shell(c, "Page not found", ""),
	})
}

// storefrontError отдаёт 404-страницу для отсутствующих сущностей и 500 для остального.
func (r *Routers) storefrontError(c echo.Context, log *slog.Logger, err error) error {
	if matchError(err, notFoundErrors) != nil {
		return r.notFoundView(c)
	}
	log.Error("storefront request failed", sl.Err(err))
	return c.String(http.StatusInternalServerError, "internal server error")
}

func (r *Routers) content(c echo.Context, rendered storefrontsvc.Rendered) error {
	return r.view(c, http.StatusOK, render.ViewContent, render.ContentData{
		Shell: r.shell(c, rendered.Title, rendered.Description),
		Body:  rendered.HTML,
	})
}

// Home godoc
// @Summary Главная страница витрины
// @Tags storefront
// @Produce html
// @Success 200 {string} string "HTML"
// @Router / [get]
func (r *Routers) Home(c echo.Context) error {
	const op = "http.routers.Home"
	log := r.log.With(slog.String("op", op))

	home, err := r.StorefrontService.Home(c.Request().Context())
	if err != nil {
		return r.storefrontError(c, log, err)
	}

	return r.view(c, http.StatusOK, render.ViewHome, render.HomeData{
		Shell:      r.shell(c, "", home.Hero.Subtitle),
		Hero:       home.Hero,
		Categories: home.Categories,
		Products:   home.Products,
	})
}

// Products godoc
// @Summary Каталог товаров
// @Tags storefront
// @Produce html
// @Param category query string false "ID категории"
// @Success 200 {string} string "HTML"
// @Router /products [get]
func (r *Routers) Products(c echo.Context) error {
	const op = "http.routers.Products"
	log := r.log.With(slog.String("op", op))
	ctx := c.Request().Context()

	data := render.ProductsData{}
	filter := repository.ProductFilter{ActiveOnly: true}

	if id := c.QueryParam("category"); id != "" {
		category, err := r.CatalogService.GetCategory(ctx, id)
		if err != nil || !category.IsActive {
			return r.notFoundView(c)
		}
		data.Category = &category
		filter.CategoryID = category.ID
	}

	products, err := r.CatalogService.ListProducts(ctx, filter)
	if err != nil {
		return r.storefrontError(c, log, err)
	}
	data.Products = products

	title := "All Products"
	if data.Category != nil {
		title = data.Category.Name
	}
	data.Shell = r.shell(c, title, "")

	return r.view(c, http.StatusOK, render.ViewProducts, data)
}

// Product godoc
// @Summary Карточка товара
// @Tags storefront
// @Produce html
// @Param id path string true "ID товара"
// @Success 200 {string} string "HTML"
// @Failure 404 {string} string "HTML"
// @Router /products/{id} [get]
func (r *Routers) Product(c echo.Context) error {
	const op = "http.routers.Product"
	log := r.log.With(slog.String("op", op), slog.String("product_id", c.Param("id")))

	p, err := r.CatalogService.GetActiveProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.storefrontError(c, log, err)
	}

	return r.view(c, http.StatusOK, render.ViewProduct, render.ProductData{
		Shell:   r.shell(c, p.Name, p.Description),
		Product: p,
	})
}

// Page godoc
// @Summary Опубликованная страница конструктора
// @Description Slug без учёта регистра и пробелов по краям. Неизвестный slug отдаёт 404-страницу.
// @Tags storefront
// @Produce html
// @Param slug path string true "Slug страницы"
// @Param device query string false "mobile, tablet или desktop"
// @Success 200 {string} string "HTML"
// @Failure 404 {string} string "HTML"
// @Router /p/{slug} [get]
func (r *Routers) Page(c echo.Context) error {
	const op = "http.routers.Page"
	log := r.log.With(slog.String("op", op), slog.String("slug", c.Param("slug")))

	rendered, err := r.StorefrontService.RenderPage(c.Request().Context(), c.Param("slug"), device(c))
	if err != nil {
		return r.storefrontError(c, log, err)
	}

	return r.content(c, rendered)
}

// Stories godoc
// @Summary Список историй
// @Tags storefront
// @Produce html
// @Success 200 {string} string "HTML"
// @Router /stories [get]
func (r *Routers) Stories(c echo.Context) error {
	const op = "http.routers.Stories"
	log := r.log.With(slog.String("op", op))

	rendered, err := r.StorefrontService.StoryList(c.Request().Context())
	if err != nil {
		return r.storefrontError(c, log, err)
	}

	return r.content(c, rendered)
}

// Story godoc
// @Summary История
// @Tags storefront
// @Produce html
// @Param id path string true "ID истории"
// @Success 200 {string} string "HTML"
// @Failure 404 {string} string "HTML"
// @Router /stories/{id} [get]
func (r *Routers) Story(c echo.Context) error {
	const op = "http.routers.Story"
	log := r.log.With(slog.String("op", op), slog.String("story_id", c.Param("id")))

	rendered, err := r.StorefrontService.RenderStory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.storefrontError(c, log, err)
	}

	return r.content(c, rendered)
}

func (r *Routers) cartView(c echo.Context, status int, cart models.Cart, message string) error {
	return r.view(c, status, render.ViewCart, render.CartData{
		Shell: r.shell(c, "Cart", ""),
		Cart:  cart,
		Error: message,
	})
}
