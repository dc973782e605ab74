package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/transport/http/dto/request"
	"videepat_foods/internal/transport/http/dto/response"
)

// ListProducts godoc
// @Summary Список товаров
// @Tags products
// @Produce json
// @Param category query string false "ID категории"
// @Param active query bool false "Только активные"
// @Param limit query int false "Максимум товаров"
// @Success 200 {array} response.ProductResponse
// @Router /api/products/ [get]
func (r *Routers) ListProducts(c echo.Context) error {
	const op = "http.routers.ListProducts"
	log := r.log.With(slog.String("op", op))

	filter := repository.ProductFilter{
		ActiveOnly: c.QueryParam("active") == "true",
		CategoryID: c.QueryParam("category"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "limit must be a positive number"))
		}
		filter.Limit = limit
	}

	products, err := r.CatalogService.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.List(products, response.Product))
}

// GetProduct godoc
// @Summary Получение товара
// @Tags products
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} response.ProductResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/products/{id}/ [get]
func (r *Routers) GetProduct(c echo.Context) error {
	const op = "http.routers.GetProduct"
	log := r.log.With(slog.String("op", op), slog.String("product_id", c.Param("id")))

	p, err := r.CatalogService.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Product(p))
}

// CreateProduct godoc
// @Summary Создание товара
// @Tags products
// @Accept json
// @Produce json
// @Param request body request.ProductRequest true "Товар"
// @Success 201 {object} response.ProductResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/products/ [post]
func (r *Routers) CreateProduct(c echo.Context) error {
	const op = "http.routers.CreateProduct"
	log := r.log.With(slog.String("op", op))

	var req request.ProductRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	created, err := r.CatalogService.CreateProduct(c.Request().Context(), req.Model())
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.Product(created))
}

// UpdateProduct godoc
// @Summary Замена товара
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID товара"
// @Param request body request.ProductRequest true "Товар"
// @Success 200 {object} response.ProductResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/products/{id}/ [put]
func (r *Routers) UpdateProduct(c echo.Context) error {
	const op = "http.routers.UpdateProduct"
	log := r.log.With(slog.String("op", op), slog.String("product_id", c.Param("id")))

	var req request.ProductRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	p := req.Model()
	p.ID = c.Param("id")

	updated, err := r.CatalogService.UpdateProduct(c.Request().Context(), p)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Product(updated))
}

// DeleteProduct godoc
// @Summary Удаление товара
// @Tags products
// @Param id path string true "ID товара"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/products/{id}/ [delete]
func (r *Routers) DeleteProduct(c echo.Context) error {
	const op = "http.routers.DeleteProduct"
	log := r.log.With(slog.String("op", op), slog.String("product_id", c.Param("id")))

	if err := r.CatalogService.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Message("Product deleted"))
}

// ListCategories godoc
// @Summary Список категорий
// @Tags categories
// @Produce json
// @Param active query bool false "Только активные"
// @Success 200 {array} response.CategoryResponse
// @Router /api/categories/ [get]
func (r *Routers) ListCategories(c echo.Context) error {
	const op = "http.routers.ListCategories"
	log := r.log.With(slog.String("op", op))

	categories, err := r.CatalogService.ListCategories(c.Request().Context(), c.QueryParam("active") == "true")
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.List(categories, response.Category))
}

// CreateCategory godoc
// @Summary Создание категории
// @Tags categories
// @Accept json
// @Produce json
// @Param request body request.CategoryRequest true "Категория"
// @Success 201 {object} response.CategoryResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Slug занят"
// @Router /api/categories/ [post]
func (r *Routers) CreateCategory(c echo.Context) error {
	const op = "http.routers.CreateCategory"
	log := r.log.With(slog.String("op", op))

	var req request.CategoryRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	created, err := r.CatalogService.CreateCategory(c.Request().Context(), req.Model())
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.Category(created))
}

// ListCoupons godoc
// @Summary Список купонов
// @Tags coupons
// @Produce json
// @Success 200 {array} response.CouponResponse
// @Router /api/coupons/ [get]
func (r *Routers) ListCoupons(c echo.Context) error {
	const op = "http.routers.ListCoupons"
	log := r.log.With(slog.String("op", op))

	coupons, err := r.CatalogService.ListCoupons(c.Request().Context())
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.List(coupons, response.Coupon))
}

// CreateCoupon godoc
// @Summary Создание купона
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body request.CouponRequest true "Купон"
// @Success 201 {object} response.CouponResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Код уже существует"
// @Router /api/coupons/ [post]
func (r *Routers) CreateCoupon(c echo.Context) error {
	const op = "http.routers.CreateCoupon"
	log := r.log.With(slog.String("op", op))

	var req request.CouponRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	created, err := r.CatalogService.CreateCoupon(c.Request().Context(), req.Model())
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.Coupon(created))
}

// GetHero godoc
// @Summary Баннер главной
// @Description Если баннер ещё не сохранён, создаётся баннер по умолчанию.
// @Tags hero
// @Produce json
// @Success 200 {object} response.HeroResponse
// @Router /api/hero/ [get]
func (r *Routers) GetHero(c echo.Context) error {
	const op = "http.routers.GetHero"
	log := r.log.With(slog.String("op", op))

	h, err := r.CatalogService.GetHero(c.Request().Context())
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Hero(h))
}

// UpdateHero godoc
// @Summary Замена баннера главной
// @Tags hero
// @Accept json
// @Produce json
// @Param request body models.Hero true "Баннер"
// @Success 200 {object} response.HeroResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/hero/ [put]
func (r *Routers) UpdateHero(c echo.Context) error {
	const op = "http.routers.UpdateHero"
	log := r.log.With(slog.String("op", op))

	var h models.Hero
	if err := c.Bind(&h); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", bindDetails(err)))
	}

	saved, err := r.CatalogService.UpdateHero(c.Request().Context(), h)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Hero(saved))
}
