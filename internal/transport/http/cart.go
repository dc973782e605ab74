package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/render"
	cartsvc "videepat_foods/internal/services/cart_service"
	"videepat_foods/internal/transport/http/dto/request"
	"videepat_foods/internal/transport/http/dto/response"
)

const (
	sessionName = "session"
	cartKey     = "cart_id"
)

var errNoSession = errors.New("session store is not configured")

// cartID достаёт id корзины из cookie-сессии. С create=true выдаёт новый id и сохраняет сессию.
func cartID(c echo.Context, create bool) (string, error) {
	sess, err := session.Get(sessionName, c)
	// битая или чужая cookie: gorilla отдаёт новую сессию вместе с ошибкой
	if sess == nil {
		if err == nil {
			err = errNoSession
		}
		return "", err
	}

	if id, ok := sess.Values[cartKey].(string); ok && id != "" {
		return id, nil
	}
	if !create {
		return "", nil
	}

	id := uuid.NewString()
	sess.Values[cartKey] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return id, nil
}

// errEmptyCart: без id корзины в сессии работать не с чем.
func errEmptyCart(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", cartsvc.ErrEmptyCart, err)
	}
	return cartsvc.ErrEmptyCart
}

// cartError отвечает на ошибку корзины JSON-ом или HTML-страницей корзины.
func (r *Routers) cartError(c echo.Context, log *slog.Logger, id string, err error) error {
	if wantsJSON(c) {
		return r.apiError(c, log, err)
	}

	if matchError(err, notFoundErrors) != nil {
		return r.notFoundView(c)
	}

	target := matchError(err, badRequestErrors)
	if target == nil {
		log.Error("cart request failed", sl.Err(err))
		return c.String(http.StatusInternalServerError, "internal server error")
	}

	log.Warn("rejected cart request", sl.Err(err))
	cart, cerr := r.CartService.GetCart(c.Request().Context(), id)
	if cerr != nil {
		cart = models.Cart{ID: id}
	}
	return r.cartView(c, http.StatusBadRequest, cart, target.Error())
}

func (r *Routers) cartDone(c echo.Context, cart models.Cart) error {
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, response.Cart(cart))
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// GetCart godoc
// @Summary Корзина
// @Description HTML-страница корзины или JSON при Accept: application/json.
// @Tags cart
// @Produce html,json
// @Success 200 {object} response.CartResponse
// @Router /cart [get]
func (r *Routers) GetCart(c echo.Context) error {
	const op = "http.routers.GetCart"
	log := r.log.With(slog.String("op", op))

	id, err := cartID(c, false)
	if err != nil {
		log.Warn("failed to read session", sl.Err(err))
	}

	cart := models.Cart{}
	if id != "" {
		cart, err = r.CartService.GetCart(c.Request().Context(), id)
		if err != nil {
			return r.cartError(c, log, id, err)
		}
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, response.Cart(cart))
	}
	return r.cartView(c, http.StatusOK, cart, "")
}

// AddCartItem godoc
// @Summary Добавление товара в корзину
// @Description Форма со страницы товара получает редирект 303 на /cart, JSON-клиент получает корзину.
// @Tags cart
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request.AddCartItemRequest true "Товар"
// @Success 200 {object} response.CartResponse
// @Success 303
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /cart/items [post]
func (r *Routers) AddCartItem(c echo.Context) error {
	const op = "http.routers.AddCartItem"
	log := r.log.With(slog.String("op", op))

	var req request.AddCartItemRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	id, err := cartID(c, true)
	if err != nil {
		log.Error("failed to issue cart id", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	cart, err := r.CartService.AddItem(c.Request().Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		return r.cartError(c, log, id, err)
	}

	log.Debug("item added", slog.String("cart_id", id), slog.String("product_id", req.ProductID))
	return r.cartDone(c, cart)
}

// UpdateCartItem godoc
// @Summary Изменение количества
// @Description Количество меньше единицы удаляет позицию.
// @Tags cart
// @Accept json
// @Produce json
// @Param product_id path string true "ID товара"
// @Param request body request.UpdateCartItemRequest true "Количество"
// @Success 200 {object} response.CartResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /cart/items/{product_id} [patch]
func (r *Routers) UpdateCartItem(c echo.Context) error {
	const op = "http.routers.UpdateCartItem"
	log := r.log.With(slog.String("op", op), slog.String("product_id", c.Param("product_id")))

	var req request.UpdateCartItemRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	id, err := cartID(c, false)
	if err != nil || id == "" {
		return r.cartError(c, log, id, errEmptyCart(err))
	}

	cart, err := r.CartService.UpdateQuantity(c.Request().Context(), id, c.Param("product_id"), req.Quantity)
	if err != nil {
		return r.cartError(c, log, id, err)
	}

	return r.cartDone(c, cart)
}

// RemoveCartItem godoc
// @Summary Удаление позиции
// @Tags cart
// @Produce json
// @Param product_id path string true "ID товара"
// @Success 200 {object} response.CartResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /cart/items/{product_id} [delete]
func (r *Routers) RemoveCartItem(c echo.Context) error {
	const op = "http.routers.RemoveCartItem"
	log := r.log.With(slog.String("op", op), slog.String("product_id", c.Param("product_id")))

	id, err := cartID(c, false)
	if err != nil || id == "" {
		return r.cartError(c, log, id, errEmptyCart(err))
	}

	cart, err := r.CartService.RemoveItem(c.Request().Context(), id, c.Param("product_id"))
	if err != nil {
		return r.cartError(c, log, id, err)
	}

	return r.cartDone(c, cart)
}

// ClearCart godoc
// @Summary Очистка корзины
// @Tags cart
// @Produce json
// @Success 200 {object} response.CartResponse
// @Router /cart [delete]
func (r *Routers) ClearCart(c echo.Context) error {
	const op = "http.routers.ClearCart"
	log := r.log.With(slog.String("op", op))

	id, err := cartID(c, false)
	if err != nil {
		log.Warn("failed to read session", sl.Err(err))
	}

	if id != "" {
		if err := r.CartService.Clear(c.Request().Context(), id); err != nil {
			return r.cartError(c, log, id, err)
		}
	}

	return r.cartDone(c, models.Cart{ID: id})
}

// CartQuote godoc
// @Summary Расчёт скидки
// @Description Считает итог с купоном без оформления заказа.
// @Tags cart
// @Produce json
// @Param coupon_code query string false "Код купона"
// @Success 200 {object} services.Quote
// @Failure 400 {object} response.ErrorResponse
// @Router /cart/quote [get]
func (r *Routers) CartQuote(c echo.Context) error {
	const op = "http.routers.CartQuote"
	log := r.log.With(slog.String("op", op))

	var req request.QuoteRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}

	id, err := cartID(c, false)
	if err != nil || id == "" {
		return r.apiError(c, log, errEmptyCart(err))
	}

	quote, err := r.CartService.Quote(c.Request().Context(), id, req.CouponCode)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, quote)
}

// Checkout godoc
// @Summary Оформление заказа
// @Description Форма или JSON. Ошибки формы показываются на странице корзины со статусом 400.
// @Tags cart
// @Accept json,x-www-form-urlencoded
// @Produce html,json
// @Param request body request.CheckoutRequest true "Данные покупателя"
// @Success 201 {object} models.Order
// @Failure 400 {object} response.ErrorResponse
// @Router /checkout [post]
func (r *Routers) Checkout(c echo.Context) error {
	const op = "http.routers.Checkout"
	log := r.log.With(slog.String("op", op))
	ctx := c.Request().Context()

	id, err := cartID(c, false)
	if err != nil || id == "" {
		return r.cartError(c, log, id, errEmptyCart(err))
	}

	var req request.CheckoutRequest
	if resp := bindAndValidate(c, log, &req); resp != nil {
		if wantsJSON(c) {
			return c.JSON(http.StatusBadRequest, resp)
		}
		cart, cerr := r.CartService.GetCart(ctx, id)
		if cerr != nil {
			cart = models.Cart{ID: id}
		}
		return r.cartView(c, http.StatusBadRequest, cart, "Please check your delivery details.")
	}

	order, err := r.CartService.Checkout(ctx, id, req.Customer(), req.CouponCode)
	if err != nil {
		return r.cartError(c, log, id, err)
	}

	log.Info("order placed", slog.String("order_id", order.ID), slog.Float64("total", order.Total))

	if wantsJSON(c) {
		return c.JSON(http.StatusCreated, order)
	}
	return r.view(c, http.StatusOK, render.ViewOrder, render.OrderData{
		Shell: r.shell(c, "Order placed", ""),
		Order: order,
	})
}
