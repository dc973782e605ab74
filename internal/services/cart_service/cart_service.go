package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/metrics"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/storage"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrItemNotInCart  = errors.New("product is not in the cart")
	ErrOutOfStock     = errors.New("not enough stock")
	ErrCartIDRequired = errors.New("cart id is required")
)

type ProductSource interface {
	GetActiveProduct(ctx context.Context, id string) (models.Product, error)
}

// Quote сумма корзины с учётом купона, без оформления заказа.
type Quote struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
	CouponCode string  `json:"coupon_code,omitempty"`
}

type CartService struct {
	log      *slog.Logger
	carts    repository.CartRepository
	products ProductSource
	coupons  repository.CouponRepository
	now      func() time.Time
}

func NewCartService(
	log *slog.Logger,
	carts repository.CartRepository,
	products ProductSource,
	coupons repository.CouponRepository,
) *CartService {
	return &CartService{
		log:      log,
		carts:    carts,
		products: products,
		coupons:  coupons,
		now:      time.Now,
	}
}

// GetCart returns the stored cart; an unknown id yields an empty cart.
func (s *CartService) GetCart(ctx context.Context, cartID string) (models.Cart, error) {
	const op = "cart_service.GetCart"

	if cartID == "" {
		return models.Cart{}, fmt.Errorf("%s: %w", op, ErrCartIDRequired)
	}

	cart, err := s.carts.GetCart(ctx, cartID)
	if errors.Is(err, storage.ErrCartNotFound) {
		return models.Cart{ID: cartID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		s.log.Error("failed to load cart", slog.String("op", op), slog.String("cart_id", cartID), sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return cart, nil
}

// AddItem кладёт активный товар в корзину по текущей цене (со скидкой, если есть).
// Повторное добавление увеличивает количество.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error) {
	const op = "cart_service.AddItem"
	log := s.log.With(slog.String("op", op), slog.String("cart_id", cartID), slog.String("product_id", productID))

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.GetActiveProduct(ctx, productID)
	if err != nil {
		log.Warn("product not available", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if quantity < 1 {
		quantity = 1
	}
	if p.Stock > 0 && inCart(cart, productID)+quantity > p.Stock {
		return models.Cart{}, fmt.Errorf("%s: %w", op, ErrOutOfStock)
	}

	cart.Add(models.CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.EffectivePrice(),
		Image:       p.Cover(),
		CategoryIDs: p.CategoryIDs,
		Quantity:    quantity,
	})

	if err := s.save(ctx, &cart); err != nil {
		log.Error("failed to save cart", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("item added", slog.Int("quantity", quantity))

	return cart, nil
}

// UpdateQuantity sets the quantity of a line; below one the line is removed.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error) {
	const op = "cart_service.UpdateQuantity"

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if !cart.UpdateQuantity(productID, quantity) {
		return models.Cart{}, fmt.Errorf("%s: %w", op, ErrItemNotInCart)
	}

	if err := s.save(ctx, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (models.Cart, error) {
	const op = "cart_service.RemoveItem"

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if !cart.Remove(productID) {
		return models.Cart{}, fmt.Errorf("%s: %w", op, ErrItemNotInCart)
	}

	if err := s.save(ctx, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	const op = "cart_service.Clear"

	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Quote prices the cart with an optional coupon.
func (s *CartService) Quote(ctx context.Context, cartID, couponCode string) (Quote, error) {
	const op = "cart_service.Quote"

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return Quote{}, fmt.Errorf("%s: %w", op, err)
	}

	q, _, err := s.quote(ctx, cart, couponCode)
	if err != nil {
		return Quote{}, fmt.Errorf("%s: %w", op, err)
	}

	return q, nil
}

// Checkout суммирует заказ, списывает использование купона и очищает корзину.
// Оплата не проводится.
func (s *CartService) Checkout(ctx context.Context, cartID string, customer models.Customer, couponCode string) (models.Order, error) {
	const op = "cart_service.Checkout"
	log := s.log.With(slog.String("op", op), slog.String("cart_id", cartID))

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(cart.Items) == 0 {
		return models.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	q, coupon, err := s.quote(ctx, cart, couponCode)
	if err != nil {
		log.Warn("coupon rejected", slog.String("code", couponCode), sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if coupon != nil {
		if err := s.coupons.IncrementUsage(ctx, coupon.ID); err != nil {
			log.Warn("failed to use coupon", slog.String("code", coupon.Code), sl.Err(err))
			return models.Order{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	order := models.Order{
		ID:         uuid.NewString(),
		Customer:   customer,
		Items:      cart.Items,
		Subtotal:   q.Subtotal,
		Discount:   q.Discount,
		Total:      q.Total,
		CouponCode: q.CouponCode,
		CreatedAt:  s.now().UTC(),
	}

	// заказ уже посчитан, корзина в любом случае истечёт по TTL
	if err := s.carts.DeleteCart(ctx, cartID); err != nil {
		log.Warn("failed to clear cart after checkout", sl.Err(err))
	}

	label := "none"
	if coupon != nil {
		label = "applied"
	}
	metrics.OrdersTotal.WithLabelValues(label).Inc()

	log.Info("order summarised",
		slog.String("order_id", order.ID),
		slog.Float64("total", order.Total),
		slog.Int("items", cart.Count()),
	)

	return order, nil
}

func (s *CartService) quote(ctx context.Context, cart models.Cart, couponCode string) (Quote, *models.Coupon, error) {
	q := Quote{Subtotal: cart.Total()}
	q.Total = q.Subtotal

	code := models.NormalizeCode(couponCode)
	if code == "" {
		return q, nil, nil
	}

	coupon, err := s.coupons.GetCouponByCode(ctx, code)
	if err != nil {
		return Quote{}, nil, err
	}

	discount, err := coupon.Discount(cart, s.now())
	if err != nil {
		return Quote{}, nil, err
	}

	q.Discount = discount
	q.Total = models.RoundMoney(q.Subtotal - discount)
	q.CouponCode = coupon.Code

	return q, &coupon, nil
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = s.now().UTC()
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return s.carts.SaveCart(ctx, *cart)
}

func inCart(cart models.Cart, productID string) int {
	for _, item := range cart.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}
