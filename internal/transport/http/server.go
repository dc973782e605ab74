package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/editor"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/render"
	"videepat_foods/internal/repository"
	cartsvc "videepat_foods/internal/services/cart_service"
	catalogsvc "videepat_foods/internal/services/catalog_service"
	pagesvc "videepat_foods/internal/services/page_service"
	storefrontsvc "videepat_foods/internal/services/storefront_service"
	"videepat_foods/internal/storage"
	"videepat_foods/internal/storage/filestorage"
	"videepat_foods/internal/transport/http/dto/response"

	_ "videepat_foods/docs"
)

type PageService interface {
	ListPages(ctx context.Context) ([]models.Page, error)
	GetPage(ctx context.Context, id string) (models.Page, error)
	CreatePage(ctx context.Context, page models.Page) (models.Page, error)
	UpdatePage(ctx context.Context, page models.Page) (models.Page, error)
	DeletePage(ctx context.Context, id string) error
}

type StoryService interface {
	ListStories(ctx context.Context, activeOnly bool) ([]models.Story, error)
	GetStory(ctx context.Context, id string) (models.Story, error)
	CreateStory(ctx context.Context, story models.Story) (models.Story, error)
	UpdateStory(ctx context.Context, story models.Story) (models.Story, error)
	DeleteStory(ctx context.Context, id string) error
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	GetActiveProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error)
	GetHero(ctx context.Context) (models.Hero, error)
	UpdateHero(ctx context.Context, h models.Hero) (models.Hero, error)
}

type StorefrontService interface {
	RenderPage(ctx context.Context, slug string, device render.Device) (storefrontsvc.Rendered, error)
	RenderStory(ctx context.Context, id string) (storefrontsvc.Rendered, error)
	StoryList(ctx context.Context) (storefrontsvc.Rendered, error)
	Home(ctx context.Context) (storefrontsvc.Home, error)
}

type CartService interface {
	GetCart(ctx context.Context, cartID string) (models.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (models.Cart, error)
	Clear(ctx context.Context, cartID string) error
	Quote(ctx context.Context, cartID, couponCode string) (cartsvc.Quote, error)
	Checkout(ctx context.Context, cartID string, customer models.Customer, couponCode string) (models.Order, error)
}

type MediaStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (filestorage.Stored, error)
}

type Routers struct {
	log               *slog.Logger
	views             *render.Views
	PageService       PageService
	StoryService      StoryService
	CatalogService    CatalogService
	StorefrontService StorefrontService
	CartService       CartService
	MediaStore        MediaStore
}

func NewRouter(
	log *slog.Logger,
	views *render.Views,
	pageService PageService,
	storyService StoryService,
	catalogService CatalogService,
	storefrontService StorefrontService,
	cartService CartService,
	mediaStore MediaStore,
) *Routers {
	return &Routers{
		log:               log,
		views:             views,
		PageService:       pageService,
		StoryService:      storyService,
		CatalogService:    catalogService,
		StorefrontService: storefrontService,
		CartService:       cartService,
		MediaStore:        mediaStore,
	}
}

var notFoundErrors = []error{
	storage.ErrPageNotFound,
	storage.ErrStoryNotFound,
	storage.ErrProductNotFound,
	storage.ErrCategoryNotFound,
	storage.ErrCouponNotFound,
	storage.ErrHeroNotFound,
}

// ошибки, которые пользователь может исправить сам
var badRequestErrors = []error{
	editor.ErrNameRequired,
	editor.ErrTitleRequired,
	editor.ErrThumbnailRequired,
	editor.ErrHeroRequired,
	editor.ErrExcerptRequired,
	editor.ErrInvalidBlockType,
	pagesvc.ErrInvalidSlug,
	pagesvc.ErrInvalidLayout,
	pagesvc.ErrInvalidStatus,
	pagesvc.ErrUnknownBlock,
	pagesvc.ErrDuplicateBlock,
	catalogsvc.ErrProductName,
	catalogsvc.ErrProductPrice,
	catalogsvc.ErrCategoryName,
	catalogsvc.ErrCouponCode,
	catalogsvc.ErrCouponValue,
	catalogsvc.ErrCouponType,
	catalogsvc.ErrCouponScope,
	catalogsvc.ErrCouponScopeIDs,
	cartsvc.ErrEmptyCart,
	cartsvc.ErrItemNotInCart,
	cartsvc.ErrOutOfStock,
	cartsvc.ErrCartIDRequired,
	filestorage.ErrUnsupportedType,
	models.ErrCouponInactive,
	models.ErrCouponExpired,
	models.ErrCouponExhausted,
	models.ErrCouponMinCartValue,
	models.ErrCouponNotApplicable,
}

var conflictErrors = []error{
	storage.ErrCouponCodeExists,
	storage.ErrCategoryExists,
}

// matchError returns the sentinel from list that err wraps, or nil.
func matchError(err error, list []error) error {
	for _, target := range list {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// apiError переводит ошибку сервиса в JSON-ответ с подходящим статусом.
func (r *Routers) apiError(c echo.Context, log *slog.Logger, err error) error {
	if errors.Is(err, storage.ErrSlugExists) {
		log.Warn("slug already taken", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrSlugExists)
	}

	if errors.Is(err, storage.ErrVersionConflict) {
		log.Warn("stale version", sl.Err(err))
		return c.JSON(http.StatusConflict, response.ErrVersionConflict)
	}

	if target := matchError(err, notFoundErrors); target != nil {
		resp := response.ErrNotFound
		resp.Details = target.Error()
		return c.JSON(http.StatusNotFound, resp)
	}

	if target := matchError(err, conflictErrors); target != nil {
		return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("conflict", target.Error()))
	}

	if target := matchError(err, badRequestErrors); target != nil {
		log.Warn("rejected request", sl.Err(err))
		resp := response.ErrInvalidRequestFormat
		resp.Details = target.Error()
		return c.JSON(http.StatusBadRequest, resp)
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// bindAndValidate is the Bind + Validate pair every write handler starts with.
// A non-nil result is the 400 body to send back.
func bindAndValidate(c echo.Context, log *slog.Logger, req any) *response.ErrorResponse {
	if err := c.Bind(req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		resp := response.ErrInvalidRequestFormat
		resp.Details = bindDetails(err)
		return &resp
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		return &resp
	}

	return nil
}

func bindDetails(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}

func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	return strings.Contains(accept, echo.MIMEApplicationJSON) || strings.HasPrefix(ctype, echo.MIMEApplicationJSON)
}
