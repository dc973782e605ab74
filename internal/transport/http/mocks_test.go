package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/render"
	"videepat_foods/internal/repository"
	cartsvc "videepat_foods/internal/services/cart_service"
	storefrontsvc "videepat_foods/internal/services/storefront_service"
)

type MockPageService struct {
	mock.Mock
}

func (m *MockPageService) ListPages(ctx context.Context) ([]models.Page, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Page), args.Error(1)
}

func (m *MockPageService) GetPage(ctx context.Context, id string) (models.Page, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Page), args.Error(1)
}

func (m *MockPageService) CreatePage(ctx context.Context, page models.Page) (models.Page, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(models.Page), args.Error(1)
}

func (m *MockPageService) UpdatePage(ctx context.Context, page models.Page) (models.Page, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(models.Page), args.Error(1)
}

func (m *MockPageService) DeletePage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockStoryService struct {
	mock.Mock
}

func (m *MockStoryService) ListStories(ctx context.Context, activeOnly bool) ([]models.Story, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *MockStoryService) GetStory(ctx context.Context, id string) (models.Story, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Story), args.Error(1)
}

func (m *MockStoryService) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	args := m.Called(ctx, story)
	return args.Get(0).(models.Story), args.Error(1)
}

func (m *MockStoryService) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	args := m.Called(ctx, story)
	return args.Get(0).(models.Story), args.Error(1)
}

func (m *MockStoryService) DeleteStory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockCatalogService) GetActiveProduct(ctx context.Context, id string) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogService) GetCategory(ctx context.Context, id string) (models.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCatalogService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Coupon), args.Error(1)
}

func (m *MockCatalogService) CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Coupon), args.Error(1)
}

func (m *MockCatalogService) GetHero(ctx context.Context) (models.Hero, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Hero), args.Error(1)
}

func (m *MockCatalogService) UpdateHero(ctx context.Context, h models.Hero) (models.Hero, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(models.Hero), args.Error(1)
}

type MockStorefrontService struct {
	mock.Mock
}

func (m *MockStorefrontService) RenderPage(ctx context.Context, slug string, device render.Device) (storefrontsvc.Rendered, error) {
	args := m.Called(ctx, slug, device)
	return args.Get(0).(storefrontsvc.Rendered), args.Error(1)
}

func (m *MockStorefrontService) RenderStory(ctx context.Context, id string) (storefrontsvc.Rendered, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storefrontsvc.Rendered), args.Error(1)
}

func (m *MockStorefrontService) StoryList(ctx context.Context) (storefrontsvc.Rendered, error) {
	args := m.Called(ctx)
	return args.Get(0).(storefrontsvc.Rendered), args.Error(1)
}

func (m *MockStorefrontService) Home(ctx context.Context) (storefrontsvc.Home, error) {
	args := m.Called(ctx)
	return args.Get(0).(storefrontsvc.Home), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, cartID string) (models.Cart, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, productID string) (models.Cart, error) {
	args := m.Called(ctx, cartID, productID)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *MockCartService) Quote(ctx context.Context, cartID, couponCode string) (cartsvc.Quote, error) {
	args := m.Called(ctx, cartID, couponCode)
	return args.Get(0).(cartsvc.Quote), args.Error(1)
}

func (m *MockCartService) Checkout(ctx context.Context, cartID string, customer models.Customer, couponCode string) (models.Order, error) {
	args := m.Called(ctx, cartID, customer, couponCode)
	return args.Get(0).(models.Order), args.Error(1)
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) HealthCheck(context.Context) error { return f.err }
