package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/logger/handlers/slogdiscard"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/storage"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, id string) (models.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Category), args.Error(1)
}

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) CreateCoupon(ctx context.Context, c models.Coupon) (models.Coupon, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetCouponByCode(ctx context.Context, code string) (models.Coupon, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockHeroRepository struct {
	mock.Mock
}

func (m *MockHeroRepository) GetHero(ctx context.Context) (models.Hero, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Hero), args.Error(1)
}

func (m *MockHeroRepository) SaveHero(ctx context.Context, h models.Hero) (models.Hero, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(models.Hero), args.Error(1)
}

type MockCatalogInvalidator struct {
	mock.Mock
}

func (m *MockCatalogInvalidator) InvalidateCatalog(ctx context.Context) {
	m.Called(ctx)
}

type mocks struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	coupons    *MockCouponRepository
	hero       *MockHeroRepository
}

func newService() (*CatalogService, mocks) {
	m := mocks{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		coupons:    new(MockCouponRepository),
		hero:       new(MockHeroRepository),
	}
	s := NewCatalogService(slogdiscard.NewDiscardLogger(), m.products, m.categories, m.coupons, m.hero, time.Minute)
	return s, m
}

func floatPtr(v float64) *float64 { return &v }

func TestCatalogService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		product models.Product
		wantErr error
	}{
		{"valid", models.Product{Name: "Ghee", Price: 450, DiscountPrice: floatPtr(399)}, nil},
		{"no name", models.Product{Name: " ", Price: 10}, ErrProductName},
		{"zero price", models.Product{Name: "Ghee"}, ErrProductPrice},
		{"discount above price", models.Product{Name: "Ghee", Price: 100, DiscountPrice: floatPtr(120)}, ErrProductPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newService()
			home := new(MockCatalogInvalidator)
			s.SetCatalogInvalidator(home)

			if tt.wantErr == nil {
				m.products.On("CreateProduct", ctx, mock.Anything).Return(models.Product{ID: "p1", Name: "Ghee"}, nil).Once()
				home.On("InvalidateCatalog", ctx).Once()
			}

			_, err := s.CreateProduct(ctx, tt.product)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				m.products.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			m.products.AssertExpectations(t)
			home.AssertExpectations(t)
		})
	}
}

func TestCatalogService_CreateCoupon(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		coupon  models.Coupon
		wantErr error
	}{
		{"percentage", models.Coupon{Code: "save10", DiscountType: models.DiscountPercentage, DiscountValue: 10}, nil},
		{"flat scoped", models.Coupon{Code: "ghee50", DiscountType: models.DiscountFlat, DiscountValue: 50,
			AppliedTo: models.AppliedTo{Type: models.ScopeProducts, IDs: []string{"p1"}}}, nil},
		{"empty code", models.Coupon{DiscountType: models.DiscountFlat, DiscountValue: 5}, ErrCouponCode},
		{"percentage above 100", models.Coupon{Code: "x", DiscountType: models.DiscountPercentage, DiscountValue: 150}, ErrCouponValue},
		{"unknown type", models.Coupon{Code: "x", DiscountType: "bogo", DiscountValue: 1}, ErrCouponType},
		{"scope without ids", models.Coupon{Code: "x", DiscountType: models.DiscountFlat, DiscountValue: 1,
			AppliedTo: models.AppliedTo{Type: models.ScopeCategories}}, ErrCouponScopeIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newService()
			m.coupons.On("CreateCoupon", ctx, mock.MatchedBy(func(c models.Coupon) bool {
				return c.Code == models.NormalizeCode(tt.coupon.Code) && c.AppliedTo.Type != ""
			})).Return(models.Coupon{ID: "c1"}, nil).Maybe()

			_, err := s.CreateCoupon(ctx, tt.coupon)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			m.coupons.AssertNumberOfCalls(t, "CreateCoupon", 1)
		})
	}
}

func TestCatalogService_GetHero(t *testing.T) {
	ctx := context.Background()

	t.Run("creates default once and caches", func(t *testing.T) {
		s, m := newService()
		m.hero.On("GetHero", ctx).Return(models.Hero{}, storage.ErrHeroNotFound).Once()
		m.hero.On("SaveHero", ctx, models.DefaultHero()).Return(models.Hero{ID: "h1", Title: models.DefaultHero().Title}, nil).Once()

		h, err := s.GetHero(ctx)
		require.NoError(t, err)
		assert.Equal(t, "h1", h.ID)

		again, err := s.GetHero(ctx)
		require.NoError(t, err)
		assert.Equal(t, h, again)
		m.hero.AssertNumberOfCalls(t, "GetHero", 1)
	})

	t.Run("update keeps id", func(t *testing.T) {
		s, m := newService()
		m.hero.On("GetHero", ctx).Return(models.Hero{ID: "h1"}, nil).Once()
		m.hero.On("SaveHero", ctx, mock.MatchedBy(func(h models.Hero) bool {
			return h.ID == "h1" && h.Title == "Monsoon Picks"
		})).Return(models.Hero{ID: "h1", Title: "Monsoon Picks"}, nil).Once()

		saved, err := s.UpdateHero(ctx, models.Hero{ID: "ignored", Title: "Monsoon Picks"})
		require.NoError(t, err)
		assert.Equal(t, "h1", saved.ID)

		cached, err := s.GetHero(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Monsoon Picks", cached.Title)
		m.hero.AssertExpectations(t)
	})
}

func TestCatalogService_GetActiveProduct(t *testing.T) {
	ctx := context.Background()
	s, m := newService()
	m.products.On("GetProductByID", ctx, "off").Return(models.Product{ID: "off"}, nil).Once()

	_, err := s.GetActiveProduct(ctx, "off")
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
}
