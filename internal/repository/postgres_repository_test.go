package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/storage"
	"videepat_foods/internal/storage/postgresql"
)

var testCtx = context.Background()

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("integration test: needs docker")
	}

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pgContainer, err := testcontainers.GenericContainer(testCtx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := pgContainer.Host(testCtx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(testCtx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	pool, err := pgxpool.Connect(testCtx, connStr)
	require.NoError(t, err)

	// Применяем миграции
	require.NoError(t, postgresql.Migrate(testCtx, pool))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(testCtx)
	})

	return pool
}

func samplePage(name string) models.Page {
	return models.Page{
		Name:     name,
		Slug:     gofakeit.UUID(),
		Layout:   models.PageLayoutDefault,
		Status:   models.PageStatusPublished,
		IsActive: true,
		Sections: []models.Section{{
			ID:     "sec_1",
			Layout: models.SectionLayoutBoxed,
			Styles: models.SectionStyles{Padding: "40px 0"},
			Blocks: []models.Block{{
				ID:         "blk_1",
				Type:       models.BlockText,
				Content:    &models.TextPayload{Heading: "Hi", Body: "Body", Alignment: models.AlignCenter},
				Animation:  models.Animation{Type: models.AnimationFade},
				Visibility: models.DefaultVisibility(),
			}},
		}},
	}
}

func TestPageRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPageRepository(db)

	created, err := repo.CreatePage(testCtx, samplePage("Summer Sale"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Version)
	require.Len(t, created.Sections, 1)
	text, ok := created.Sections[0].Blocks[0].Content.(*models.TextPayload)
	require.True(t, ok)
	assert.Equal(t, "Hi", text.Heading)

	t.Run("duplicate slug", func(t *testing.T) {
		dup := samplePage("Other")
		dup.Slug = created.Slug
		_, err := repo.CreatePage(testCtx, dup)
		assert.ErrorIs(t, err, storage.ErrSlugExists)
	})

	t.Run("get by slug", func(t *testing.T) {
		got, err := repo.GetPageBySlug(testCtx, created.Slug)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("update bumps version", func(t *testing.T) {
		created.Name = "Summer Sale 2"
		updated, err := repo.UpdatePage(testCtx, created, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)
		assert.Equal(t, "Summer Sale 2", updated.Name)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		_, err := repo.UpdatePage(testCtx, created, 1)
		assert.ErrorIs(t, err, storage.ErrVersionConflict)
	})

	t.Run("zero version overwrites", func(t *testing.T) {
		updated, err := repo.UpdatePage(testCtx, created, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Version)
	})

	t.Run("slug taken", func(t *testing.T) {
		taken, err := repo.SlugTaken(testCtx, created.Slug, "")
		require.NoError(t, err)
		assert.True(t, taken)
		taken, err = repo.SlugTaken(testCtx, created.Slug, created.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeletePage(testCtx, created.ID))
		_, err := repo.GetPageByID(testCtx, created.ID)
		assert.ErrorIs(t, err, storage.ErrPageNotFound)
		assert.ErrorIs(t, repo.DeletePage(testCtx, created.ID), storage.ErrPageNotFound)
		_, err = repo.UpdatePage(testCtx, created, 0)
		assert.ErrorIs(t, err, storage.ErrPageNotFound)
	})
}

func TestStoryRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewStoryRepository(db)

	body := "It began in a small village."
	created, err := repo.CreateStory(testCtx, models.Story{
		Title:          "Harvest",
		ThumbnailImage: "t.jpg",
		HeroImage:      "h.jpg",
		ShortExcerpt:   "How it began",
		IsActive:       true,
		Content:        []models.StoryContent{{ID: "sblk_1", Type: models.StoryText, Content: &body}},
	})
	require.NoError(t, err)
	require.Len(t, created.Content, 1)
	assert.Equal(t, body, models.Text(created.Content[0].Content))

	_, err = repo.CreateStory(testCtx, models.Story{Title: "Draft", ThumbnailImage: "t", HeroImage: "h", ShortExcerpt: "x"})
	require.NoError(t, err)

	active, err := repo.ListStories(testCtx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repo.ListStories(testCtx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.UpdateStory(testCtx, models.Story{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, storage.ErrStoryNotFound)
}

func TestCatalogRepos(t *testing.T) {
	db := setupTestDB(t)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	coupons := repository.NewCouponRepository(db)
	hero := repository.NewHeroRepository(db)

	dairy, err := categories.CreateCategory(testCtx, models.Category{Name: "Dairy", Slug: "dairy", IsActive: true})
	require.NoError(t, err)

	discount := 399.0
	ghee, err := products.CreateProduct(testCtx, models.Product{
		Name:          "A2 Ghee",
		Price:         450,
		DiscountPrice: &discount,
		Stock:         10,
		Images:        []string{"ghee.jpg"},
		CategoryIDs:   []string{dairy.ID},
		Attributes:    models.Attributes{"weight": "500g"},
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghee.jpg"}, ghee.Images)
	require.NotNil(t, ghee.DiscountPrice)
	assert.Equal(t, 399.0, *ghee.DiscountPrice)
	assert.Equal(t, "500g", ghee.Attributes["weight"])

	_, err = products.CreateProduct(testCtx, models.Product{Name: "Pickle", Price: 120, IsActive: true})
	require.NoError(t, err)

	inDairy, err := products.ListProducts(testCtx, repository.ProductFilter{ActiveOnly: true, CategoryID: dairy.ID})
	require.NoError(t, err)
	require.Len(t, inDairy, 1)
	assert.Equal(t, ghee.ID, inDairy[0].ID)

	limit := 1
	coupon, err := coupons.CreateCoupon(testCtx, models.Coupon{
		Code:          " summer10 ",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		UsageLimit:    &limit,
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", coupon.Code)
	assert.Equal(t, models.ScopeAll, coupon.AppliedTo.Type)

	got, err := coupons.GetCouponByCode(testCtx, "Summer10")
	require.NoError(t, err)
	assert.Equal(t, coupon.ID, got.ID)

	require.NoError(t, coupons.IncrementUsage(testCtx, coupon.ID))
	assert.ErrorIs(t, coupons.IncrementUsage(testCtx, coupon.ID), models.ErrCouponExhausted)

	_, err = hero.GetHero(testCtx)
	assert.ErrorIs(t, err, storage.ErrHeroNotFound)

	saved, err := hero.SaveHero(testCtx, models.DefaultHero())
	require.NoError(t, err)
	saved.Title = "Monsoon Picks"
	updated, err := hero.SaveHero(testCtx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "Monsoon Picks", updated.Title)
}
