package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "videepat_foods/internal/app/http"
	"videepat_foods/internal/config"
	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/render"
	"videepat_foods/internal/repository"
	cartsvc "videepat_foods/internal/services/cart_service"
	catalogsvc "videepat_foods/internal/services/catalog_service"
	pagesvc "videepat_foods/internal/services/page_service"
	storefrontsvc "videepat_foods/internal/services/storefront_service"
	storysvc "videepat_foods/internal/services/story_service"
	"videepat_foods/internal/storage/filestorage"
	"videepat_foods/internal/storage/postgresql"
	redisapp "videepat_foods/internal/storage/redis"
	httprouters "videepat_foods/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

// storefrontHook нужен из-за порядка сборки: сервисы страниц и историй
// создаются раньше витрины, которая читает через них.
type storefrontHook struct {
	s *storefrontsvc.StorefrontService
}

func (h *storefrontHook) InvalidatePage(ctx context.Context, slug string) {
	if h.s != nil {
		h.s.InvalidatePage(ctx, slug)
	}
}

func (h *storefrontHook) InvalidateStory(ctx context.Context, id string) {
	if h.s != nil {
		h.s.InvalidateStory(ctx, id)
	}
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb, err := redisapp.Connect(ctx, redisapp.Options{
		Addr:        cfg.Redis.RedisAddr,
		Password:    cfg.Redis.RedisPassword,
		DB:          cfg.Redis.RedisDB,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool(), rdb, cfg.Cache.CartTTL)
	reg := registry.Default()

	hook := &storefrontHook{}
	pageService := pagesvc.NewPageService(log, repo.Page, reg, hook)
	storyService := storysvc.NewStoryService(log, repo.Story, hook)
	catalogService := catalogsvc.NewCatalogService(log, repo.Product, repo.Category, repo.Coupon, repo.Hero, cfg.Cache.CatalogTTL)

	storefrontService := storefrontsvc.NewStorefrontService(
		log,
		pageService,
		storyService,
		catalogService,
		render.New(reg),
		repo.Render,
		cfg.Cache.RenderTTL,
	)
	hook.s = storefrontService
	catalogService.SetCatalogInvalidator(storefrontService)

	cartService := cartsvc.NewCartService(log, repo.Cart, catalogService, repo.Coupon)

	media, err := filestorage.New(cfg.Media.BaseDir, cfg.Media.BaseURL, cfg.Media.MaxSize)
	if err != nil {
		_ = rdb.Close()
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	routers := httprouters.NewRouter(
		log,
		render.MustViews(),
		pageService,
		storyService,
		catalogService,
		storefrontService,
		cartService,
		media,
	)

	server := httpapp.New(log, httpapp.Options{
		Host:            cfg.HTTP.Host,
		Port:            cfg.HTTP.Port,
		SessionSecret:   cfg.Session.Secret,
		SessionMaxAge:   cfg.Session.MaxAge,
		SecureCookie:    cfg.Session.Secure,
		AllowOrigins:    cfg.HTTP.AllowOrigins,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		MediaDir:        media.Dir(),
	}, routers, map[string]httpapp.HealthChecker{
		"postgres": storage,
		"redis":    rdb,
	})

	return &App{
		log:        log,
		HTTPServer: server,
		storage:    storage,
		redis:      rdb,
	}, nil
}

// Stop гасит HTTP-сервер, затем закрывает хранилища.
func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}
	if err := a.redis.Close(); err != nil {
		a.log.Error("failed to close redis", sl.Err(err))
	}
	a.storage.Stop()
}
