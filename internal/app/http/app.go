package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	appmiddleware "videepat_foods/internal/middleware"
	httprouters "videepat_foods/internal/transport/http"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// HealthChecker то, без чего витрина не работает: postgres и redis.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Options struct {
	Host            string
	Port            string
	SessionSecret   string
	SessionMaxAge   int
	SecureCookie    bool
	AllowOrigins    []string
	ShutdownTimeout time.Duration
	// каталог загрузок, раздаётся как /uploads
	MediaDir        string
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	health  map[string]HealthChecker
	opts    Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, health map[string]HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = NewValidator()

	store := sessions.NewCookieStore([]byte(opts.SessionSecret))
	if opts.SessionMaxAge > 0 {
		store.MaxAge(opts.SessionMaxAge)
	}
	store.Options.HttpOnly = true
	store.Options.Secure = opts.SecureCookie
	store.Options.SameSite = http.SameSiteLaxMode
	e.Use(session.Middleware(store))

	if len(opts.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodPatch, http.MethodDelete},
		}))
	} else {
		e.Use(middleware.CORS())
	}
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		health:  health,
		opts:    opts,
	}
}

// Echo отдаёт собранный роутер, в тестах через него гоняют httptest-запросы.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("port", s.opts.Port))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) healthHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	code := http.StatusOK
	for name, hc := range s.health {
		if err := hc.HealthCheck(ctx); err != nil {
			s.log.Warn("health check failed", slog.String("component", name), slog.String("error", err.Error()))
			status[name] = "down"
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "up"
	}

	return c.JSON(code, status)
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.healthHandler)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api")
	{
		pages := api.Group("/pages")
		{
			pages.GET("/", s.routers.ListPages)
			pages.POST("/", s.routers.CreatePage)
			pages.GET("/:id/", s.routers.GetPage)
			pages.PUT("/:id/", s.routers.UpdatePage)
			pages.DELETE("/:id/", s.routers.DeletePage)
		}

		stories := api.Group("/stories")
		{
			stories.GET("/", s.routers.ListStories)
			stories.POST("/", s.routers.CreateStory)
			stories.GET("/:id/", s.routers.GetStory)
			stories.PUT("/:id/", s.routers.UpdateStory)
			stories.DELETE("/:id/", s.routers.DeleteStory)
		}

		products := api.Group("/products")
		{
			products.GET("/", s.routers.ListProducts)
			products.POST("/", s.routers.CreateProduct)
			products.GET("/:id/", s.routers.GetProduct)
			products.PUT("/:id/", s.routers.UpdateProduct)
			products.DELETE("/:id/", s.routers.DeleteProduct)
		}

		api.GET("/categories/", s.routers.ListCategories)
		api.POST("/categories/", s.routers.CreateCategory)
		api.GET("/coupons/", s.routers.ListCoupons)
		api.POST("/coupons/", s.routers.CreateCoupon)
		api.GET("/hero/", s.routers.GetHero)
		api.PUT("/hero/", s.routers.UpdateHero)
		api.POST("/media/", s.routers.UploadMedia)
	}

	if s.opts.MediaDir != "" {
		s.e.Static("/uploads", s.opts.MediaDir)
	}

	s.e.GET("/", s.routers.Home)
	s.e.GET("/products", s.routers.Products)
	s.e.GET("/products/:id", s.routers.Product)
	s.e.GET("/p/:slug", s.routers.Page)
	s.e.GET("/stories", s.routers.Stories)
	s.e.GET("/stories/:id", s.routers.Story)

	cart := s.e.Group("/cart")
	{
		cart.GET("", s.routers.GetCart)
		cart.DELETE("", s.routers.ClearCart)
		cart.GET("/quote", s.routers.CartQuote)
		cart.POST("/items", s.routers.AddCartItem)
		cart.PATCH("/items/:product_id", s.routers.UpdateCartItem)
		cart.DELETE("/items/:product_id", s.routers.RemoveCartItem)
	}
	s.e.POST("/checkout", s.routers.Checkout)
}
