package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/catalogshop/catalog-api/docs"
	"github.com/catalogshop/catalog-api/internal/api/handler"
	"github.com/catalogshop/catalog-api/internal/api/middleware"
	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

const (
	defaultLoginRate  = 1.0
	defaultLoginBurst = 5
)

// RouterConfig carries everything the routes depend on.
type RouterConfig struct {
	Session  ports.AuthSession
	Services Services
	// Checks back the readiness endpoint.
	Checks []handler.DependencyCheck
	// LoginRate is the sustained number of /login requests per second allowed
	// per client IP; LoginBurst the bucket size.
	LoginRate  float64
	LoginBurst int
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// HTTP metrics live in their own registry so that more than one router can
	// exist in a process; /metrics serves both.
	httpMetrics := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "catalog",
		Registerer: httpMetrics,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	loginRate, loginBurst := cfg.LoginRate, cfg.LoginBurst
	if loginRate <= 0 {
		loginRate = defaultLoginRate
	}
	if loginBurst <= 0 {
		loginBurst = defaultLoginBurst
	}
	authHandler := handler.NewAuthHandler(cfg.Session)
	e.POST("/login", authHandler.Login, echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(loginRate),
			Burst:     loginBurst,
			ExpiresIn: 3 * time.Minute,
		}),
	}))

	// --- Catalogs ---
	auth := middleware.ValidateJWT(cfg.Session)
	writers := middleware.RequireAnyRole(cfg.Session, domain.RoleAdmin, domain.RoleEmployee)
	admins := middleware.RequireAnyRole(cfg.Session, domain.RoleAdmin)

	s := cfg.Services
	mountCatalog(e.Group("/books"), handler.NewBookHandler(s.Books), auth, writers, admins)
	mountCatalog(e.Group("/films"), handler.NewFilmHandler(s.Films), auth, writers, admins)
	mountCatalog(e.Group("/fan-articles"), handler.NewFanArticleHandler(s.FanArticles), auth, writers, admins)
	mountCatalog(e.Group("/customers"), handler.NewCustomerHandler(s.Customers), auth, writers, admins)
	mountCatalog(e.Group("/publishers"), handler.NewPublisherHandler(s.Publishers), auth, writers, admins)

	return e
}

// catalogRoutes is the method set every catalog handler exposes.
type catalogRoutes interface {
	GetByID(c echo.Context) error
	GetByQuery(c echo.Context) error
	Post(c echo.Context) error
	Put(c echo.Context) error
	Delete(c echo.Context) error
}

// mountCatalog registers public reads and role gated writes.
func mountCatalog(g *echo.Group, h catalogRoutes, auth, writers, admins echo.MiddlewareFunc) {
	g.GET("", h.GetByQuery)
	g.GET("/:id", h.GetByID)
	g.POST("", h.Post, auth, writers)
	g.PUT("/:id", h.Put, auth, writers)
	g.DELETE("/:id", h.Delete, auth, admins)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
