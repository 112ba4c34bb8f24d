package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/99minutos/tycoon-api/docs"
	"github.com/99minutos/tycoon-api/internal/api/handler"
	"github.com/99minutos/tycoon-api/internal/api/middleware"
	"github.com/99minutos/tycoon-api/internal/core/ports"
	"github.com/99minutos/tycoon-api/internal/infrastructure/http/handlers"
)

// RouterDeps are the services the router wires into handlers.
type RouterDeps struct {
	Auth      ports.AuthService
	Game      ports.GameService
	Store     handlers.Pinger
	JWTSecret string
	// RateLimitRPS is the per-IP request rate; zero disables the limiter.
	RateLimitRPS float64
	Logger       zerolog.Logger
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	log := deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return ulid.Make().String() },
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"},
		MaxAge:       3600,
	}))
	if deps.RateLimitRPS > 0 {
		e.Use(echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
			Skipper: isOperationalRoute,
			Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(deps.RateLimitRPS),
				Burst:     int(deps.RateLimitRPS*2) + 1,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "tycoon",
		Skipper:    isOperationalRoute,
		Registerer: deps.Registerer,
	}))

	game := handler.NewGameHandler(deps.Auth, deps.Game, log)

	// --- Legacy action endpoint ---
	e.GET("/api", game.Action)
	e.POST("/api", game.Action)

	// --- Public v1 routes ---
	v1 := e.Group("/v1")
	v1.POST("/auth/register", game.Register)
	v1.POST("/auth/login", game.Login)
	v1.GET("/businesses", game.Businesses)

	// --- Authenticated v1 routes ---
	me := v1.Group("/me", middleware.Auth(deps.JWTSecret))
	me.GET("", game.Me)
	me.POST("/work", game.Work)
	me.POST("/businesses", game.BuyBusiness)
	me.POST("/income", game.CollectIncome)

	// --- Operational routes ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(map[string]handlers.Pinger{
		"store": deps.Store,
	}).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func isOperationalRoute(c echo.Context) bool {
	switch c.Path() {
	case "/health", "/health/ready", "/metrics", "/swagger/*":
		return true
	}
	return false
}
