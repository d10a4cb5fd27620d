// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"authgate/config"
	"authgate/internal/delivery/http/router/handler"
	internalmw "authgate/internal/delivery/http/middleware"
	"authgate/internal/domain/entity"
	"authgate/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	defaultLoginRatePerSecond = 2
	defaultLoginBurst         = 5
)

// RouterParams holds everything the router mounts, injected by Fx.
type RouterParams struct {
	fx.In

	Config              *config.Config
	UserHandler         *handler.UserHandler
	AuthHandler         *handler.AuthHandler
	HealthHandler       *handler.HealthHandler
	AuthMiddleware      *internalmw.AuthMiddleware
	MasterKeyMiddleware *internalmw.MasterKeyMiddleware
	Metrics             *metrics.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.params.HealthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(r.params.Metrics.Handler()))

	v1 := e.Group("/v1")

	// Credential endpoints are rate limited per client IP.
	authGroup := v1.Group("/auth")
	authGroup.Use(r.loginRateLimiter())
	{
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/refresh", r.params.AuthHandler.Refresh)
	}

	userGroup := v1.Group("/users")
	{
		// Provisioning requires the master key, not a user token.
		userGroup.POST("", r.params.UserHandler.CreateUser, r.params.MasterKeyMiddleware.Verify)

		userGroup.GET("/me", r.params.UserHandler.GetMe, r.params.AuthMiddleware.Authenticate)
		userGroup.GET("/:uuid", r.params.UserHandler.GetUser,
			r.params.AuthMiddleware.Authenticate,
			r.params.AuthMiddleware.RequireRole(entity.RoleAdmin),
		)
	}
}

func (r *router) loginRateLimiter() echo.MiddlewareFunc {
	ratePerSecond := rate.Limit(defaultLoginRatePerSecond)
	burst := defaultLoginBurst
	if cfg := r.params.Config.RateLimit; cfg != nil {
		if cfg.RequestsPerSecond > 0 {
			ratePerSecond = rate.Limit(cfg.RequestsPerSecond)
		}
		if cfg.Burst > 0 {
			burst = cfg.Burst
		}
	}

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:  ratePerSecond,
			Burst: burst,
		}),
	})
}
