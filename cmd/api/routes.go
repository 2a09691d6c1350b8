package main

import (
	"github.com/labstack/echo/v4"

	"github.com/gatehouse-io/gatehouse/internal/infrastructure/httpserver"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// SetupRoutes configures all API routes and middleware chains.
func SetupRoutes(c *Container) *httpserver.Router {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	routerConfig := httpserver.RouterConfig{
		Logger: c.Logger,
		AuthMiddleware: middleware.Auth(middleware.AuthConfig{
			Logger:         c.Logger,
			TokenValidator: c.TokenValidator,
			UserResolver:   c.UserResolver,
			SkipPaths: []string{
				"/health",
				"/ready",
				"/health/details",
				"/api/v1/auth/login",
				"/api/v1/auth/refresh",
			},
		}),
		TenantMiddleware: middleware.TenantAccess(middleware.TenantConfig{
			Logger:           c.Logger,
			AccessChecker:    c.AccessChecker,
			TenantIDParam:    "tenant_id",
			AllowSystemAdmin: true,
		}),
		RateLimitMiddleware: rateLimitMiddleware(c),
		CORSConfig:          middleware.DefaultCORSConfig(),
		LoggingConfig:       middleware.DefaultLoggingConfig(),
		RecoveryConfig:      middleware.DefaultRecoveryConfig(),
		APIPrefix:           "/api/v1",
	}

	router := httpserver.NewRouter(e, routerConfig)

	// Container implements httpserver.HealthChecker, so it backs the
	// health endpoints directly.
	router.RegisterHealthEndpointsWithChecker(c)
	router.RegisterMetricsEndpoint()

	router.RegisterAll(
		c.AuthHandler,
		c.UserHandler,
		c.PermissionHandler,
		c.AuditLogHandler,
	)

	// Log all registered routes in debug mode
	if c.Config.IsDevelopment() {
		router.PrintRoutes()
	}

	return router
}

// rateLimitMiddleware builds the rate limiting middleware, or returns
// nil when rate limiting is disabled.
func rateLimitMiddleware(c *Container) echo.MiddlewareFunc {
	if !c.Config.RateLimit.Enabled {
		return nil
	}

	return middleware.RateLimit(middleware.RateLimitConfig{
		Logger:    c.Logger,
		Store:     c.RateLimitStore,
		Limit:     c.Config.RateLimit.Limit,
		Window:    c.Config.RateLimit.Window,
		SkipPaths: []string{"/health", "/ready", "/health/details", "/metrics"},
	})
}
