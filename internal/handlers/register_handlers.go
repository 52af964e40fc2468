package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/middleware"
	"github.com/payzen/payzen_backend/internal/platform/config"
	"github.com/payzen/payzen_backend/internal/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, services, analytics)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Token))

	registerSessionRoutes(v1, services.Auth)
	registerAccountRoutes(v1, services.Account)
	registerClientRoutes(v1, services.Client, services.Invoice)
	registerInvoiceRoutes(v1, services.Invoice, analytics)
}

// authRateLimit returns the limiter for unauthenticated auth endpoints, or a no-op when
// the configured rate cannot be parsed.
func authRateLimit(cfg *config.Config) gin.HandlerFunc {
	limiter, err := middleware.NewIPRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		slog.Warn("Auth rate limiting disabled", slog.String("error", err.Error()))
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(limiter)
}
