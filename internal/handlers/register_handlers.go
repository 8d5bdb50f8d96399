package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/fintrackhq/fintrack/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting the ledger service
// through its facade interface.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, ledgerService portssvc.LedgerSvcFacade) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", middleware.MetricsHandler())

	// Shared per-IP rate limiter for the form mutation routes
	rate, err := limiter.NewRateFromFormatted(cfg.MutationRateLimit)
	if err != nil {
		slog.Warn("Invalid MUTATION_RATE_LIMIT, falling back to default", slog.String("value", cfg.MutationRateLimit), slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	ipLimiter := limiter.New(limitermem.NewStore(), rate)

	registerDashboardRoutes(r, ledgerService)
	registerAccountRoutes(r, ledgerService, ipLimiter)
	registerTransactionRoutes(r, ledgerService, ipLimiter)
	registerChartRoutes(r, ledgerService)

	// Unknown paths bounce back to the dashboard with a message
	r.NoRoute(func(c *gin.Context) {
		middleware.AddFlash(c, middleware.FlashError, "Page not found")
		c.Redirect(http.StatusSeeOther, "/")
	})
}
