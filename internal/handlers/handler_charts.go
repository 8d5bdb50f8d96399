package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// chartHandler serves the JSON endpoints feeding the dashboard charts.
type chartHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerChartRoutes(r *gin.Engine, ledgerService portssvc.LedgerSvcFacade) {
	h := &chartHandler{ledgerService: ledgerService}

	api := r.Group("/api", cors.Default())
	{
		api.GET("/category_data", h.categoryData)
		api.GET("/account_data", h.accountData)
	}
}

// categoryData returns expense totals per category.
func (h *chartHandler) categoryData(c *gin.Context) {
	ctx := c.Request.Context()
	totals, err := h.ledgerService.CategoryTotals(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load category data", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category data"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryTotalsResponse(totals))
}

// accountData returns a name-to-balance mapping for all accounts.
func (h *chartHandler) accountData(c *gin.Context) {
	ctx := c.Request.Context()
	accounts, err := h.ledgerService.ListAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load account data", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account data"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountBalancesResponse(accounts))
}
