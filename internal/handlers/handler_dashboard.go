package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// recentTransactionLimit caps the dashboard history excerpt.
const recentTransactionLimit = 10

// dashboardHandler renders the overview page.
type dashboardHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerDashboardRoutes(r *gin.Engine, ledgerService portssvc.LedgerSvcFacade) {
	h := &dashboardHandler{ledgerService: ledgerService}
	r.GET("/", h.showDashboard)
}

// showDashboard renders accounts, the most recent transactions, the total
// balance and the per-category spending summary.
func (h *dashboardHandler) showDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := h.ledgerService.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to load accounts for dashboard", slog.String("error", err.Error()))
	}

	recent, err := h.ledgerService.ListTransactions(ctx, portsrepo.TransactionFilter{})
	if err != nil {
		logger.Error("Failed to load transactions for dashboard", slog.String("error", err.Error()))
	}
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	totalBalance, err := h.ledgerService.TotalBalance(ctx)
	if err != nil {
		logger.Error("Failed to compute total balance for dashboard", slog.String("error", err.Error()))
		totalBalance = decimal.Zero
	}

	categoryTotals, err := h.ledgerService.CategoryTotals(ctx)
	if err != nil {
		logger.Error("Failed to compute category totals for dashboard", slog.String("error", err.Error()))
		categoryTotals = map[domain.Category]decimal.Decimal{}
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Flashes":            middleware.TakeFlashes(c),
		"Accounts":           accounts,
		"RecentTransactions": buildTransactionViews(c, h.ledgerService, recent),
		"TotalBalance":       totalBalance,
		"CategoryTotals":     categoryTotals,
	})
}
