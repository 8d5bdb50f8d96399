package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
)

// accountHandler handles the account management page and its mutation.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerAccountRoutes(r *gin.Engine, ledgerService portssvc.LedgerSvcFacade, ipLimiter *limiter.Limiter) {
	h := &accountHandler{ledgerService: ledgerService}

	r.GET("/accounts", h.showAccounts)
	r.POST("/add_account", middleware.RateLimit(ipLimiter, "/accounts"), h.createAccount)
}

// showAccounts renders the account list with the add-account form.
func (h *accountHandler) showAccounts(c *gin.Context) {
	ctx := c.Request.Context()
	accounts, err := h.ledgerService.ListAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load accounts", slog.String("error", err.Error()))
	}

	c.HTML(http.StatusOK, "accounts.html", gin.H{
		"Flashes":      middleware.TakeFlashes(c),
		"Accounts":     accounts,
		"AccountTypes": domain.AccountTypes(),
	})
}

// createAccount handles the add-account form post. Validation failures flash a
// message and redirect back to the accounts page; the ledger service is never
// called with an unvalidated account type.
func (h *accountHandler) createAccount(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.CreateAccountRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Rejected add-account form", slog.String("error", err.Error()))
		middleware.AddFlash(c, middleware.FlashError, flashMessageFor(err))
		c.Redirect(http.StatusSeeOther, "/accounts")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.AddFlash(c, middleware.FlashError, "Account name is required")
		c.Redirect(http.StatusSeeOther, "/accounts")
		return
	}

	initialBalance := decimal.Zero
	if raw := strings.TrimSpace(req.InitialBalance); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			middleware.AddFlash(c, middleware.FlashError, "Invalid initial balance")
			c.Redirect(http.StatusSeeOther, "/accounts")
			return
		}
		initialBalance = parsed
	}

	account, err := h.ledgerService.CreateAccount(ctx, name, domain.AccountType(req.AccountType), initialBalance)
	if err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		middleware.AddFlash(c, middleware.FlashError, "Error adding account")
		c.Redirect(http.StatusSeeOther, "/accounts")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	middleware.AddFlash(c, middleware.FlashSuccess, fmt.Sprintf("Account %q added successfully", name))
	c.Redirect(http.StatusSeeOther, "/accounts")
}
