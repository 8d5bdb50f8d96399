package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
)

// filterDateLayout is the YYYY-MM-DD form used by the history filter inputs.
const filterDateLayout = "2006-01-02"

// transactionHandler handles the history view and the add-transaction flow.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerTransactionRoutes(r *gin.Engine, ledgerService portssvc.LedgerSvcFacade, ipLimiter *limiter.Limiter) {
	h := &transactionHandler{ledgerService: ledgerService}

	r.GET("/transactions", h.showTransactions)
	r.GET("/add_transaction", h.showAddTransaction)
	r.POST("/add_transaction", middleware.RateLimit(ipLimiter, "/add_transaction"), h.createTransaction)
}

// transactionView is a transaction with its resolved account name for display.
type transactionView struct {
	domain.Transaction
	AccountName string
}

func buildTransactionViews(c *gin.Context, svc portssvc.LedgerSvcFacade, txns []domain.Transaction) []transactionView {
	views := make([]transactionView, len(txns))
	for i, txn := range txns {
		views[i] = transactionView{
			Transaction: txn,
			AccountName: svc.AccountName(c.Request.Context(), txn.AccountID),
		}
	}
	return views
}

// showTransactions renders the filtered history. An unparsable date flashes a
// message and the filter is ignored, matching the rest of the conjunctive
// filter semantics.
func (h *transactionHandler) showTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind transaction filters", slog.String("error", err.Error()))
	}

	filter := portsrepo.TransactionFilter{
		AccountID: params.AccountID,
		Category:  domain.Category(params.Category),
	}
	if params.StartDate != "" {
		start, err := time.Parse(filterDateLayout, params.StartDate)
		if err != nil {
			middleware.AddFlash(c, middleware.FlashError, "Invalid start date format")
		} else {
			filter.StartDate = &start
		}
	}
	if params.EndDate != "" {
		end, err := time.Parse(filterDateLayout, params.EndDate)
		if err != nil {
			middleware.AddFlash(c, middleware.FlashError, "Invalid end date format")
		} else {
			// include the whole end day
			endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
			filter.EndDate = &endOfDay
		}
	}

	txns, err := h.ledgerService.ListTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
	}
	accounts, err := h.ledgerService.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to load accounts for transaction filters", slog.String("error", err.Error()))
	}

	c.HTML(http.StatusOK, "transactions.html", gin.H{
		"Flashes":          middleware.TakeFlashes(c),
		"Transactions":     buildTransactionViews(c, h.ledgerService, txns),
		"Accounts":         accounts,
		"Categories":       domain.Categories(),
		"SelectedAccount":  params.AccountID,
		"SelectedCategory": params.Category,
		"StartDate":        params.StartDate,
		"EndDate":          params.EndDate,
	})
}

// showAddTransaction renders the add-transaction form.
func (h *transactionHandler) showAddTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	accounts, err := h.ledgerService.ListAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load accounts for transaction form", slog.String("error", err.Error()))
	}

	c.HTML(http.StatusOK, "add_transaction.html", gin.H{
		"Flashes":    middleware.TakeFlashes(c),
		"Accounts":   accounts,
		"Categories": domain.Categories(),
	})
}

// createTransaction handles the add-transaction form post. All enumerated
// fields are validated here before the ledger service is invoked; the service
// additionally rejects unknown account references.
func (h *transactionHandler) createTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.CreateTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Rejected add-transaction form", slog.String("error", err.Error()))
		middleware.AddFlash(c, middleware.FlashError, flashMessageFor(err))
		c.Redirect(http.StatusSeeOther, "/add_transaction")
		return
	}

	if _, err := h.ledgerService.GetAccountByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.AddFlash(c, middleware.FlashError, "Selected account does not exist")
		} else {
			logger.Error("Failed to resolve account for transaction form", slog.String("error", err.Error()))
			middleware.AddFlash(c, middleware.FlashError, "Error adding transaction")
		}
		c.Redirect(http.StatusSeeOther, "/add_transaction")
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		middleware.AddFlash(c, middleware.FlashError, "Invalid amount")
		c.Redirect(http.StatusSeeOther, "/add_transaction")
		return
	}
	if !amount.IsPositive() {
		middleware.AddFlash(c, middleware.FlashError, "Amount must be greater than 0")
		c.Redirect(http.StatusSeeOther, "/add_transaction")
		return
	}

	txn, err := h.ledgerService.CreateTransaction(ctx, req.AccountID, amount,
		domain.TransactionType(req.TransactionType), domain.Category(req.Category),
		strings.TrimSpace(req.Description))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.AddFlash(c, middleware.FlashError, "Selected account does not exist")
		} else {
			logger.Error("Failed to create transaction", slog.String("error", err.Error()))
			middleware.AddFlash(c, middleware.FlashError, "Error adding transaction")
		}
		c.Redirect(http.StatusSeeOther, "/add_transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	middleware.AddFlash(c, middleware.FlashSuccess, "Transaction added successfully")
	c.Redirect(http.StatusSeeOther, "/")
}
