package main

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrackhq/fintrack/internal/adapters/database/memory"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/fintrackhq/fintrack/internal/core/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/handlers"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/fintrackhq/fintrack/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterValidations(); err != nil {
		logger.Error("Failed to register form validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The ledger lives entirely in memory; its lifetime is the process.
	store := memory.NewLedgerRepository()
	ledgerService := services.NewLedgerService(store)

	if cfg.DevSeed {
		seedDemoAccounts(logger, ledgerService)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, metrics, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), middleware.Metrics(), middleware.FlashRecovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.SetFuncMap(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	})
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	handlers.RegisterRoutes(r, cfg, ledgerService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fintrack listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	case err := <-errCh:
		logger.Error("Server error", slog.String("error", err.Error()))
	}
}

// seedDemoAccounts creates the fixed demonstration accounts. All state is
// in-memory, so a fresh process starts from exactly these three.
func seedDemoAccounts(logger *slog.Logger, ledgerService *services.LedgerService) {
	ctx := context.Background()
	seeds := []struct {
		name        string
		accountType domain.AccountType
		balance     decimal.Decimal
	}{
		{"Main Savings", domain.Savings, decimal.NewFromInt(1000)},
		{"Wallet", domain.Wallet, decimal.NewFromInt(200)},
		{"Credit Card", domain.CreditCard, decimal.Zero},
	}
	for _, seed := range seeds {
		account, err := ledgerService.CreateAccount(ctx, seed.name, seed.accountType, seed.balance)
		if err != nil {
			logger.Error("Dev seed failed", slog.String("account", seed.name), slog.String("error", err.Error()))
			continue
		}
		logger.Info("DEV seed account", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
	}
}
