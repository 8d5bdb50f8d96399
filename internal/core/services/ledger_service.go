package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// unknownAccountName is the display fallback for transactions whose account
// reference cannot be resolved.
const unknownAccountName = "Unknown Account"

// LedgerService is the sole authority over accounts, transactions and the
// balance invariant: an account's balance always equals its initial balance
// plus recorded income minus recorded expenses.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepository
}

func NewLedgerService(repo portsrepo.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: repo}
}

// CreateAccount mints a new account with a fresh UUID and creation timestamp.
// The form layer validates first; the service re-checks the domain invariants
// so no caller can slip an unnamed or mistyped account into the ledger.
func (s *LedgerService) CreateAccount(ctx context.Context, name string, accountType domain.AccountType, initialBalance decimal.Decimal) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("account name is required: %w", apperrors.ErrValidation)
	}
	if !accountType.Valid() {
		return nil, fmt.Errorf("unknown account type %q: %w", accountType, apperrors.ErrValidation)
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        name,
		AccountType: accountType,
		Balance:     initialBalance,
		CreatedAt:   time.Now(),
	}

	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created successfully in service", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *LedgerService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		// ErrNotFound is an expected outcome, don't log it as a failure
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves all accounts in insertion order.
func (s *LedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// CreateTransaction records an income or expense event against one account and
// applies its balance effect. The account must exist: an unknown account fails
// with apperrors.ErrNotFound and nothing is recorded. Insert and balance update
// are a single critical section inside the repository.
func (s *LedgerService) CreateTransaction(ctx context.Context, accountID string, amount decimal.Decimal, txnType domain.TransactionType, category domain.Category, description string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	if !txnType.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q: %w", txnType, apperrors.ErrValidation)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, apperrors.ErrValidation)
	}

	if _, err := s.ledgerRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Rejected transaction referencing unknown account", slog.String("account_id", accountID))
			return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		logger.Error("Failed to resolve account for transaction", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		Amount:          amount,
		TransactionType: txnType,
		Category:        category,
		Description:     description,
		Date:            time.Now(),
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to save transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		}
		return nil, err
	}

	logger.Info("Transaction recorded successfully in service",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", accountID),
		slog.String("type", string(txnType)),
		slog.String("amount", amount.String()),
	)
	return &txn, nil
}

// ListTransactions returns transactions matching filter, most recent first.
func (s *LedgerService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txns, err := s.ledgerRepo.ListTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// TotalBalance returns the sum of all account balances at call time.
func (s *LedgerService) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	total, err := s.ledgerRepo.TotalBalance(ctx)
	if err != nil {
		logger.Error("Failed to compute total balance", slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to compute total balance: %w", err)
	}
	return total, nil
}

// CategoryTotals returns summed expense amounts grouped by category.
// Categories with no recorded expenses are absent from the result.
func (s *LedgerService) CategoryTotals(ctx context.Context) (map[domain.Category]decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	totals, err := s.ledgerRepo.CategoryTotals(ctx)
	if err != nil {
		logger.Error("Failed to compute category totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute category totals: %w", err)
	}
	return totals, nil
}

// AccountName returns the account's display name, or "Unknown Account" when the
// ID cannot be resolved.
func (s *LedgerService) AccountName(ctx context.Context, accountID string) string {
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to resolve account name", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return unknownAccountName
	}
	return account.Name
}
