package services

import (
	"context"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade exposes the ledger operations consumed by the handler layer.
// Handlers validate form input first; the service re-checks the domain
// invariants and referential integrity before anything is recorded.
type LedgerSvcFacade interface {
	// CreateAccount mints a new account with a fresh ID and creation timestamp.
	CreateAccount(ctx context.Context, name string, accountType domain.AccountType, initialBalance decimal.Decimal) (*domain.Account, error)

	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts in insertion order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CreateTransaction records an income or expense event and updates the
	// referenced account's balance. It fails with apperrors.ErrNotFound when
	// the account does not exist; no transaction is recorded in that case.
	CreateTransaction(ctx context.Context, accountID string, amount decimal.Decimal, txnType domain.TransactionType, category domain.Category, description string) (*domain.Transaction, error)

	// ListTransactions returns transactions matching filter, most recent first.
	ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error)

	// TotalBalance returns the sum of all account balances.
	TotalBalance(ctx context.Context) (decimal.Decimal, error)

	// CategoryTotals returns summed expense amounts grouped by category.
	CategoryTotals(ctx context.Context) (map[domain.Category]decimal.Decimal, error)

	// AccountName returns the account's display name, or a fixed fallback for
	// unknown IDs. Display denormalization only, never used for logic.
	AccountName(ctx context.Context, accountID string) string
}
