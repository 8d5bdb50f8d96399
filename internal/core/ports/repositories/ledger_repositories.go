package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter holds the optional predicates applied when listing
// transactions. Every provided predicate is ANDed; zero values are no-ops.
type TransactionFilter struct {
	AccountID string
	Category  domain.Category
	StartDate *time.Time
	EndDate   *time.Time
}

// LedgerReader defines read operations over accounts and transactions.
type LedgerReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts in insertion order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListTransactions returns the transactions matching filter, sorted by
	// date descending (most recent first).
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	// TotalBalance returns the sum of all account balances.
	TotalBalance(ctx context.Context) (decimal.Decimal, error)

	// CategoryTotals returns the summed expense amounts grouped by category.
	// Categories with no recorded expenses are absent from the result.
	CategoryTotals(ctx context.Context) (map[domain.Category]decimal.Decimal, error)
}

// LedgerWriter defines write operations over accounts and transactions.
type LedgerWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveTransaction persists a new transaction and applies its balance
	// effect to the referenced account as a single atomic unit. It returns
	// apperrors.ErrNotFound, without inserting anything, when the referenced
	// account does not exist.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerRepository combines all ledger repository interfaces.
// This is a facade for clients that need access to all operations.
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
