// Package memory provides the in-memory implementation of the ledger
// repository. The whole ledger lives in process memory; process termination
// discards all state.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// LedgerRepository is an in-memory implementation of the ledger repository
// ports. It is guarded by an RWMutex: reads may run concurrently, and a
// transaction insert plus its balance effect happen under one write lock so no
// reader can observe one without the other.
type LedgerRepository struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	// Insertion-order indexes. Accounts list in creation order; transactions
	// fall back to insertion order when dates tie.
	accountOrder     []string
	transactionOrder []string
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository constructs an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
	}
}

// Reset drops all state. Test helper.
func (r *LedgerRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make(map[string]domain.Account)
	r.transactions = make(map[string]domain.Transaction)
	r.accountOrder = nil
	r.transactionOrder = nil
}

// SaveAccount implements portsrepo.LedgerWriter.
func (r *LedgerRepository) SaveAccount(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.AccountID]; !exists {
		r.accountOrder = append(r.accountOrder, account.AccountID)
	}
	r.accounts[account.AccountID] = account
	return nil
}

// FindAccountByID implements portsrepo.LedgerReader.
func (r *LedgerRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	// return a copy so callers cannot mutate stored state
	return &account, nil
}

// ListAccounts implements portsrepo.LedgerReader.
func (r *LedgerRepository) ListAccounts(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, 0, len(r.accountOrder))
	for _, id := range r.accountOrder {
		out = append(out, r.accounts[id])
	}
	return out, nil
}

// SaveTransaction implements portsrepo.LedgerWriter. The insert and the
// balance update form a single critical section; an unknown account fails with
// ErrNotFound before anything is recorded.
func (r *LedgerRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[txn.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}

	r.transactions[txn.TransactionID] = txn
	r.transactionOrder = append(r.transactionOrder, txn.TransactionID)

	switch txn.TransactionType {
	case domain.Income:
		account.Balance = account.Balance.Add(txn.Amount)
	case domain.Expense:
		account.Balance = account.Balance.Sub(txn.Amount)
	}
	r.accounts[txn.AccountID] = account
	return nil
}

// ListTransactions implements portsrepo.LedgerReader. Filters are conjunctive;
// results are sorted by date descending with a stable tie-break on insertion
// order.
func (r *LedgerRepository) ListTransactions(_ context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(r.transactionOrder))
	for _, id := range r.transactionOrder {
		txn := r.transactions[id]
		if filter.AccountID != "" && txn.AccountID != filter.AccountID {
			continue
		}
		if filter.Category != "" && txn.Category != filter.Category {
			continue
		}
		if filter.StartDate != nil && txn.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && txn.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, txn)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// TotalBalance implements portsrepo.LedgerReader.
func (r *LedgerRepository) TotalBalance(_ context.Context) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for _, account := range r.accounts {
		total = total.Add(account.Balance)
	}
	return total, nil
}

// CategoryTotals implements portsrepo.LedgerReader. Only expense transactions
// contribute; categories with no expenses are absent from the result.
func (r *LedgerRepository) CategoryTotals(_ context.Context) (map[domain.Category]decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	totals := make(map[domain.Category]decimal.Decimal)
	for _, txn := range r.transactions {
		if txn.TransactionType != domain.Expense {
			continue
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount)
	}
	return totals, nil
}
