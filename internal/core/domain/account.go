package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies the kind of holding an account represents.
type AccountType string

const (
	Savings    AccountType = "savings"
	Wallet     AccountType = "wallet"
	CreditCard AccountType = "credit_card"
)

// AccountTypes lists the accepted account types in display order.
func AccountTypes() []AccountType {
	return []AccountType{Savings, Wallet, CreditCard}
}

// Valid reports whether t is one of the accepted account types.
func (t AccountType) Valid() bool {
	switch t {
	case Savings, Wallet, CreditCard:
		return true
	}
	return false
}

// Account represents a named financial holding with a running balance.
// Balance is mutated only by the ledger store when a transaction is recorded;
// every other field is immutable after creation.
type Account struct {
	AccountID   string          `json:"id"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}
