package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or draws from an account.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the accepted transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Category is a fixed classification label used for expense analysis.
type Category string

const (
	Food           Category = "Food"
	Bills          Category = "Bills"
	Travel         Category = "Travel"
	Entertainment  Category = "Entertainment"
	Shopping       Category = "Shopping"
	Healthcare     Category = "Healthcare"
	Transportation Category = "Transportation"
	Education      Category = "Education"
	Salary         Category = "Salary"
	Other          Category = "Other"
)

// Categories lists the accepted categories in display order.
func Categories() []Category {
	return []Category{
		Food, Bills, Travel, Entertainment, Shopping,
		Healthcare, Transportation, Education, Salary, Other,
	}
}

// Valid reports whether c is one of the accepted categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Transaction represents a single recorded income or expense event against one account.
// Amount is a strictly positive magnitude; the sign is carried by TransactionType.
// Transactions are never mutated or deleted after creation.
type Transaction struct {
	TransactionID   string          `json:"id"`
	AccountID       string          `json:"account_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transaction_type"`
	Category        Category        `json:"category"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
}
