package dto

import (
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the form fields accepted when adding an account.
// InitialBalance stays a string here; the handler parses it to a decimal so it
// can surface a precise validation message.
type CreateAccountRequest struct {
	Name           string `form:"name" binding:"required"`
	AccountType    string `form:"account_type" binding:"required,accounttype"`
	InitialBalance string `form:"initial_balance"`
}

// AccountResponse defines the wire representation of an account. Field names
// match the persisted entity; timestamps serialize as RFC 3339.
type AccountResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"account_type"`
	Balance     decimal.Decimal    `json:"balance"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ToAccountResponse converts a domain.Account to its wire representation.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.AccountID,
		Name:        account.Name,
		AccountType: account.AccountType,
		Balance:     account.Balance,
		CreatedAt:   account.CreatedAt,
	}
}

// ToAccountResponses converts a slice of accounts, reusing the single converter.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
