package dto

import (
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the form fields accepted when recording a
// transaction. Amount is parsed to a decimal by the handler.
type CreateTransactionRequest struct {
	AccountID       string `form:"account_id" binding:"required"`
	Amount          string `form:"amount" binding:"required"`
	TransactionType string `form:"transaction_type" binding:"required,transactiontype"`
	Category        string `form:"category" binding:"required,category"`
	Description     string `form:"description"`
}

// ListTransactionsParams defines the query parameters accepted by the
// transaction history view. Dates use the YYYY-MM-DD form.
type ListTransactionsParams struct {
	AccountID string `form:"account_id"`
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// TransactionResponse defines the wire representation of a transaction.
// AccountName is display denormalization filled in by the handler layer.
type TransactionResponse struct {
	ID              string                 `json:"id"`
	AccountID       string                 `json:"account_id"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"transaction_type"`
	Category        domain.Category        `json:"category"`
	Description     string                 `json:"description"`
	Date            time.Time              `json:"date"`
	AccountName     string                 `json:"account_name,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its wire
// representation, attaching the resolved account name.
func ToTransactionResponse(txn *domain.Transaction, accountName string) TransactionResponse {
	return TransactionResponse{
		ID:              txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: txn.TransactionType,
		Category:        txn.Category,
		Description:     txn.Description,
		Date:            txn.Date,
		AccountName:     accountName,
	}
}
