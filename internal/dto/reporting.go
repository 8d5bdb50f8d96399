package dto

import (
	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ToCategoryTotalsResponse flattens expense totals for the category chart.
// Values are plain JSON numbers, which is what Chart.js consumes.
func ToCategoryTotalsResponse(totals map[domain.Category]decimal.Decimal) map[string]float64 {
	res := make(map[string]float64, len(totals))
	for category, total := range totals {
		res[string(category)] = total.InexactFloat64()
	}
	return res
}

// ToAccountBalancesResponse maps account names to balances for the account
// chart. Duplicate names overwrite, matching map semantics of the view.
func ToAccountBalancesResponse(accounts []domain.Account) map[string]float64 {
	res := make(map[string]float64, len(accounts))
	for _, account := range accounts {
		res[account.Name] = account.Balance.InexactFloat64()
	}
	return res
}
