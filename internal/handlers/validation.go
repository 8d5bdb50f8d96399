package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// flashMessageFor maps a form binding failure to the user-facing message for
// the first offending field.
func flashMessageFor(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Name":
			return "Account name is required"
		case "AccountType":
			return "Invalid account type"
		case "AccountID":
			return "Please select an account"
		case "Amount":
			return "Invalid amount"
		case "TransactionType":
			return "Invalid transaction type"
		case "Category":
			return "Invalid category"
		}
	}
	return "Invalid input"
}
