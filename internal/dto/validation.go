package dto

import (
	"errors"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations wires the domain vocabulary checks into gin's validator
// engine so binding tags can assert enumerated-field membership. Call once at
// startup before serving requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	if err := v.RegisterValidation("accounttype", validAccountType); err != nil {
		return err
	}
	if err := v.RegisterValidation("transactiontype", validTransactionType); err != nil {
		return err
	}
	return v.RegisterValidation("category", validCategory)
}

func validAccountType(fl validator.FieldLevel) bool {
	return domain.AccountType(fl.Field().String()).Valid()
}

func validTransactionType(fl validator.FieldLevel) bool {
	return domain.TransactionType(fl.Field().String()).Valid()
}

func validCategory(fl validator.FieldLevel) bool {
	return domain.Category(fl.Field().String()).Valid()
}
