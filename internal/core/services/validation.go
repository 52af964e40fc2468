package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Local numbers are 11 characters, international ones (+234...) are 14.
	_ = v.RegisterValidation("clientphone", func(fl validator.FieldLevel) bool {
		n := len(strings.TrimSpace(fl.Field().String()))
		return n == 11 || n == 14
	})
	return v
}

// validateStruct runs struct tag validation and maps failures to apperrors.ErrValidation.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
}

// requireMoneyAmount accepts positive amounts with at most two decimal places, the
// precision of the NUMERIC(20, 2) money columns.
func requireMoneyAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s cannot have more than two decimal places", apperrors.ErrValidation, field)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return fmt.Errorf("%w: password must be between 8 and 72 characters", apperrors.ErrValidation)
	}
	return nil
}
