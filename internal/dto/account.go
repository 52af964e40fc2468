package dto

import (
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// CreateAccountRequest is the registration body.
type CreateAccountRequest struct {
	BusinessName string `json:"businessName" validate:"required,max=120"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Description  string `json:"description" validate:"max=500"`
	Instagram    string `json:"instagram" validate:"max=60"`
}

// UpdateAccountRequest defines the profile fields an account may change.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateAccountRequest struct {
	BusinessName *string `json:"businessName" validate:"omitempty,max=120"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	Instagram    *string `json:"instagram" validate:"omitempty,max=60"`
	Password     *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// AccountResponse is the public view of an account. It never carries the password hash.
type AccountResponse struct {
	AccountID    string    `json:"accountID"`
	BusinessName string    `json:"businessName"`
	Email        string    `json:"email"`
	IsVerified   bool      `json:"isVerified"`
	Description  string    `json:"description,omitempty"`
	Instagram    string    `json:"instagram,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		BusinessName: a.BusinessName,
		Email:        a.Email,
		IsVerified:   a.IsVerified,
		Description:  a.Description,
		Instagram:    a.Instagram,
		CreatedAt:    a.CreatedAt,
	}
}
