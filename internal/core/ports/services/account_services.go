package services

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/dto"
)

// AccountReaderSvc defines read operations for business accounts
type AccountReaderSvc interface {
	// IsEmailTaken reports whether an account already uses email (case-insensitive).
	IsEmailTaken(ctx context.Context, email string) (bool, error)

	// GetAccountByID retrieves an account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByEmail retrieves an account by email.
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for business accounts
type AccountWriterSvc interface {
	// CreateAccount validates the request, hashes the password and persists a new unverified account.
	CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount applies a partial profile update.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// MarkEmailVerified sets the verified flag.
	MarkEmailVerified(ctx context.Context, accountID string) (*domain.Account, error)

	// UpdatePassword replaces the password hash.
	UpdatePassword(ctx context.Context, accountID string, newPassword string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
