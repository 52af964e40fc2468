package repositories

import (
	"context"
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// AccountReader defines read operations for business accounts
type AccountReader interface {
	// FindAccountByID retrieves an account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByEmail retrieves an account by email, compared case-insensitively.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// AccountWriter defines write operations for business accounts
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate when the
	// business name or email is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates profile, verification and password fields.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRefreshTokenManager stores the single active refresh token of an account
type AccountRefreshTokenManager interface {
	// UpdateRefreshToken replaces the stored refresh token hash and expiry.
	UpdateRefreshToken(ctx context.Context, accountID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken removes the stored refresh token.
	ClearRefreshToken(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountRefreshTokenManager
}
