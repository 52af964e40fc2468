package services

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/dto"
)

// AuthSvcFacade orchestrates the account authentication flows
type AuthSvcFacade interface {
	// Register creates an account and emails a verification link.
	Register(ctx context.Context, req *dto.CreateAccountRequest) (*domain.Account, error)

	// Login checks credentials and returns a fresh token pair for a verified account.
	Login(ctx context.Context, email string, password string) (*domain.Account, *domain.AuthTokens, error)

	// VerifyEmail marks the token's account verified and consumes the token.
	VerifyEmail(ctx context.Context, token string) error

	// ForgotPassword emails a reset link when the account exists.
	ForgotPassword(ctx context.Context, email string) error

	// CheckResetToken reports whether a reset token is still usable without consuming it.
	CheckResetToken(ctx context.Context, token string) error

	// ResetPassword sets a new password, consumes the token and signs the account in.
	ResetPassword(ctx context.Context, token string, newPassword string) (*domain.AuthTokens, error)

	// RefreshAuth rotates the refresh token.
	RefreshAuth(ctx context.Context, refreshToken string) (*domain.AuthTokens, error)

	Logout(ctx context.Context, accountID string) error
}
