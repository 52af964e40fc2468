package services

import (
	"context"
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// TokenIssuerSvc signs and stores tokens
type TokenIssuerSvc interface {
	// IssueToken signs a token of the given type for accountID that expires after ttl.
	IssueToken(ctx context.Context, accountID string, tokenType domain.TokenType, ttl time.Duration) (domain.IssuedToken, error)

	// PersistToken records an issued refresh, verifyEmail or resetPassword token so it can later be verified.
	PersistToken(ctx context.Context, accountID string, tokenType domain.TokenType, issued domain.IssuedToken) error

	// GenerateAuthTokens issues an access and refresh token pair and persists the refresh token.
	GenerateAuthTokens(ctx context.Context, accountID string) (*domain.AuthTokens, error)
}

// TokenVerifierSvc checks presented tokens
type TokenVerifierSvc interface {
	// VerifyToken validates signature, expiry and type, then loads the matching persisted record.
	VerifyToken(ctx context.Context, token string, tokenType domain.TokenType) (*domain.Token, error)

	// VerifyAccessToken validates a stateless access token and returns its subject.
	VerifyAccessToken(ctx context.Context, token string) (string, error)
}

// TokenRevokerSvc retires tokens
type TokenRevokerSvc interface {
	// ConsumeToken makes a verified token unusable.
	ConsumeToken(ctx context.Context, record *domain.Token) error

	// RevokeRefreshToken drops the account's active refresh token.
	RevokeRefreshToken(ctx context.Context, accountID string) error
}

// TokenSvcFacade combines all token-related service interfaces
type TokenSvcFacade interface {
	TokenIssuerSvc
	TokenVerifierSvc
	TokenRevokerSvc
}
