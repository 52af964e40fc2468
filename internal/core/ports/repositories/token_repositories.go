package repositories

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// TokenReader defines read operations for single-use tokens
type TokenReader interface {
	// FindActiveToken retrieves the non-blacklisted record for token, type and account.
	FindActiveToken(ctx context.Context, token string, tokenType domain.TokenType, accountID string) (*domain.Token, error)
}

// TokenWriter defines write operations for single-use tokens
type TokenWriter interface {
	// SaveToken stores a token and blacklists any other live token of the same
	// type for the same account, in one transaction.
	SaveToken(ctx context.Context, token domain.Token) error

	// BlacklistToken marks a token unusable. Blacklisting is terminal.
	BlacklistToken(ctx context.Context, tokenID string) error
}

// TokenRepositoryFacade combines all token-related repository interfaces
type TokenRepositoryFacade interface {
	TokenReader
	TokenWriter
}
