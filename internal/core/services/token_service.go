package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/platform/config"
	"github.com/payzen/payzen_backend/internal/platform/metrics"
	"github.com/payzen/payzen_backend/internal/utils"
)

type tokenService struct {
	BaseService
	tokenRepo   portsrepo.TokenRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	secret      string
	issuer      string
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

// TokenServiceOption is a functional option for configuring the token service
type TokenServiceOption func(*tokenService)

// WithTokenClock replaces the clock used for issuing and verifying tokens.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) {
		s.now = now
	}
}

// NewTokenService creates a token service signing with cfg.JWTSecret.
func NewTokenService(cfg *config.Config, tokenRepo portsrepo.TokenRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, options ...TokenServiceOption) portssvc.TokenSvcFacade {
	svc := &tokenService{
		tokenRepo:   tokenRepo,
		accountRepo: accountRepo,
		secret:      cfg.JWTSecret,
		issuer:      cfg.JWTIssuer,
		accessTTL:   cfg.AccessTokenExpiryDuration,
		refreshTTL:  cfg.RefreshTokenExpiryDuration,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) IssueToken(ctx context.Context, accountID string, tokenType domain.TokenType, ttl time.Duration) (domain.IssuedToken, error) {
	if accountID == "" || !tokenType.IsValid() || ttl <= 0 {
		return domain.IssuedToken{}, fmt.Errorf("%w: account, token type and positive ttl are required", apperrors.ErrValidation)
	}

	// JWT timestamps have second precision; keep the returned expiry identical to the signed one.
	now := s.Now().Truncate(time.Second)
	expires := now.Add(ttl)
	signed, err := utils.GenerateJWT(accountID, string(tokenType), s.secret, s.issuer, now, expires)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("token_type", string(tokenType)))
		return domain.IssuedToken{}, fmt.Errorf("%w: %w", apperrors.ErrSigning, err)
	}

	metrics.TokensIssued.WithLabelValues(string(tokenType)).Inc()
	return domain.IssuedToken{Token: signed, Expires: expires}, nil
}

func (s *tokenService) PersistToken(ctx context.Context, accountID string, tokenType domain.TokenType, issued domain.IssuedToken) error {
	switch {
	case tokenType == domain.TokenTypeRefresh:
		if err := s.accountRepo.UpdateRefreshToken(ctx, accountID, utils.HashRefreshToken(issued.Token), issued.Expires); err != nil {
			s.LogError(ctx, err, "Failed to store refresh token", slog.String("account_id", accountID))
			return err
		}
		return nil
	case tokenType.IsSingleUse():
		record := domain.Token{
			TokenID:   uuid.NewString(),
			Token:     issued.Token,
			AccountID: accountID,
			Type:      tokenType,
			Expires:   issued.Expires,
			CreatedAt: s.Now(),
		}
		if err := s.tokenRepo.SaveToken(ctx, record); err != nil {
			s.LogError(ctx, err, "Failed to save token",
				slog.String("account_id", accountID),
				slog.String("token_type", string(tokenType)))
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %s tokens are not persisted", apperrors.ErrValidation, tokenType)
	}
}

func (s *tokenService) GenerateAuthTokens(ctx context.Context, accountID string) (*domain.AuthTokens, error) {
	access, err := s.IssueToken(ctx, accountID, domain.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueToken(ctx, accountID, domain.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.PersistToken(ctx, accountID, domain.TokenTypeRefresh, refresh); err != nil {
		return nil, err
	}
	return &domain.AuthTokens{Access: access, Refresh: refresh}, nil
}

func (s *tokenService) VerifyToken(ctx context.Context, token string, tokenType domain.TokenType) (*domain.Token, error) {
	now := s.Now()
	claims, err := utils.ParseAndValidateJWT(token, s.secret, now)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		s.LogDebug(ctx, "Token failed signature validation", slog.String("error", err.Error()))
		return nil, apperrors.ErrInvalidSignature
	}
	if domain.TokenType(claims.Type) != tokenType {
		s.LogDebug(ctx, "Token type mismatch",
			slog.String("expected", string(tokenType)),
			slog.String("actual", claims.Type))
		return nil, apperrors.ErrInvalidSignature
	}
	accountID := claims.Subject

	switch {
	case tokenType == domain.TokenTypeAccess:
		return &domain.Token{Token: token, AccountID: accountID, Type: tokenType, Expires: claims.ExpiresAt.Time}, nil

	case tokenType == domain.TokenTypeRefresh:
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrTokenNotFound
			}
			return nil, err
		}
		if !utils.CompareRefreshTokenHash(token, account.RefreshTokenHash) {
			return nil, apperrors.ErrTokenNotFound
		}
		if !account.HasActiveRefreshToken(now) {
			return nil, apperrors.ErrTokenExpired
		}
		return &domain.Token{Token: token, AccountID: accountID, Type: tokenType, Expires: *account.RefreshTokenExpiryTime}, nil

	default:
		record, err := s.tokenRepo.FindActiveToken(ctx, token, tokenType, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrTokenNotFound
			}
			s.LogError(ctx, err, "Failed to look up token", slog.String("account_id", accountID))
			return nil, err
		}
		// The stored expiry wins over the signed one.
		if record.IsExpired(now) {
			return nil, apperrors.ErrTokenExpired
		}
		return record, nil
	}
}

func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (string, error) {
	record, err := s.VerifyToken(ctx, token, domain.TokenTypeAccess)
	if err != nil {
		return "", err
	}
	return record.AccountID, nil
}

func (s *tokenService) ConsumeToken(ctx context.Context, record *domain.Token) error {
	if record == nil {
		return fmt.Errorf("%w: token record is required", apperrors.ErrValidation)
	}
	switch {
	case record.Type.IsSingleUse():
		if err := s.tokenRepo.BlacklistToken(ctx, record.TokenID); err != nil {
			s.LogError(ctx, err, "Failed to blacklist token", slog.String("token_id", record.TokenID))
			return err
		}
		return nil
	case record.Type == domain.TokenTypeRefresh:
		return s.RevokeRefreshToken(ctx, record.AccountID)
	default:
		return fmt.Errorf("%w: %s tokens cannot be consumed", apperrors.ErrValidation, record.Type)
	}
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, accountID string) error {
	if err := s.accountRepo.ClearRefreshToken(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("account_id", accountID))
		return err
	}
	return nil
}
