package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/payzen/payzen_backend/internal/platform/metrics"
	"github.com/payzen/payzen_backend/internal/utils"
)

type authService struct {
	BaseService
	accounts         portssvc.AccountSvcFacade
	tokens           portssvc.TokenSvcFacade
	notifier         portssvc.NotificationSvc
	verifyEmailTTL   time.Duration
	resetPasswordTTL time.Duration
}

// NewAuthService creates the service behind the register, login and password flows.
func NewAuthService(accounts portssvc.AccountSvcFacade, tokens portssvc.TokenSvcFacade, notifier portssvc.NotificationSvc, verifyEmailTTL, resetPasswordTTL time.Duration) portssvc.AuthSvcFacade {
	return &authService{
		accounts:         accounts,
		tokens:           tokens,
		notifier:         notifier,
		verifyEmailTTL:   verifyEmailTTL,
		resetPasswordTTL: resetPasswordTTL,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// issueSingleUse signs and stores a verifyEmail or resetPassword token.
func (s *authService) issueSingleUse(ctx context.Context, accountID string, tokenType domain.TokenType, ttl time.Duration) (string, error) {
	issued, err := s.tokens.IssueToken(ctx, accountID, tokenType, ttl)
	if err != nil {
		return "", err
	}
	if err := s.tokens.PersistToken(ctx, accountID, tokenType, issued); err != nil {
		return "", err
	}
	return issued.Token, nil
}

func (s *authService) Register(ctx context.Context, req *dto.CreateAccountRequest) (account *domain.Account, err error) {
	defer func() { metrics.AuthAttempts.WithLabelValues("register", metrics.Outcome(err)).Inc() }()

	account, err = s.accounts.CreateAccount(ctx, req)
	if err != nil {
		return nil, err
	}
	token, err := s.issueSingleUse(ctx, account.AccountID, domain.TokenTypeVerifyEmail, s.verifyEmailTTL)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.SendVerificationEmail(ctx, account, token); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *authService) Login(ctx context.Context, email string, password string) (account *domain.Account, tokens *domain.AuthTokens, err error) {
	defer func() { metrics.AuthAttempts.WithLabelValues("login", metrics.Outcome(err)).Inc() }()

	account, err = s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Login for unknown email")
			return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, nil, err
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		s.LogDebug(ctx, "Login with wrong password", slog.String("account_id", account.AccountID))
		return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	if !account.IsVerified {
		return nil, nil, apperrors.ErrAccountNotVerified
	}

	tokens, err = s.tokens.GenerateAuthTokens(ctx, account.AccountID)
	if err != nil {
		return nil, nil, err
	}
	s.LogInfo(ctx, "Account logged in", slog.String("account_id", account.AccountID))
	return account, tokens, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (err error) {
	defer func() { metrics.AuthAttempts.WithLabelValues("verify_email", metrics.Outcome(err)).Inc() }()

	record, err := s.tokens.VerifyToken(ctx, strings.TrimSpace(token), domain.TokenTypeVerifyEmail)
	if err != nil {
		return err
	}
	// Consuming first lets only one concurrent caller through with the same token.
	if err := s.tokens.ConsumeToken(ctx, record); err != nil {
		return err
	}
	_, err = s.accounts.MarkEmailVerified(ctx, record.AccountID)
	return err
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (err error) {
	defer func() { metrics.AuthAttempts.WithLabelValues("forgot_password", metrics.Outcome(err)).Inc() }()

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	token, err := s.issueSingleUse(ctx, account.AccountID, domain.TokenTypeResetPassword, s.resetPasswordTTL)
	if err != nil {
		return err
	}
	return s.notifier.SendResetPasswordEmail(ctx, account, token)
}

func (s *authService) CheckResetToken(ctx context.Context, token string) error {
	_, err := s.tokens.VerifyToken(ctx, strings.TrimSpace(token), domain.TokenTypeResetPassword)
	return err
}

func (s *authService) ResetPassword(ctx context.Context, token string, newPassword string) (tokens *domain.AuthTokens, err error) {
	defer func() { metrics.AuthAttempts.WithLabelValues("reset_password", metrics.Outcome(err)).Inc() }()

	if err := validatePassword(newPassword); err != nil {
		return nil, err
	}
	record, err := s.tokens.VerifyToken(ctx, strings.TrimSpace(token), domain.TokenTypeResetPassword)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.ConsumeToken(ctx, record); err != nil {
		return nil, err
	}
	if err := s.accounts.UpdatePassword(ctx, record.AccountID, newPassword); err != nil {
		return nil, err
	}
	// Persisting the new refresh token replaces the one issued before the reset.
	return s.tokens.GenerateAuthTokens(ctx, record.AccountID)
}

func (s *authService) RefreshAuth(ctx context.Context, refreshToken string) (tokens *domain.AuthTokens, err error) {
	defer func() { metrics.AuthAttempts.WithLabelValues("refresh", metrics.Outcome(err)).Inc() }()

	record, err := s.tokens.VerifyToken(ctx, strings.TrimSpace(refreshToken), domain.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.tokens.GenerateAuthTokens(ctx, record.AccountID)
}

func (s *authService) Logout(ctx context.Context, accountID string) error {
	if err := s.tokens.RevokeRefreshToken(ctx, accountID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Account logged out", slog.String("account_id", accountID))
	return nil
}
