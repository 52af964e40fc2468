package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/payzen/payzen_backend/internal/utils"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}
	_, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	s.LogError(ctx, err, "Failed to check email availability")
	return false, err
}

func (s *accountService) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*domain.Account, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", apperrors.ErrValidation)
	}
	normalized := *req
	normalized.BusinessName = strings.TrimSpace(req.BusinessName)
	normalized.Email = normalizeEmail(req.Email)
	if err := validateStruct(normalized); err != nil {
		return nil, err
	}

	taken, err := s.IsEmailTaken(ctx, normalized.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already taken", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(normalized.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		BusinessName: normalized.BusinessName,
		Email:        normalized.Email,
		PasswordHash: hash,
		Description:  strings.TrimSpace(normalized.Description),
		Instagram:    strings.TrimSpace(normalized.Instagram),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("email", account.Email))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.ErrNotFound
	}
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by email")
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return nil, fmt.Errorf("%w: businessName cannot be empty", apperrors.ErrValidation)
		}
		account.BusinessName = name
	}
	if req.Description != nil {
		account.Description = strings.TrimSpace(*req.Description)
	}
	if req.Instagram != nil {
		account.Instagram = strings.TrimSpace(*req.Instagram)
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = hash
	}
	account.LastUpdatedAt = s.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) MarkEmailVerified(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsVerified {
		return account, nil
	}
	account.IsVerified = true
	account.LastUpdatedAt = s.Now()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to mark account verified", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) UpdatePassword(ctx context.Context, accountID string, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hash
	account.LastUpdatedAt = s.Now()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("account_id", accountID))
		return err
	}
	return nil
}
