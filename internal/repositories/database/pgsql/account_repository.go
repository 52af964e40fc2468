package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	"github.com/payzen/payzen_backend/internal/models"
	"github.com/payzen/payzen_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const (
	selectAccountFields = `
		account_id, business_name, email, password_hash, is_verified,
		description, instagram, refresh_token_hash, refresh_token_expiry_time,
		created_at, last_updated_at
	`

	insertAccountQuery = `
		INSERT INTO accounts (
			account_id, business_name, email, password_hash, is_verified,
			description, instagram, created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	findAccountByIDQuery = `SELECT ` + selectAccountFields + ` FROM accounts WHERE account_id = $1`

	// accounts_email_lower_key backs this lookup.
	findAccountByEmailQuery = `SELECT ` + selectAccountFields + ` FROM accounts WHERE lower(email) = lower($1)`

	updateAccountQuery = `
		UPDATE accounts
		SET business_name = $2, email = $3, password_hash = $4, is_verified = $5,
			description = $6, instagram = $7, last_updated_at = $8
		WHERE account_id = $1
	`

	updateRefreshTokenQuery = `
		UPDATE accounts
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3, last_updated_at = NOW()
		WHERE account_id = $1
	`

	clearRefreshTokenQuery = `
		UPDATE accounts
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, last_updated_at = NOW()
		WHERE account_id = $1
	`
)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.BusinessName,
		&m.Email,
		&m.PasswordHash,
		&m.IsVerified,
		&m.Description,
		&m.Instagram,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, insertAccountQuery,
		m.AccountID,
		m.BusinessName,
		m.Email,
		m.PasswordHash,
		m.IsVerified,
		m.Description,
		m.Instagram,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return wrapWriteError(err, "failed to save account")
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m, err := scanAccount(r.Pool.QueryRow(ctx, findAccountByIDQuery, accountID))
	if err != nil {
		return nil, wrapReadError(err, fmt.Sprintf("failed to find account by ID %s", accountID))
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func (r *PgxAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m, err := scanAccount(r.Pool.QueryRow(ctx, findAccountByEmailQuery, email))
	if err != nil {
		return nil, wrapReadError(err, "failed to find account by email")
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	cmdTag, err := r.Pool.Exec(ctx, updateAccountQuery,
		m.AccountID,
		m.BusinessName,
		m.Email,
		m.PasswordHash,
		m.IsVerified,
		m.Description,
		m.Instagram,
		m.LastUpdatedAt,
	)
	if err != nil {
		return wrapWriteError(err, "failed to update account")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found: %w", account.AccountID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateRefreshToken(ctx context.Context, accountID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, updateRefreshTokenQuery, accountID, refreshTokenHash, refreshTokenExpiryTime)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found: %w", accountID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAccountRepository) ClearRefreshToken(ctx context.Context, accountID string) error {
	cmdTag, err := r.Pool.Exec(ctx, clearRefreshTokenQuery, accountID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found: %w", accountID, apperrors.ErrNotFound)
	}
	return nil
}
