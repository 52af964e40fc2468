package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	"github.com/payzen/payzen_backend/internal/models"
	"github.com/payzen/payzen_backend/internal/utils/mapping"
)

type PgxTokenRepository struct {
	BaseRepository
}

func newPgxTokenRepository(db *pgxpool.Pool) portsrepo.TokenRepositoryFacade {
	return &PgxTokenRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TokenRepositoryFacade = (*PgxTokenRepository)(nil)

const (
	blacklistLiveTokensQuery = `
		UPDATE tokens
		SET blacklisted = TRUE
		WHERE account_id = $1 AND type = $2 AND blacklisted = FALSE
	`

	insertTokenQuery = `
		INSERT INTO tokens (token_id, token, account_id, type, expires, blacklisted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	findActiveTokenQuery = `
		SELECT token_id, token, account_id, type, expires, blacklisted, created_at
		FROM tokens
		WHERE token = $1 AND type = $2 AND account_id = $3 AND blacklisted = FALSE
	`

	blacklistTokenQuery = `UPDATE tokens SET blacklisted = TRUE WHERE token_id = $1 AND blacklisted = FALSE`
)

func (r *PgxTokenRepository) SaveToken(ctx context.Context, token domain.Token) error {
	m := mapping.ToModelToken(token)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, blacklistLiveTokensQuery, m.AccountID, m.Type); err != nil {
		return fmt.Errorf("failed to blacklist previous %s tokens: %w", m.Type, err)
	}
	if _, err := tx.Exec(ctx, insertTokenQuery,
		m.TokenID,
		m.Token,
		m.AccountID,
		m.Type,
		m.Expires,
		m.Blacklisted,
		m.CreatedAt,
	); err != nil {
		return wrapWriteError(err, "failed to save token")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTokenRepository) FindActiveToken(ctx context.Context, token string, tokenType domain.TokenType, accountID string) (*domain.Token, error) {
	var m models.Token
	err := r.Pool.QueryRow(ctx, findActiveTokenQuery, token, string(tokenType), accountID).Scan(
		&m.TokenID,
		&m.Token,
		&m.AccountID,
		&m.Type,
		&m.Expires,
		&m.Blacklisted,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, wrapReadError(err, "failed to find token")
	}
	d := mapping.ToDomainToken(m)
	return &d, nil
}

func (r *PgxTokenRepository) BlacklistToken(ctx context.Context, tokenID string) error {
	cmdTag, err := r.Pool.Exec(ctx, blacklistTokenQuery, tokenID)
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("token %s already used: %w", tokenID, apperrors.ErrTokenNotFound)
	}
	return nil
}
