package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	"github.com/payzen/payzen_backend/internal/models"
	"github.com/payzen/payzen_backend/internal/utils/mapping"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const (
	selectClientFields = `
		client_id, business_owner_id, client_name, client_email, client_phone_number,
		client_address, invoice_sequence, created_at, last_updated_at
	`

	insertClientQuery = `
		INSERT INTO clients (
			client_id, business_owner_id, client_name, client_email, client_phone_number,
			client_address, invoice_sequence, created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	findClientByIDQuery = `SELECT ` + selectClientFields + ` FROM clients WHERE client_id = $1`

	findClientByEmailQuery = `
		SELECT ` + selectClientFields + `
		FROM clients
		WHERE business_owner_id = $1 AND lower(client_email) = lower($2)
	`

	updateClientQuery = `
		UPDATE clients
		SET client_name = $2, client_email = $3, client_phone_number = $4,
			client_address = $5, last_updated_at = $6
		WHERE client_id = $1
	`

	deleteClientQuery = `DELETE FROM clients WHERE client_id = $1`

	// Single statement increment: the row lock serializes concurrent callers for one client.
	nextInvoiceSequenceQuery = `
		UPDATE clients
		SET invoice_sequence = invoice_sequence + 1, last_updated_at = NOW()
		WHERE client_id = $1
		RETURNING invoice_sequence
	`
)

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.BusinessOwnerID,
		&m.ClientName,
		&m.ClientEmail,
		&m.ClientPhoneNumber,
		&m.ClientAddress,
		&m.InvoiceSequence,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// clientWhere renders the WHERE clause for filter and returns its arguments.
func clientWhere(filter domain.ClientFilter) (string, []any) {
	conds := []string{}
	args := []any{}
	if filter.BusinessOwnerID != "" {
		args = append(args, filter.BusinessOwnerID)
		conds = append(conds, fmt.Sprintf("business_owner_id = $%d", len(args)))
	}
	if filter.ClientName != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.ClientName)+"%")
		conds = append(conds, fmt.Sprintf(`client_name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.ClientEmail != "" {
		args = append(args, filter.ClientEmail)
		conds = append(conds, fmt.Sprintf("lower(client_email) = lower($%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	_, err := r.Pool.Exec(ctx, insertClientQuery,
		m.ClientID,
		m.BusinessOwnerID,
		m.ClientName,
		m.ClientEmail,
		m.ClientPhoneNumber,
		m.ClientAddress,
		m.InvoiceSequence,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return wrapWriteError(err, "failed to save client")
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	m, err := scanClient(r.Pool.QueryRow(ctx, findClientByIDQuery, clientID))
	if err != nil {
		return nil, wrapReadError(err, fmt.Sprintf("failed to find client by ID %s", clientID))
	}
	d := mapping.ToDomainClient(m)
	return &d, nil
}

func (r *PgxClientRepository) FindClientByEmail(ctx context.Context, businessOwnerID string, email string) (*domain.Client, error) {
	m, err := scanClient(r.Pool.QueryRow(ctx, findClientByEmailQuery, businessOwnerID, email))
	if err != nil {
		return nil, wrapReadError(err, "failed to find client by email")
	}
	d := mapping.ToDomainClient(m)
	return &d, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, filter domain.ClientFilter, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where, args := clientWhere(filter)
	args = append(args, limit, offset)
	query := `SELECT ` + selectClientFields + ` FROM clients` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, client_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		modelClients = append(modelClients, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}

	return mapping.ToDomainClientSlice(modelClients), nil
}

func (r *PgxClientRepository) CountClients(ctx context.Context, filter domain.ClientFilter) (int, error) {
	where, args := clientWhere(filter)
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	cmdTag, err := r.Pool.Exec(ctx, updateClientQuery,
		m.ClientID,
		m.ClientName,
		m.ClientEmail,
		m.ClientPhoneNumber,
		m.ClientAddress,
		m.LastUpdatedAt,
	)
	if err != nil {
		return wrapWriteError(err, "failed to update client")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s not found: %w", client.ClientID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	cmdTag, err := r.Pool.Exec(ctx, deleteClientQuery, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s not found: %w", clientID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) NextInvoiceSequence(ctx context.Context, clientID string) (int64, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, nextInvoiceSequenceQuery, clientID).Scan(&seq); err != nil {
		return 0, wrapReadError(err, "failed to reserve invoice sequence")
	}
	return seq, nil
}
