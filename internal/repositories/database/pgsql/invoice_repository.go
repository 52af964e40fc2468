package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	"github.com/payzen/payzen_backend/internal/models"
	"github.com/payzen/payzen_backend/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const (
	selectInvoiceFields = `
		invoice_id, client_id, business_owner_id, invoice_number, sequence, products,
		subtotal, vat_rate, vat, grand_total, due_date, status, payment_attempts,
		created_at, last_updated_at
	`

	insertInvoiceQuery = `
		INSERT INTO invoices (
			invoice_id, client_id, business_owner_id, invoice_number, sequence, products,
			subtotal, vat_rate, vat, grand_total, due_date, status, payment_attempts,
			created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	findInvoiceByIDQuery = `SELECT ` + selectInvoiceFields + ` FROM invoices WHERE invoice_id = $1`

	findInvoiceByNumberQuery = `
		SELECT ` + selectInvoiceFields + `
		FROM invoices
		WHERE client_id = $1 AND invoice_number = $2
	`

	updateInvoiceQuery = `
		UPDATE invoices
		SET products = $2, subtotal = $3, vat_rate = $4, vat = $5, grand_total = $6,
			due_date = $7, status = $8, payment_attempts = $9, last_updated_at = $10
		WHERE invoice_id = $1 AND status = $11 AND last_updated_at = $12
	`

	invoiceExistsQuery = `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_id = $1)`

	deleteInvoiceQuery = `DELETE FROM invoices WHERE invoice_id = $1`

	markOverdueQuery = `
		UPDATE invoices
		SET status = 'overdue', last_updated_at = $1
		WHERE status = 'pending' AND due_date < $1
	`

	// reltuples is -1 for a table that has never been analyzed.
	estimateInvoiceCountQuery = `
		SELECT GREATEST(reltuples, 0)::bigint
		FROM pg_class
		WHERE oid = 'invoices'::regclass
	`
)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.ClientID,
		&m.BusinessOwnerID,
		&m.InvoiceNumber,
		&m.Sequence,
		&m.Products,
		&m.Subtotal,
		&m.VATRate,
		&m.VAT,
		&m.GrandTotal,
		&m.DueDate,
		&m.Status,
		&m.PaymentAttempts,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func invoiceWhere(filter domain.InvoiceFilter) (string, []any) {
	conds := []string{}
	args := []any{}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.BusinessOwnerID != "" {
		add("business_owner_id = $%d", filter.BusinessOwnerID)
	}
	if filter.ClientID != "" {
		add("client_id = $%d", filter.ClientID)
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.DueOnOrAfter != nil {
		add("due_date >= $%d", *filter.DueOnOrAfter)
	}
	if filter.DueBefore != nil {
		add("due_date < $%d", *filter.DueBefore)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	_, err := r.Pool.Exec(ctx, insertInvoiceQuery,
		m.InvoiceID,
		m.ClientID,
		m.BusinessOwnerID,
		m.InvoiceNumber,
		m.Sequence,
		m.Products,
		m.Subtotal,
		m.VATRate,
		m.VAT,
		m.GrandTotal,
		m.DueDate,
		m.Status,
		m.PaymentAttempts,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return wrapWriteError(err, "failed to save invoice")
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	m, err := scanInvoice(r.Pool.QueryRow(ctx, findInvoiceByIDQuery, invoiceID))
	if err != nil {
		return nil, wrapReadError(err, fmt.Sprintf("failed to find invoice by ID %s", invoiceID))
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByNumber(ctx context.Context, clientID string, invoiceNumber string) (*domain.Invoice, error) {
	m, err := scanInvoice(r.Pool.QueryRow(ctx, findInvoiceByNumberQuery, clientID, invoiceNumber))
	if err != nil {
		return nil, wrapReadError(err, fmt.Sprintf("failed to find invoice %s", invoiceNumber))
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

func (r *PgxInvoiceRepository) FindInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	where, args := invoiceWhere(filter)
	query := `SELECT ` + selectInvoiceFields + ` FROM invoices` + where + ` ORDER BY created_at DESC, sequence DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

func (r *PgxInvoiceRepository) EstimateInvoiceCount(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, estimateInvoiceCountQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to estimate invoice count: %w", err)
	}
	return count, nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expected domain.InvoiceVersion) error {
	m := mapping.ToModelInvoice(invoice)
	cmdTag, err := r.Pool.Exec(ctx, updateInvoiceQuery,
		m.InvoiceID,
		m.Products,
		m.Subtotal,
		m.VATRate,
		m.VAT,
		m.GrandTotal,
		m.DueDate,
		m.Status,
		m.PaymentAttempts,
		m.LastUpdatedAt,
		string(expected.Status),
		expected.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, invoiceExistsQuery, invoice.InvoiceID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check invoice %s: %w", invoice.InvoiceID, err)
	}
	if !exists {
		return fmt.Errorf("invoice %s not found: %w", invoice.InvoiceID, apperrors.ErrNotFound)
	}
	return fmt.Errorf("%w: invoice %s was modified concurrently", apperrors.ErrConflict, invoice.InvoiceID)
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	cmdTag, err := r.Pool.Exec(ctx, deleteInvoiceQuery, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s not found: %w", invoiceID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, markOverdueQuery, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
