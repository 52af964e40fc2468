package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	"github.com/payzen/payzen_backend/internal/models"
	"github.com/payzen/payzen_backend/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(db *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const (
	insertPaymentQuery = `
		INSERT INTO payments (
			payment_id, invoice_id, client_id, amount, currency, status,
			provider_ref, in_app_ref, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	findPaymentsByInvoiceQuery = `
		SELECT payment_id, invoice_id, client_id, amount, currency, status,
			provider_ref, in_app_ref, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY created_at ASC
	`
)

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	_, err := r.Pool.Exec(ctx, insertPaymentQuery,
		m.PaymentID,
		m.InvoiceID,
		m.ClientID,
		m.Amount,
		m.Currency,
		m.Status,
		m.ProviderRef,
		m.InAppRef,
		m.CreatedAt,
	)
	if err != nil {
		return wrapWriteError(err, "failed to save payment")
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, findPaymentsByInvoiceQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	modelPayments := []models.Payment{}
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID,
			&m.InvoiceID,
			&m.ClientID,
			&m.Amount,
			&m.Currency,
			&m.Status,
			&m.ProviderRef,
			&m.InAppRef,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		modelPayments = append(modelPayments, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}

	return mapping.ToDomainPaymentSlice(modelPayments), nil
}
