package repositories

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// PaymentRepositoryFacade defines persistence for payment attempts
type PaymentRepositoryFacade interface {
	// SavePayment persists a payment attempt.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// FindPaymentsByInvoice lists the payment attempts recorded for an invoice, oldest first.
	FindPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}
