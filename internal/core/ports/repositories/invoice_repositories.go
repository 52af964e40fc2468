package repositories

import (
	"context"
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByNumber retrieves a client's invoice by its human-readable number.
	FindInvoiceByNumber(ctx context.Context, clientID string, invoiceNumber string) (*domain.Invoice, error)

	// FindInvoices retrieves all invoices matching filter, newest first.
	FindInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error)

	// EstimateInvoiceCount returns the planner's row estimate for the invoices table.
	EstimateInvoiceCount(ctx context.Context) (int64, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice. Returns apperrors.ErrDuplicate if the
	// (client, sequence) pair already exists.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice persists products, totals, due date, status and payment attempts,
	// provided the stored row still matches expected. Returns apperrors.ErrConflict when
	// another writer changed the invoice first and apperrors.ErrNotFound when it is gone.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, expected domain.InvoiceVersion) error

	// DeleteInvoice removes an invoice.
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// MarkOverdue moves every pending invoice due before now to overdue and
	// returns how many rows changed.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
