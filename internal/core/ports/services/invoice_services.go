package services

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for an owner's invoices.
// List getters return an empty slice when nothing matches.
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)
	GetClientInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error)
	GetPaidInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)
	GetUnpaidInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)
	GetOverdueInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)
	GetClientPaidInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error)
	GetClientUnpaidInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error)
	GetClientOverdueInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error)

	// GetDueInvoices lists pending invoices whose due date has not passed yet.
	GetDueInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error)

	// GetInvoiceCount returns an approximate count across all tenants.
	GetInvoiceCount(ctx context.Context) (int64, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// CreateInvoice reserves the client's next invoice number, computes totals and persists the invoice.
	CreateInvoice(ctx context.Context, ownerID string, req *dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoiceByID applies a shallow patch and recomputes totals.
	UpdateInvoiceByID(ctx context.Context, ownerID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)

	// MarkInvoicePaid is idempotent.
	MarkInvoicePaid(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)

	// MarkOverdueInvoices moves every pending invoice past its due date to overdue.
	MarkOverdueInvoices(ctx context.Context) (int64, error)

	DeleteInvoiceByNumber(ctx context.Context, ownerID string, clientID string, invoiceNumber string) error
}

// InvoiceDeliverySvc sends invoices and records payments against them
type InvoiceDeliverySvc interface {
	// SendInvoice renders the invoice as PDF and emails it to the client.
	SendInvoice(ctx context.Context, ownerID string, invoiceID string) error

	// RecordPayment stores a payment attempt; a successful payment settles the invoice.
	RecordPayment(ctx context.Context, ownerID string, invoiceID string, req *dto.RecordPaymentRequest) (*domain.Payment, *domain.Invoice, error)

	ListPayments(ctx context.Context, ownerID string, invoiceID string) ([]domain.Payment, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceDeliverySvc
}
