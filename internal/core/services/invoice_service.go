package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/payzen/payzen_backend/internal/platform/metrics"
	"github.com/payzen/payzen_backend/internal/utils"
	"github.com/payzen/payzen_backend/internal/utils/invoicepdf"
	"github.com/shopspring/decimal"
)

// paymentRefPrefix marks references generated by Payzen rather than a payment provider.
const paymentRefPrefix = "PZT-"

// maxInvoiceUpdateAttempts bounds how often a conflicting invoice write is retried.
const maxInvoiceUpdateAttempts = 3

type invoiceService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	clientRepo   portsrepo.ClientRepositoryFacade
	accountRepo  portsrepo.AccountReader
	paymentRepo  portsrepo.PaymentRepositoryFacade
	notifier     portssvc.NotificationSvc
	numberPrefix string
	vatRate      decimal.Decimal
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceNumberPrefix sets the prefix of generated invoice numbers.
func WithInvoiceNumberPrefix(prefix string) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.numberPrefix = prefix
	}
}

// WithVATRate sets the VAT rate applied to new and updated invoices.
func WithVATRate(rate decimal.Decimal) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.vatRate = rate
	}
}

// WithAccountReader enables invoice delivery, which needs the issuing account.
func WithAccountReader(repo portsrepo.AccountReader) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.accountRepo = repo
	}
}

// WithPaymentRepository enables payment recording.
func WithPaymentRepository(repo portsrepo.PaymentRepositoryFacade) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.paymentRepo = repo
	}
}

// WithInvoiceNotifier sets the service used to email invoices.
func WithInvoiceNotifier(notifier portssvc.NotificationSvc) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.notifier = notifier
	}
}

// WithInvoiceClock replaces the clock used for timestamps and due-date checks.
func WithInvoiceClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.now = now
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		numberPrefix: domain.DefaultInvoiceNumberPrefix,
		vatRate:      decimal.RequireFromString("0.075"),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func validateProducts(products []dto.ProductRequest) error {
	for i, p := range products {
		if err := requireMoneyAmount(fmt.Sprintf("products[%d].amount", i), p.Amount); err != nil {
			return err
		}
	}
	return nil
}

// getOwnedClient loads a client and hides it from every owner but its own.
func (s *invoiceService) getOwnedClient(ctx context.Context, ownerID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.BusinessOwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

func (s *invoiceService) getOwnedInvoice(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	if _, err := uuid.Parse(invoiceID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	if invoice.BusinessOwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID string, req *dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", apperrors.ErrValidation)
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := validateProducts(req.Products); err != nil {
		return nil, err
	}

	client, err := s.getOwnedClient(ctx, ownerID, req.ClientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load client for invoice", slog.String("client_id", req.ClientID))
		}
		return nil, err
	}

	// From here on the number is spent, whether or not the invoice is saved.
	sequence, err := s.clientRepo.NextInvoiceSequence(ctx, client.ClientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reserve invoice number", slog.String("client_id", client.ClientID))
		return nil, err
	}

	now := s.Now()
	invoice := domain.Invoice{
		InvoiceID:       uuid.NewString(),
		ClientID:        client.ClientID,
		BusinessOwnerID: ownerID,
		InvoiceNumber:   domain.FormatInvoiceNumber(s.numberPrefix, sequence),
		Sequence:        sequence,
		Products:        dto.ToDomainProducts(req.Products),
		VATRate:         s.vatRate,
		DueDate:         req.DueDate.UTC(),
		Status:          domain.InvoiceStatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	invoice.ApplyTotals()

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		metrics.InvoiceNumbersBurnt.Inc()
		s.LogError(ctx, err, "Invoice number reserved but invoice not saved",
			slog.String("client_id", client.ClientID),
			slog.Int64("sequence", sequence),
			slog.String("invoice_number", invoice.InvoiceNumber))
		return nil, fmt.Errorf("failed to save invoice %s: %w: %w", invoice.InvoiceNumber, apperrors.ErrUpstream, err)
	}

	metrics.InvoicesCreated.Inc()
	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	return s.getOwnedInvoice(ctx, ownerID, invoiceID)
}

// findInvoices runs filter for ownerID. Query failures surface as ErrNotFound.
func (s *invoiceService) findInvoices(ctx context.Context, ownerID string, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	filter.BusinessOwnerID = ownerID
	invoices, err := s.invoiceRepo.FindInvoices(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to query invoices",
			slog.String("owner_id", ownerID),
			slog.String("client_id", filter.ClientID),
			slog.String("status", string(filter.Status)))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNotFound, err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{})
}

func (s *invoiceService) GetClientInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{ClientID: clientID})
}

func (s *invoiceService) GetPaidInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{Status: domain.InvoiceStatusPaid})
}

func (s *invoiceService) GetUnpaidInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{Status: domain.InvoiceStatusPending})
}

func (s *invoiceService) GetOverdueInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{Status: domain.InvoiceStatusOverdue})
}

func (s *invoiceService) GetClientPaidInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{ClientID: clientID, Status: domain.InvoiceStatusPaid})
}

func (s *invoiceService) GetClientUnpaidInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{ClientID: clientID, Status: domain.InvoiceStatusPending})
}

func (s *invoiceService) GetClientOverdueInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{ClientID: clientID, Status: domain.InvoiceStatusOverdue})
}

func (s *invoiceService) GetDueInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	now := s.Now()
	return s.findInvoices(ctx, ownerID, domain.InvoiceFilter{Status: domain.InvoiceStatusPending, DueOnOrAfter: &now})
}

func (s *invoiceService) GetInvoiceCount(ctx context.Context) (int64, error) {
	count, err := s.invoiceRepo.EstimateInvoiceCount(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to estimate invoice count")
		return 0, err
	}
	return count, nil
}

// invoiceMutation edits a freshly read invoice in place. It reports false when the
// invoice is already in the wanted state and nothing needs writing.
type invoiceMutation func(invoice *domain.Invoice) (bool, error)

// applyInvoiceMutation writes mutate's result with an optimistic version check. When a
// concurrent writer (another request or the overdue sweep) got there first, the invoice is
// re-read and mutate runs again on the new state, so transition rules see the latest status.
func (s *invoiceService) applyInvoiceMutation(ctx context.Context, ownerID string, invoice *domain.Invoice, mutate invoiceMutation) (*domain.Invoice, error) {
	for attempt := 1; ; attempt++ {
		expected := invoice.Version()
		write, err := mutate(invoice)
		if err != nil || !write {
			return invoice, err
		}
		invoice.LastUpdatedAt = s.Now()

		err = s.invoiceRepo.UpdateInvoice(ctx, *invoice, expected)
		if err == nil {
			return invoice, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) || attempt == maxInvoiceUpdateAttempts {
			return nil, err
		}
		s.LogDebug(ctx, "Invoice changed concurrently, retrying",
			slog.String("invoice_id", invoice.InvoiceID),
			slog.Int("attempt", attempt))

		if invoice, err = s.getOwnedInvoice(ctx, ownerID, invoice.InvoiceID); err != nil {
			return nil, err
		}
	}
}

func (s *invoiceService) UpdateInvoiceByID(ctx context.Context, ownerID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Products != nil {
		if err := validateProducts(*req.Products); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil && req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: dueDate cannot be empty", apperrors.ErrValidation)
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *req.Status)
	}

	invoice, err := s.getOwnedInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	updated, err := s.applyInvoiceMutation(ctx, ownerID, invoice, func(invoice *domain.Invoice) (bool, error) {
		if req.Status != nil {
			if next := *req.Status; !invoice.Status.CanTransitionTo(next) {
				return false, fmt.Errorf("%w: invoice cannot move from %s to %s", apperrors.ErrConflict, invoice.Status, next)
			}
			invoice.Status = *req.Status
		}
		if req.Products != nil {
			invoice.Products = dto.ToDomainProducts(*req.Products)
			invoice.VATRate = s.vatRate
			invoice.ApplyTotals()
		}
		if req.DueDate != nil {
			invoice.DueDate = req.DueDate.UTC()
		}
		return true, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return updated, nil
}

func (s *invoiceService) MarkInvoicePaid(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.getOwnedInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	paid, err := s.applyInvoiceMutation(ctx, ownerID, invoice, func(invoice *domain.Invoice) (bool, error) {
		if invoice.Status == domain.InvoiceStatusPaid {
			return false, nil
		}
		invoice.Status = domain.InvoiceStatusPaid
		return true, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to mark invoice paid", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	s.LogInfo(ctx, "Invoice marked paid", slog.String("invoice_id", invoiceID))
	return paid, nil
}

func (s *invoiceService) MarkOverdueInvoices(ctx context.Context) (int64, error) {
	count, err := s.invoiceRepo.MarkOverdue(ctx, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue invoices")
		return 0, err
	}
	if count > 0 {
		metrics.InvoicesMarkedOverdue.Add(float64(count))
		s.LogInfo(ctx, "Marked invoices overdue", slog.Int64("count", count))
	}
	return count, nil
}

func (s *invoiceService) DeleteInvoiceByNumber(ctx context.Context, ownerID string, clientID string, invoiceNumber string) error {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
	}
	invoice, err := s.invoiceRepo.FindInvoiceByNumber(ctx, clientID, invoiceNumber)
	if err != nil {
		return err
	}
	if invoice.BusinessOwnerID != ownerID {
		return apperrors.ErrNotFound
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoice.InvoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoice.InvoiceID))
		return err
	}
	s.LogInfo(ctx, "Invoice deleted",
		slog.String("client_id", clientID),
		slog.String("invoice_number", invoiceNumber))
	return nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, ownerID string, invoiceID string) error {
	if s.notifier == nil || s.accountRepo == nil {
		return fmt.Errorf("%w: invoice delivery is not configured", apperrors.ErrUpstream)
	}
	invoice, err := s.getOwnedInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}
	client, err := s.getOwnedClient(ctx, ownerID, invoice.ClientID)
	if err != nil {
		return err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, ownerID)
	if err != nil {
		return err
	}

	pdf, err := invoicepdf.Render(*account, *client, *invoice)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice PDF", slog.String("invoice_id", invoiceID))
		return err
	}
	return s.notifier.SendInvoiceEmail(ctx, account, client, invoice, pdf)
}

func (s *invoiceService) RecordPayment(ctx context.Context, ownerID string, invoiceID string, req *dto.RecordPaymentRequest) (*domain.Payment, *domain.Invoice, error) {
	if s.paymentRepo == nil {
		return nil, nil, fmt.Errorf("%w: payments are not configured", apperrors.ErrUpstream)
	}
	if req == nil {
		return nil, nil, fmt.Errorf("%w: request body is required", apperrors.ErrValidation)
	}
	if err := validateStruct(req); err != nil {
		return nil, nil, err
	}
	if !req.Status.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, req.Status)
	}
	if err := requireMoneyAmount("amount", req.Amount); err != nil {
		return nil, nil, err
	}

	invoice, err := s.getOwnedInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if invoice.Status == domain.InvoiceStatusPaid {
		return nil, nil, fmt.Errorf("%w: invoice %s is already paid", apperrors.ErrConflict, invoice.InvoiceNumber)
	}

	ref, err := utils.GenerateReference(paymentRefPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate payment reference: %w", err)
	}
	now := s.Now()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		InvoiceID:   invoice.InvoiceID,
		ClientID:    invoice.ClientID,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(req.Currency),
		Status:      req.Status,
		ProviderRef: strings.TrimSpace(req.ProviderRef),
		InAppRef:    ref,
		CreatedAt:   now,
	}
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("invoice_id", invoiceID))
		return nil, nil, err
	}

	updated, err := s.applyInvoiceMutation(ctx, ownerID, invoice, func(invoice *domain.Invoice) (bool, error) {
		invoice.PaymentAttempts++
		if payment.Status == domain.PaymentStatusSuccess {
			invoice.Status = domain.InvoiceStatusPaid
		}
		return true, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Payment saved but invoice not updated",
			slog.String("invoice_id", invoiceID),
			slog.String("payment_id", payment.PaymentID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(payment.Status)),
		slog.String("in_app_ref", payment.InAppRef))
	return &payment, updated, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, ownerID string, invoiceID string) ([]domain.Payment, error) {
	if s.paymentRepo == nil {
		return nil, fmt.Errorf("%w: payments are not configured", apperrors.ErrUpstream)
	}
	if _, err := s.getOwnedInvoice(ctx, ownerID, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}
