package services

import (
	"context"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// EmailSender delivers a composed email.
type EmailSender interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// NotificationSvc composes and sends account and invoice emails
type NotificationSvc interface {
	SendVerificationEmail(ctx context.Context, account *domain.Account, token string) error
	SendResetPasswordEmail(ctx context.Context, account *domain.Account, token string) error

	// SendInvoiceEmail mails the invoice to the client with the PDF attached.
	SendInvoiceEmail(ctx context.Context, account *domain.Account, client *domain.Client, invoice *domain.Invoice, pdf []byte) error
}
