package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strings"

	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/platform/metrics"
)

const (
	verifyEmailPath   = "/api/v1/auth/verify-email"
	resetPasswordPath = "/api/v1/auth/reset-password"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "verify"}}<p>Hello {{.Name}},</p>
<p>Please confirm your email address to activate your Payzen account.</p>
<p><a href="{{.Link}}">Verify email</a></p>
<p>If you did not create an account you can ignore this message.</p>{{end}}

{{define "reset"}}<p>Hello {{.Name}},</p>
<p>We received a request to reset your password. The link below expires shortly.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If you did not request a reset you can ignore this message.</p>{{end}}

{{define "invoice"}}<p>Hello {{.ClientName}},</p>
<p>{{.BusinessName}} has sent you invoice <strong>{{.InvoiceNumber}}</strong> for {{.GrandTotal}}, due on {{.DueDate}}.</p>
<p>The invoice is attached as a PDF.</p>{{end}}
`))

type notificationService struct {
	BaseService
	sender           portssvc.EmailSender
	baseURL          string
	resetPasswordURL string
}

type NotificationOption func(*notificationService)

// WithResetPasswordURL points reset emails at a front-end page instead of the API route.
func WithResetPasswordURL(u string) NotificationOption {
	return func(s *notificationService) {
		if u != "" {
			s.resetPasswordURL = u
		}
	}
}

// NewNotificationService creates a notification service whose links point at baseURL.
func NewNotificationService(sender portssvc.EmailSender, baseURL string, opts ...NotificationOption) portssvc.NotificationSvc {
	s := &notificationService{sender: sender, baseURL: baseURL, resetPasswordURL: baseURL + resetPasswordPath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.NotificationSvc = (*notificationService)(nil)

func tokenLink(target, token string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "token=" + url.QueryEscape(token)
}

func (s *notificationService) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	return buf.String(), nil
}

func (s *notificationService) send(ctx context.Context, kind string, msg domain.EmailMessage) error {
	err := s.sender.Send(ctx, msg)
	metrics.EmailsSent.WithLabelValues(kind, metrics.Outcome(err)).Inc()
	if err != nil {
		s.LogError(ctx, err, "Failed to send email", slog.String("kind", kind))
		return err
	}
	s.LogDebug(ctx, "Email sent", slog.String("kind", kind))
	return nil
}

func (s *notificationService) SendVerificationEmail(ctx context.Context, account *domain.Account, token string) error {
	if account == nil {
		return fmt.Errorf("%w: account is required", apperrors.ErrValidation)
	}
	link := tokenLink(s.baseURL+verifyEmailPath, token)
	html, err := s.render("verify", map[string]string{"Name": account.BusinessName, "Link": link})
	if err != nil {
		return err
	}
	return s.send(ctx, "verify_email", domain.EmailMessage{
		To:       account.Email,
		Subject:  "Verify Email",
		HTMLBody: html,
		TextBody: "Verify your email address: " + link,
	})
}

func (s *notificationService) SendResetPasswordEmail(ctx context.Context, account *domain.Account, token string) error {
	if account == nil {
		return fmt.Errorf("%w: account is required", apperrors.ErrValidation)
	}
	link := tokenLink(s.resetPasswordURL, token)
	html, err := s.render("reset", map[string]string{"Name": account.BusinessName, "Link": link})
	if err != nil {
		return err
	}
	return s.send(ctx, "reset_password", domain.EmailMessage{
		To:       account.Email,
		Subject:  "Reset Password",
		HTMLBody: html,
		TextBody: "Reset your password: " + link,
	})
}

func (s *notificationService) SendInvoiceEmail(ctx context.Context, account *domain.Account, client *domain.Client, invoice *domain.Invoice, pdf []byte) error {
	if account == nil || client == nil || invoice == nil {
		return fmt.Errorf("%w: account, client and invoice are required", apperrors.ErrValidation)
	}
	data := map[string]string{
		"ClientName":    client.ClientName,
		"BusinessName":  account.BusinessName,
		"InvoiceNumber": invoice.InvoiceNumber,
		"GrandTotal":    invoice.GrandTotal.StringFixed(2),
		"DueDate":       invoice.DueDate.Format("02 Jan 2006"),
	}
	html, err := s.render("invoice", data)
	if err != nil {
		return err
	}
	msg := domain.EmailMessage{
		To:       client.ClientEmail,
		Subject:  fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, account.BusinessName),
		HTMLBody: html,
		TextBody: fmt.Sprintf("Invoice %s for %s is due on %s.", invoice.InvoiceNumber, data["GrandTotal"], data["DueDate"]),
	}
	if len(pdf) > 0 {
		msg.Attachments = []domain.EmailAttachment{{
			Filename:    invoice.InvoiceNumber + ".pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		}}
	}
	return s.send(ctx, "invoice", msg)
}
