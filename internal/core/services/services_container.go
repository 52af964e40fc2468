package services

import (
	portsrepo "github.com/payzen/payzen_backend/internal/core/ports/repositories"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, emailSender portssvc.EmailSender) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Notification = NewNotificationService(emailSender, cfg.BaseURL, WithResetPasswordURL(cfg.ResetPasswordURL))
	container.Token = NewTokenService(cfg, repos.TokenRepo, repos.AccountRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Client = NewClientService(repos.ClientRepo)

	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.ClientRepo,
		WithInvoiceNumberPrefix(cfg.InvoiceNumberPrefix),
		WithVATRate(cfg.InvoiceVATRate),
		WithAccountReader(repos.AccountRepo),
		WithPaymentRepository(repos.PaymentRepo),
		WithInvoiceNotifier(container.Notification),
	)

	// Auth orchestrates the account, token and notification services.
	container.Auth = NewAuthService(
		container.Account,
		container.Token,
		container.Notification,
		cfg.VerifyEmailTokenExpiryDuration,
		cfg.ResetPasswordTokenExpiryDuration,
	)

	return container
}
