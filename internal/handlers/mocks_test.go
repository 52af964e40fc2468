package handlers_test

import (
	"context"
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueToken(ctx context.Context, accountID string, tokenType domain.TokenType, ttl time.Duration) (domain.IssuedToken, error) {
	args := m.Called(ctx, accountID, tokenType, ttl)
	return args.Get(0).(domain.IssuedToken), args.Error(1)
}
func (m *MockTokenService) PersistToken(ctx context.Context, accountID string, tokenType domain.TokenType, issued domain.IssuedToken) error {
	return m.Called(ctx, accountID, tokenType, issued).Error(0)
}
func (m *MockTokenService) GenerateAuthTokens(ctx context.Context, accountID string) (*domain.AuthTokens, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthTokens), args.Error(1)
}
func (m *MockTokenService) VerifyToken(ctx context.Context, token string, tokenType domain.TokenType) (*domain.Token, error) {
	args := m.Called(ctx, token, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}
func (m *MockTokenService) VerifyAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
func (m *MockTokenService) ConsumeToken(ctx context.Context, record *domain.Token) error {
	return m.Called(ctx, record).Error(0)
}
func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) MarkEmailVerified(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdatePassword(ctx context.Context, accountID string, newPassword string) error {
	return m.Called(ctx, accountID, newPassword).Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, email string, password string) (*domain.Account, *domain.AuthTokens, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(*domain.AuthTokens), args.Error(2)
}
func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockAuthService) CheckResetToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockAuthService) ResetPassword(ctx context.Context, token string, newPassword string) (*domain.AuthTokens, error) {
	args := m.Called(ctx, token, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthTokens), args.Error(1)
}
func (m *MockAuthService) RefreshAuth(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthTokens), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, ownerID string, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) GetClientByEmail(ctx context.Context, ownerID string, email string) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) QueryClients(ctx context.Context, ownerID string, q dto.ClientQuery) (*domain.PagedResult[domain.Client], error) {
	args := m.Called(ctx, ownerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PagedResult[domain.Client]), args.Error(1)
}
func (m *MockClientService) CreateClient(ctx context.Context, ownerID string, req *dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) UpdateClient(ctx context.Context, ownerID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, ownerID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) DeleteClient(ctx context.Context, ownerID string, clientID string) error {
	return m.Called(ctx, ownerID, clientID).Error(0)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) invoices(args mock.Arguments) ([]domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, invoiceID))
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID))
}
func (m *MockInvoiceService) GetClientInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID, clientID))
}
func (m *MockInvoiceService) GetPaidInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID))
}
func (m *MockInvoiceService) GetUnpaidInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID))
}
func (m *MockInvoiceService) GetOverdueInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID))
}
func (m *MockInvoiceService) GetClientPaidInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID, clientID))
}
func (m *MockInvoiceService) GetClientUnpaidInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID, clientID))
}
func (m *MockInvoiceService) GetClientOverdueInvoices(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID, clientID))
}
func (m *MockInvoiceService) GetDueInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	return m.invoices(m.Called(ctx, ownerID))
}
func (m *MockInvoiceService) GetInvoiceCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, ownerID string, req *dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, req))
}
func (m *MockInvoiceService) UpdateInvoiceByID(ctx context.Context, ownerID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, invoiceID, req))
}
func (m *MockInvoiceService) MarkInvoicePaid(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, ownerID, invoiceID))
}
func (m *MockInvoiceService) MarkOverdueInvoices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockInvoiceService) DeleteInvoiceByNumber(ctx context.Context, ownerID string, clientID string, invoiceNumber string) error {
	return m.Called(ctx, ownerID, clientID, invoiceNumber).Error(0)
}
func (m *MockInvoiceService) SendInvoice(ctx context.Context, ownerID string, invoiceID string) error {
	return m.Called(ctx, ownerID, invoiceID).Error(0)
}
func (m *MockInvoiceService) RecordPayment(ctx context.Context, ownerID string, invoiceID string, req *dto.RecordPaymentRequest) (*domain.Payment, *domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.Invoice), args.Error(2)
}
func (m *MockInvoiceService) ListPayments(ctx context.Context, ownerID string, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)
