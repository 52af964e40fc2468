package dto

import (
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductRequest is one invoice line in a request body.
type ProductRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity int64           `json:"quantity" validate:"required,gt=0"`
}

// CreateInvoiceRequest is the body for issuing an invoice to a client.
type CreateInvoiceRequest struct {
	ClientID string           `json:"clientId" validate:"required,uuid"`
	Products []ProductRequest `json:"products" validate:"required,min=1,dive"`
	DueDate  time.Time        `json:"dueDate" validate:"required"`
}

// UpdateInvoiceRequest is a shallow patch; omitted fields keep their value.
type UpdateInvoiceRequest struct {
	Products *[]ProductRequest    `json:"products" validate:"omitempty,min=1,dive"`
	DueDate  *time.Time           `json:"dueDate"`
	Status   *domain.InvoiceStatus `json:"status"`
}

// RecordPaymentRequest records a payment attempt against an invoice.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal      `json:"amount"`
	Currency    string               `json:"currency" validate:"required,len=3,alpha"`
	Status      domain.PaymentStatus `json:"status" validate:"required"`
	ProviderRef string               `json:"providerRef" validate:"max=120"`
}

// ToDomainProducts converts request lines to domain products.
func ToDomainProducts(reqs []ProductRequest) []domain.Product {
	products := make([]domain.Product, len(reqs))
	for i, p := range reqs {
		products[i] = domain.Product{Name: p.Name, Amount: p.Amount, Quantity: p.Quantity}
	}
	return products
}

// InvoiceListResponse wraps a list of invoices.
type InvoiceListResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
	Count    int              `json:"count"`
}

// ToInvoiceListResponse wraps invoices, keeping an empty list as [] in JSON.
func ToInvoiceListResponse(invoices []domain.Invoice) InvoiceListResponse {
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return InvoiceListResponse{Invoices: invoices, Count: len(invoices)}
}

// InvoiceCountResponse carries the approximate invoice count.
type InvoiceCountResponse struct {
	Count int64 `json:"count"`
}

// PaymentResponse is returned after recording a payment.
type PaymentResponse struct {
	Payment domain.Payment `json:"payment"`
	Invoice domain.Invoice `json:"invoice"`
}
