package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the outcome of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusSuccess PaymentStatus = "success"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusFailed, PaymentStatusSuccess:
		return true
	}
	return false
}

// Payment records one attempt to settle an invoice.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	InvoiceID   string          `json:"invoiceID"`
	ClientID    string          `json:"clientID"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      PaymentStatus   `json:"status"`
	ProviderRef string          `json:"providerRef,omitempty"`
	InAppRef    string          `json:"inAppRef"`
	CreatedAt   time.Time       `json:"createdAt"`
}
