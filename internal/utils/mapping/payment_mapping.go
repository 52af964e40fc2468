package mapping

import (
	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		InvoiceID:   d.InvoiceID,
		ClientID:    d.ClientID,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Status:      string(d.Status),
		ProviderRef: nullString(d.ProviderRef),
		InAppRef:    d.InAppRef,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		InvoiceID:   m.InvoiceID,
		ClientID:    m.ClientID,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Status:      domain.PaymentStatus(m.Status),
		ProviderRef: m.ProviderRef.String,
		InAppRef:    m.InAppRef,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
