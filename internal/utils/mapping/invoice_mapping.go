package mapping

import (
	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	products := make([]models.InvoiceProduct, len(d.Products))
	for i, p := range d.Products {
		products[i] = models.InvoiceProduct{Name: p.Name, Amount: p.Amount, Quantity: p.Quantity}
	}
	return models.Invoice{
		InvoiceID:       d.InvoiceID,
		ClientID:        d.ClientID,
		BusinessOwnerID: d.BusinessOwnerID,
		InvoiceNumber:   d.InvoiceNumber,
		Sequence:        d.Sequence,
		Products:        products,
		Subtotal:        d.Subtotal,
		VATRate:         d.VATRate,
		VAT:             d.VAT,
		GrandTotal:      d.GrandTotal,
		DueDate:         d.DueDate,
		Status:          string(d.Status),
		PaymentAttempts: d.PaymentAttempts,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	products := make([]domain.Product, len(m.Products))
	for i, p := range m.Products {
		products[i] = domain.Product{Name: p.Name, Amount: p.Amount, Quantity: p.Quantity}
	}
	return domain.Invoice{
		InvoiceID:       m.InvoiceID,
		ClientID:        m.ClientID,
		BusinessOwnerID: m.BusinessOwnerID,
		InvoiceNumber:   m.InvoiceNumber,
		Sequence:        m.Sequence,
		Products:        products,
		Subtotal:        m.Subtotal,
		VATRate:         m.VATRate,
		VAT:             m.VAT,
		GrandTotal:      m.GrandTotal,
		DueDate:         m.DueDate,
		Status:          domain.InvoiceStatus(m.Status),
		PaymentAttempts: m.PaymentAttempts,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
