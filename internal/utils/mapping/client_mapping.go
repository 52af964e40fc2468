package mapping

import (
	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/payzen/payzen_backend/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:          d.ClientID,
		BusinessOwnerID:   d.BusinessOwnerID,
		ClientName:        d.ClientName,
		ClientEmail:       d.ClientEmail,
		ClientPhoneNumber: d.ClientPhoneNumber,
		ClientAddress:     d.ClientAddress,
		InvoiceSequence:   d.InvoiceSequence,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:          m.ClientID,
		BusinessOwnerID:   m.BusinessOwnerID,
		ClientName:        m.ClientName,
		ClientEmail:       m.ClientEmail,
		ClientPhoneNumber: m.ClientPhoneNumber,
		ClientAddress:     m.ClientAddress,
		InvoiceSequence:   m.InvoiceSequence,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to a slice of domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
