package domain

import "strings"

// Client is a counterparty billed by an Account.
type Client struct {
	ClientID          string `json:"clientID"`
	BusinessOwnerID   string `json:"businessOwnerID"`
	ClientName        string `json:"clientName"`
	ClientEmail       string `json:"clientEmail"`
	ClientPhoneNumber string `json:"clientPhoneNumber"`
	ClientAddress     string `json:"clientAddress"`
	// InvoiceSequence only ever increases. It is the last number handed out, 0 before the first invoice.
	InvoiceSequence int64 `json:"invoiceSequence"`
	AuditFields
}

// ClientFullName joins first and last name the way client names are stored.
func ClientFullName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

// ClientFilter narrows client queries. Empty fields are ignored.
type ClientFilter struct {
	BusinessOwnerID string
	ClientName      string
	ClientEmail     string
}
