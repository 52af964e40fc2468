package models

// Client is the clients table row.
type Client struct {
	ClientID          string `db:"client_id"`
	BusinessOwnerID   string `db:"business_owner_id"`
	ClientName        string `db:"client_name"`
	ClientEmail       string `db:"client_email"`
	ClientPhoneNumber string `db:"client_phone_number"`
	ClientAddress     string `db:"client_address"`
	InvoiceSequence   int64  `db:"invoice_sequence"`
	AuditFields
}
