package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceProduct is the JSON shape of one element of invoices.products.
type InvoiceProduct struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity int64           `json:"quantity"`
}

// Invoice is the invoices table row. Products is stored as JSONB.
type Invoice struct {
	InvoiceID       string           `db:"invoice_id"`
	ClientID        string           `db:"client_id"`
	BusinessOwnerID string           `db:"business_owner_id"`
	InvoiceNumber   string           `db:"invoice_number"`
	Sequence        int64            `db:"sequence"`
	Products        []InvoiceProduct `db:"products"`
	Subtotal        decimal.Decimal  `db:"subtotal"`
	VATRate         decimal.Decimal  `db:"vat_rate"`
	VAT             decimal.Decimal  `db:"vat"`
	GrandTotal      decimal.Decimal  `db:"grand_total"`
	DueDate         time.Time        `db:"due_date"`
	Status          string           `db:"status"`
	PaymentAttempts int              `db:"payment_attempts"`
	AuditFields
}
