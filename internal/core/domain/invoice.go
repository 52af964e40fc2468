package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// DefaultInvoiceNumberPrefix is prepended to the zero-padded client sequence, e.g. PZ-0001.
const DefaultInvoiceNumberPrefix = "PZ-0"

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// CanTransitionTo reports whether an invoice in status s may move to next.
// Staying in the same status is always allowed. Paid is terminal and nothing re-enters pending.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case InvoiceStatusPending:
		return next == InvoiceStatusPaid || next == InvoiceStatusOverdue
	case InvoiceStatusOverdue:
		return next == InvoiceStatusPaid
	default:
		return false
	}
}

// Product is a single invoice line.
type Product struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity int64           `json:"quantity"`
}

// LineTotal is amount times quantity.
func (p Product) LineTotal() decimal.Decimal {
	return p.Amount.Mul(decimal.NewFromInt(p.Quantity))
}

// Invoice is a billing document issued against a Client.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	ClientID        string          `json:"clientID"`
	BusinessOwnerID string          `json:"businessOwnerID"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Sequence        int64           `json:"sequence"`
	Products        []Product       `json:"products"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	VATRate         decimal.Decimal `json:"vatRate"`
	VAT             decimal.Decimal `json:"vat"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	DueDate         time.Time       `json:"dueDate"`
	Status          InvoiceStatus   `json:"status"`
	PaymentAttempts int             `json:"paymentAttempts"`
	AuditFields
}

// InvoiceVersion is the stored state an update was computed from. A write only lands
// while the row still matches it.
type InvoiceVersion struct {
	Status        InvoiceStatus
	LastUpdatedAt time.Time
}

// Version returns the invoice's current InvoiceVersion.
func (i *Invoice) Version() InvoiceVersion {
	return InvoiceVersion{Status: i.Status, LastUpdatedAt: i.LastUpdatedAt}
}

// ApplyTotals recomputes subtotal, VAT and grand total from the current products and VAT rate.
func (i *Invoice) ApplyTotals() {
	i.Subtotal, i.VAT, i.GrandTotal = CalculateTotals(i.Products, i.VATRate)
}

// CalculateTotals returns subtotal = sum(amount*quantity) and vat = vatRate*subtotal, both
// rounded to two places as they are stored, and grandTotal = subtotal + vat.
func CalculateTotals(products []Product, vatRate decimal.Decimal) (subtotal, vat, grandTotal decimal.Decimal) {
	subtotal = decimal.Zero
	for _, p := range products {
		subtotal = subtotal.Add(p.LineTotal())
	}
	subtotal = subtotal.Round(2)
	vat = subtotal.Mul(vatRate).Round(2)
	grandTotal = subtotal.Add(vat)
	return subtotal, vat, grandTotal
}

// FormatInvoiceNumber renders the human-readable invoice number for a client sequence.
func FormatInvoiceNumber(prefix string, sequence int64) string {
	if prefix == "" {
		prefix = DefaultInvoiceNumberPrefix
	}
	return fmt.Sprintf("%s%03d", prefix, sequence)
}

// InvoiceFilter narrows invoice queries. Zero values are ignored.
type InvoiceFilter struct {
	BusinessOwnerID string
	ClientID        string
	Status          InvoiceStatus
	// DueOnOrAfter keeps invoices whose due date is not before this instant.
	DueOnOrAfter *time.Time
	// DueBefore keeps invoices whose due date is strictly before this instant.
	DueBefore *time.Time
}
