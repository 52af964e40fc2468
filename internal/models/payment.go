package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row.
type Payment struct {
	PaymentID   string          `db:"payment_id"`
	InvoiceID   string          `db:"invoice_id"`
	ClientID    string          `db:"client_id"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Status      string          `db:"status"`
	ProviderRef sql.NullString  `db:"provider_ref"`
	InAppRef    string          `db:"in_app_ref"`
	CreatedAt   time.Time       `db:"created_at"`
}
