package invoicepdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	invoice := domain.Invoice{
		InvoiceNumber: "PZ-0001",
		Products: []domain.Product{
			{Name: "Cake", Amount: decimal.NewFromInt(100), Quantity: 2},
			{Name: "Bread", Amount: decimal.NewFromInt(50), Quantity: 1},
		},
		VATRate: decimal.RequireFromString("0.075"),
		DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:  domain.InvoiceStatusPending,
	}
	invoice.ApplyTotals()

	out, err := Render(
		domain.Account{BusinessName: "Sweet Treats", Email: "owner@sweet.test"},
		domain.Client{ClientName: "Ada Lovelace", ClientEmail: "ada@example.com"},
		invoice,
	)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
