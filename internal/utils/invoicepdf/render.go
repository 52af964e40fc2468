package invoicepdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/payzen/payzen_backend/internal/core/domain"
)

// Render produces an A4 PDF for invoice billed by account to client.
func Render(account domain.Account, client domain.Client, invoice domain.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Invoice "+invoice.InvoiceNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, tr(account.BusinessName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(account.Email), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Invoice "+invoice.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Issued: "+invoice.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Due: "+invoice.DueDate.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Status: "+string(invoice.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{client.ClientName, client.ClientEmail, client.ClientPhoneNumber, client.ClientAddress} {
		if line != "" {
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(6)

	widths := []float64{90, 25, 35, 40}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Item", "Qty", "Unit price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, p := range invoice.Products {
		pdf.CellFormat(widths[0], 7, tr(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, strconv.FormatInt(p.Quantity, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, p.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, p.LineTotal().StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	labelWidth := widths[0] + widths[1] + widths[2]
	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", invoice.Subtotal.StringFixed(2)},
		{fmt.Sprintf("VAT (%s%%)", invoice.VATRate.Shift(2).String()), invoice.VAT.StringFixed(2)},
		{"Total", invoice.GrandTotal.StringFixed(2)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Arial", "B", 10)
		}
		pdf.CellFormat(labelWidth, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, t.value, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}
