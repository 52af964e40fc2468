package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payzen/payzen_backend/internal/core/domain"
	portssvc "github.com/payzen/payzen_backend/internal/core/ports/services"
	"github.com/payzen/payzen_backend/internal/dto"
	"github.com/payzen/payzen_backend/internal/middleware"
	"github.com/payzen/payzen_backend/internal/utils"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	analytics      *utils.PosthogClientWrapper
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, analytics *utils.PosthogClientWrapper) {
	h := &invoiceHandler{invoiceService: invoiceService, analytics: analytics}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices(invoiceService.ListInvoices))
		invoices.GET("/paid", h.listInvoices(invoiceService.GetPaidInvoices))
		invoices.GET("/unpaid", h.listInvoices(invoiceService.GetUnpaidInvoices))
		invoices.GET("/overdue", h.listInvoices(invoiceService.GetOverdueInvoices))
		invoices.GET("/due", h.listInvoices(invoiceService.GetDueInvoices))
		invoices.GET("/count", h.countInvoices)
		invoices.GET("/:invoiceId", h.getInvoice)
		invoices.PATCH("/:invoiceId", h.updateInvoice)
		invoices.POST("/:invoiceId/paid", h.markPaid)
		invoices.POST("/:invoiceId/send", h.sendInvoice)
		invoices.POST("/:invoiceId/payments", h.recordPayment)
		invoices.GET("/:invoiceId/payments", h.listPayments)
	}
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}

	middleware.PosthogEvent(c, h.analytics, "invoice_created", map[string]any{
		"invoice_number": invoice.InvoiceNumber,
		"client_id":      invoice.ClientID,
		"grand_total":    invoice.GrandTotal.String(),
	})
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, invoice)
}

type invoiceLister func(ctx context.Context, ownerID string) ([]domain.Invoice, error)

func (h *invoiceHandler) listInvoices(list invoiceLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := requireAccountID(c)
		if !ok {
			return
		}
		invoices, err := list(c.Request.Context(), ownerID)
		if err != nil {
			respondError(c, err, "Failed to list invoices")
			return
		}
		c.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices))
	}
}

func (h *invoiceHandler) countInvoices(c *gin.Context) {
	count, err := h.invoiceService.GetInvoiceCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to count invoices")
		return
	}
	c.JSON(http.StatusOK, dto.InvoiceCountResponse{Count: count})
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), ownerID, c.Param("invoiceId"))
	if err != nil {
		respondError(c, err, "Failed to get invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	var req dto.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	invoice, err := h.invoiceService.UpdateInvoiceByID(c.Request.Context(), ownerID, c.Param("invoiceId"), req)
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *invoiceHandler) markPaid(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.MarkInvoicePaid(c.Request.Context(), ownerID, c.Param("invoiceId"))
	if err != nil {
		respondError(c, err, "Failed to mark invoice paid")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.SendInvoice(c.Request.Context(), ownerID, c.Param("invoiceId")); err != nil {
		respondError(c, err, "Failed to send invoice")
		return
	}
	middleware.PosthogEvent(c, h.analytics, "invoice_sent", map[string]any{"invoice_id": c.Param("invoiceId")})
	c.JSON(http.StatusAccepted, dto.MessageResponse{Message: "invoice sent"})
}

func (h *invoiceHandler) recordPayment(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), ownerID, c.Param("invoiceId"), &req)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.PaymentResponse{Payment: *payment, Invoice: *invoice})
}

func (h *invoiceHandler) listPayments(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	payments, err := h.invoiceService.ListPayments(c.Request.Context(), ownerID, c.Param("invoiceId"))
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
