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
)

// clientHandler handles HTTP requests for an owner's clients and their invoices.
type clientHandler struct {
	clientService  portssvc.ClientSvcFacade
	invoiceService portssvc.InvoiceSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade, is portssvc.InvoiceSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs, invoiceService: is}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade, invoiceService portssvc.InvoiceSvcFacade) {
	h := newClientHandler(clientService, invoiceService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.queryClients)
		clients.GET("/:clientId", h.getClient)
		clients.PATCH("/:clientId", h.updateClient)
		clients.DELETE("/:clientId", h.deleteClient)

		invoices := clients.Group("/:clientId/invoices")
		invoices.GET("", h.listClientInvoices(invoiceService.GetClientInvoices))
		invoices.GET("/paid", h.listClientInvoices(invoiceService.GetClientPaidInvoices))
		invoices.GET("/unpaid", h.listClientInvoices(invoiceService.GetClientUnpaidInvoices))
		invoices.GET("/overdue", h.listClientInvoices(invoiceService.GetClientOverdueInvoices))
		invoices.DELETE("/:invoiceNumber", h.deleteClientInvoice)
	}
}

func (h *clientHandler) createClient(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Client created", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *clientHandler) queryClients(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	var q dto.ClientQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.clientService.QueryClients(c.Request.Context(), ownerID, q)
	if err != nil {
		respondError(c, err, "Failed to query clients")
		return
	}

	include, exclude := dto.SplitFields(q.Include), dto.SplitFields(q.Exclude)
	items := make([]map[string]any, len(page.Items))
	for i := range page.Items {
		items[i] = dto.ProjectClient(dto.ToClientResponse(&page.Items[i]), include, exclude)
	}
	c.JSON(http.StatusOK, dto.ClientPageResponse{Items: items, PageInfo: page.PageInfo})
}

func (h *clientHandler) getClient(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClientByID(c.Request.Context(), ownerID, c.Param("clientId"))
	if err != nil {
		respondError(c, err, "Failed to get client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) updateClient(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.clientService.UpdateClient(c.Request.Context(), ownerID, c.Param("clientId"), req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *clientHandler) deleteClient(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(c.Request.Context(), ownerID, c.Param("clientId")); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

type clientInvoiceLister func(ctx context.Context, ownerID string, clientID string) ([]domain.Invoice, error)

func (h *clientHandler) listClientInvoices(list clientInvoiceLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := requireAccountID(c)
		if !ok {
			return
		}
		invoices, err := list(c.Request.Context(), ownerID, c.Param("clientId"))
		if err != nil {
			respondError(c, err, "Failed to list client invoices")
			return
		}
		c.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices))
	}
}

func (h *clientHandler) deleteClientInvoice(c *gin.Context) {
	ownerID, ok := requireAccountID(c)
	if !ok {
		return
	}
	err := h.invoiceService.DeleteInvoiceByNumber(c.Request.Context(), ownerID, c.Param("clientId"), c.Param("invoiceNumber"))
	if err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
