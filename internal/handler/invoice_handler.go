package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"miklean/internal/domain"
	"miklean/internal/export"
	"miklean/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler handles invoicing endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	clock          service.Clock
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, clock service.Clock) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, clock: clock}
}

// Uninvoiced handles GET /api/v1/clients/:id/uninvoiced-visits
// @Summary Completed visits not yet invoiced
// @Tags invoices
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Response{data=[]service.LineItem}
// @Failure 404 {object} ErrorResponseBody "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/uninvoiced-visits [get]
func (h *InvoiceHandler) Uninvoiced(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	items, err := h.invoiceService.Uninvoiced(c.Request.Context(), businessID, clientID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, items)
}

// Create handles POST /api/v1/clients/:id/invoices
// @Summary Invoice completed visits
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param body body CreateInvoiceRequest true "Visits to invoice"
// @Success 201 {object} Response{data=domain.Invoice}
// @Failure 400 {object} ErrorResponseBody "No visits, ineligible or unpriced visit"
// @Failure 404 {object} ErrorResponseBody "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	visitIDs := make([]uuid.UUID, 0, len(req.VisitIDs))
	for _, raw := range req.VisitIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid visit id: "+raw)
			return
		}
		visitIDs = append(visitIDs, id)
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), &service.CreateInvoiceInput{
		BusinessID: businessID,
		ClientID:   clientID,
		VisitIDs:   visitIDs,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, invoice)
}

// ListByClient handles GET /api/v1/clients/:id/invoices
// @Summary List a client's invoices
// @Tags invoices
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Response{data=[]domain.Invoice}
// @Security BearerAuth
// @Router /clients/{id}/invoices [get]
func (h *InvoiceHandler) ListByClient(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	invoices, err := h.invoiceService.ListByClient(c.Request.Context(), businessID, clientID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoices)
}

// List handles GET /api/v1/invoices
// @Summary List all invoices
// @Tags invoices
// @Produce json
// @Success 200 {object} Response{data=[]domain.InvoiceDetail}
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	invoices, err := h.invoiceService.ListAll(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoices)
}

// Get handles GET /api/v1/invoices/:id
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=service.InvoiceView}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.invoiceService.Get(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Send handles POST /api/v1/invoices/:id/send
// @Summary Send an invoice link
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param body body SendRequest true "Delivery method"
// @Success 200 {object} Response{data=service.SendResult}
// @Failure 400 {object} ErrorResponseBody "Invalid method or client has no email"
// @Failure 502 {object} ErrorResponseBody "Delivery failed"
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.invoiceService.Send(c.Request.Context(), &service.SendInput{
		BusinessID: businessID,
		ID:         invoiceID,
		Method:     domain.SendMethod(req.Method),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// MarkPaid handles POST /api/v1/invoices/:id/mark-paid
// @Summary Mark an invoice paid
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.invoiceService.MarkPaid(c.Request.Context(), businessID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "invoice marked paid"})
}

// PDF handles GET /api/v1/invoices/:id/pdf
// @Summary Download an invoice PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.invoiceService.RenderPDF(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAttachment(c, doc.Filename, doc.ContentType, doc.Body)
}

// ExportWorkbook handles GET /api/v1/invoices/export
// @Summary Export invoices as a spreadsheet
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *InvoiceHandler) ExportWorkbook(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.invoiceService.ExportWorkbook(c.Request.Context(), businessID, &buf); err != nil {
		HandleError(c, err)
		return
	}
	RespondAttachment(c, export.BuildFilename("invoices", "xlsx", h.clock()), xlsxContentType, buf.Bytes())
}
