package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"miklean/internal/domain"
	"miklean/internal/service"
)

// PublicHandler serves the token-guarded pages shared with clients.
// A wrong id or token is reported as not found.
type PublicHandler struct {
	estimateService service.EstimateService
	invoiceService  service.InvoiceService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(estimateService service.EstimateService, invoiceService service.InvoiceService) *PublicHandler {
	return &PublicHandler{estimateService: estimateService, invoiceService: invoiceService}
}

func publicRef(c *gin.Context) (uuid.UUID, string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	token := c.Param("token")
	if err != nil || token == "" {
		HandleError(c, domain.ErrNotFound)
		return uuid.Nil, "", false
	}
	return id, token, true
}

// GetEstimate handles GET /api/v1/public/estimates/:id/:token
// @Summary View a shared estimate
// @Tags public
// @Produce json
// @Param id path string true "Estimate ID"
// @Param token path string true "Acceptance token"
// @Success 200 {object} Response{data=service.PublicEstimateView}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /public/estimates/{id}/{token} [get]
func (h *PublicHandler) GetEstimate(c *gin.Context) {
	id, token, ok := publicRef(c)
	if !ok {
		return
	}
	view, err := h.estimateService.PublicView(c.Request.Context(), id, token)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// AcceptEstimate handles POST /api/v1/public/estimates/:id/:token/accept
// @Summary Accept a shared estimate
// @Description Idempotent. already_accepted is set when the estimate had been accepted before.
// @Tags public
// @Produce json
// @Param id path string true "Estimate ID"
// @Param token path string true "Acceptance token"
// @Success 200 {object} Response{data=service.AcceptResult}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /public/estimates/{id}/{token}/accept [post]
func (h *PublicHandler) AcceptEstimate(c *gin.Context) {
	id, token, ok := publicRef(c)
	if !ok {
		return
	}
	result, err := h.estimateService.PublicAccept(c.Request.Context(), id, token)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// GetInvoice handles GET /api/v1/public/invoices/:id/:token
// @Summary View a shared invoice
// @Tags public
// @Produce json
// @Param id path string true "Invoice ID"
// @Param token path string true "Public token"
// @Success 200 {object} Response{data=service.PublicInvoiceView}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /public/invoices/{id}/{token} [get]
func (h *PublicHandler) GetInvoice(c *gin.Context) {
	id, token, ok := publicRef(c)
	if !ok {
		return
	}
	view, err := h.invoiceService.PublicView(c.Request.Context(), id, token)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}
