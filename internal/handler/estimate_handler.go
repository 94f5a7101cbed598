package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"miklean/internal/domain"
	"miklean/internal/service"
)

// EstimateHandler handles estimate endpoints.
type EstimateHandler struct {
	estimateService service.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(estimateService service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

func (r *EstimateRequest) toInput(businessID, clientID uuid.UUID) *service.EstimateInput {
	return &service.EstimateInput{
		BusinessID:      businessID,
		ClientID:        clientID,
		Description:     r.Description,
		PricePerVisit:   r.PricePerVisit,
		Frequency:       domain.Frequency(r.Frequency),
		PreferredDay:    r.PreferredDay,
		PreferredTime:   r.PreferredTime,
		ShowMonthlyRate: r.ShowMonthlyRate,
	}
}

// Create handles POST /api/v1/clients/:id/estimates
// @Summary Create an estimate
// @Tags estimates
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param body body EstimateRequest true "Estimate"
// @Success 201 {object} Response{data=domain.Estimate}
// @Failure 400 {object} ErrorResponseBody "Validation failed"
// @Failure 404 {object} ErrorResponseBody "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/estimates [post]
func (h *EstimateHandler) Create(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	estimate, err := h.estimateService.Create(c.Request.Context(), req.toInput(businessID, clientID))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, estimate)
}

// ListByClient handles GET /api/v1/clients/:id/estimates
// @Summary List a client's estimates
// @Tags estimates
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Response{data=[]domain.Estimate}
// @Security BearerAuth
// @Router /clients/{id}/estimates [get]
func (h *EstimateHandler) ListByClient(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	estimates, err := h.estimateService.ListByClient(c.Request.Context(), businessID, clientID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, estimates)
}

// Get handles GET /api/v1/estimates/:id
// @Summary Get an estimate
// @Tags estimates
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} Response{data=service.EstimateView}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /estimates/{id} [get]
func (h *EstimateHandler) Get(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	estimateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.estimateService.Get(c.Request.Context(), businessID, estimateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Update handles PUT /api/v1/estimates/:id
// @Summary Update an estimate
// @Description Only draft and sent estimates can be edited
// @Tags estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Param body body EstimateRequest true "Estimate"
// @Success 200 {object} Response{data=domain.Estimate}
// @Failure 400 {object} ErrorResponseBody "Validation failed"
// @Failure 409 {object} ErrorResponseBody "Estimate already accepted"
// @Security BearerAuth
// @Router /estimates/{id} [put]
func (h *EstimateHandler) Update(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	estimateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	estimate, err := h.estimateService.Update(c.Request.Context(), estimateID, req.toInput(businessID, uuid.Nil))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, estimate)
}

// Send handles POST /api/v1/estimates/:id/send
// @Summary Send an estimate link
// @Description Delivers the acceptance link by email or text and marks the estimate sent
// @Tags estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Param body body SendRequest true "Delivery method"
// @Success 200 {object} Response{data=service.SendResult}
// @Failure 400 {object} ErrorResponseBody "Invalid method or client has no email"
// @Failure 502 {object} ErrorResponseBody "Delivery failed"
// @Security BearerAuth
// @Router /estimates/{id}/send [post]
func (h *EstimateHandler) Send(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	estimateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.estimateService.Send(c.Request.Context(), &service.SendInput{
		BusinessID: businessID,
		ID:         estimateID,
		Method:     domain.SendMethod(req.Method),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Accept handles POST /api/v1/estimates/:id/accept
// @Summary Accept an estimate on the client's behalf
// @Tags estimates
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} Response{data=service.AcceptResult}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /estimates/{id}/accept [post]
func (h *EstimateHandler) Accept(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	estimateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	result, err := h.estimateService.Accept(c.Request.Context(), businessID, estimateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// PDF handles GET /api/v1/estimates/:id/pdf
// @Summary Download an estimate PDF
// @Tags estimates
// @Produce application/pdf
// @Param id path string true "Estimate ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /estimates/{id}/pdf [get]
func (h *EstimateHandler) PDF(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	estimateID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.estimateService.RenderPDF(c.Request.Context(), businessID, estimateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAttachment(c, doc.Filename, doc.ContentType, doc.Body)
}
