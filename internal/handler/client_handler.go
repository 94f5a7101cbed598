package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"miklean/internal/domain"
	"miklean/internal/service"
)

// ClientHandler handles client registry endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (r *ClientRequest) toInput(businessID uuid.UUID) *service.ClientInput {
	return &service.ClientInput{
		BusinessID: businessID,
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		Street1:    r.Street1,
		Street2:    r.Street2,
		City:       r.City,
		State:      r.State,
		ZipCode:    r.ZipCode,
		Notes:      r.Notes,
		Type:       domain.ClientType(r.Type),
	}
}

// List handles GET /api/v1/clients
// @Summary List clients
// @Description List the business's clients ordered by name, with per-type counts
// @Tags clients
// @Produce json
// @Param type query string false "Filter by type (prospect, client, inactive)"
// @Param q query string false "Search name, phone or city"
// @Success 200 {object} Response{data=service.ClientList}
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	list, err := h.clientService.List(c.Request.Context(), businessID, domain.ClientFilter{
		Type:   domain.ClientType(c.Query("type")),
		Search: c.Query("q"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, list)
}

// Create handles POST /api/v1/clients
// @Summary Add a prospect
// @Tags clients
// @Accept json
// @Produce json
// @Param body body ClientRequest true "Client details"
// @Success 201 {object} Response{data=domain.Client}
// @Failure 400 {object} ErrorResponseBody "Validation failed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req.toInput(businessID))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, client)
}

// Get handles GET /api/v1/clients/:id
// @Summary Get client detail
// @Description Client with estimates, upcoming and past visits, and recent invoices
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Response{data=service.ClientDetail}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.clientService.Detail(c.Request.Context(), businessID, clientID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

// Update handles PUT /api/v1/clients/:id
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param body body ClientRequest true "Client details"
// @Success 200 {object} Response{data=domain.Client}
// @Failure 400 {object} ErrorResponseBody "Validation failed"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), clientID, req.toInput(businessID))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, client)
}

// Convert handles POST /api/v1/clients/:id/convert
// @Summary Convert a prospect to a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /clients/{id}/convert [post]
func (h *ClientHandler) Convert(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.clientService.Convert(c.Request.Context(), businessID, clientID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "client converted"})
}

// Deactivate handles POST /api/v1/clients/:id/deactivate
// @Summary Deactivate a client
// @Description Marks the client inactive and optionally cancels its future scheduled visits
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param body body DeactivateClientRequest false "Options"
// @Success 200 {object} Response{data=DeactivateClientResponse}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /clients/{id}/deactivate [post]
func (h *ClientHandler) Deactivate(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req DeactivateClientRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	cancelled, err := h.clientService.Deactivate(c.Request.Context(), businessID, clientID, req.CancelVisits)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, DeactivateClientResponse{CancelledVisits: cancelled})
}
