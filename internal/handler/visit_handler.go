package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"miklean/internal/domain"
	"miklean/internal/export"
	"miklean/internal/service"
)

// VisitHandler handles visit scheduling endpoints.
type VisitHandler struct {
	visitService service.VisitService
	clock        service.Clock
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(visitService service.VisitService, clock service.Clock) *VisitHandler {
	return &VisitHandler{visitService: visitService, clock: clock}
}

// Schedule handles POST /api/v1/clients/:id/visits
// @Summary Schedule visits for a client
// @Description Creates one visit, or the first rolling window of a recurring series
// @Tags visits
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param body body ScheduleVisitsRequest true "Schedule"
// @Success 201 {object} Response{data=service.ScheduleResult}
// @Failure 400 {object} ErrorResponseBody "Validation failed"
// @Failure 404 {object} ErrorResponseBody "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/visits [post]
func (h *VisitHandler) Schedule(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req ScheduleVisitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.visitService.Schedule(c.Request.Context(), &service.ScheduleVisitsInput{
		BusinessID: businessID,
		ClientID:   clientID,
		Mode:       domain.ScheduleMode(req.Mode),
		StartDate:  req.StartDate,
		Frequency:  domain.Frequency(req.Frequency),
		Time:       req.Time,
		Price:      req.Price,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Get handles GET /api/v1/visits/:id
// @Summary Get a visit
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} Response{data=domain.VisitDetail}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /visits/{id} [get]
func (h *VisitHandler) Get(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	visitID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	visit, err := h.visitService.GetByID(c.Request.Context(), businessID, visitID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, visit)
}

// Complete handles POST /api/v1/visits/:id/complete
// @Summary Complete a visit
// @Description Completes a scheduled visit. For recurring visits the rolling window is refilled; if that fails the completion stands and a warning is returned.
// @Tags visits
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Param body body CompleteVisitRequest false "Completion notes"
// @Success 200 {object} Response{data=service.CompleteResult}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Failure 409 {object} ErrorResponseBody "Visit is not scheduled"
// @Security BearerAuth
// @Router /visits/{id}/complete [post]
func (h *VisitHandler) Complete(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	visitID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req CompleteVisitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	result, err := h.visitService.Complete(c.Request.Context(), businessID, visitID, req.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}
	if result.Warning != "" {
		RespondWarning(c, result, result.Warning)
		return
	}
	RespondOK(c, result)
}

// Cancel handles POST /api/v1/visits/:id/cancel
// @Summary Cancel a visit
// @Description Cancels a scheduled visit. The rolling window is not refilled.
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Failure 409 {object} ErrorResponseBody "Visit is not scheduled"
// @Security BearerAuth
// @Router /visits/{id}/cancel [post]
func (h *VisitHandler) Cancel(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	visitID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.visitService.Cancel(c.Request.Context(), businessID, visitID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "visit cancelled"})
}

// Reschedule handles PUT /api/v1/visits/:id/reschedule
// @Summary Reschedule a visit
// @Tags visits
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Param body body RescheduleVisitRequest true "New date and time"
// @Success 200 {object} Response{data=domain.Visit}
// @Failure 400 {object} ErrorResponseBody "Validation failed"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /visits/{id}/reschedule [put]
func (h *VisitHandler) Reschedule(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	visitID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req RescheduleVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	visit, err := h.visitService.Reschedule(c.Request.Context(), &service.RescheduleVisitInput{
		BusinessID: businessID,
		VisitID:    visitID,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, visit)
}

// Today handles GET /api/v1/visits/today
// @Summary Today's visits
// @Tags visits
// @Produce json
// @Success 200 {object} Response{data=[]domain.VisitDetail}
// @Security BearerAuth
// @Router /visits/today [get]
func (h *VisitHandler) Today(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	visits, err := h.visitService.Today(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, visits)
}

// Calendar handles GET /api/v1/visits/calendar
// @Summary Month calendar
// @Description Non-cancelled visits of a month grouped by date
// @Tags visits
// @Produce json
// @Param month query string false "Month as YYYY-MM (default: current month)"
// @Success 200 {object} Response{data=service.CalendarMonth}
// @Failure 400 {object} ErrorResponseBody "Invalid month"
// @Security BearerAuth
// @Router /visits/calendar [get]
func (h *VisitHandler) Calendar(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	day := h.clock.Today()
	if month := c.Query("month"); month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_MONTH", "month must be YYYY-MM")
			return
		}
		day = domain.DateOf(t)
	}

	cal, err := h.visitService.Calendar(c.Request.Context(), businessID, day)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cal)
}

// ExportCSV handles GET /api/v1/visits/export
// @Summary Export visits as CSV
// @Tags visits
// @Produce text/csv
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Invalid range"
// @Security BearerAuth
// @Router /visits/export [get]
func (h *VisitHandler) ExportCSV(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	from, errFrom := domain.ParseDate(c.Query("from"))
	to, errTo := domain.ParseDate(c.Query("to"))
	if errFrom != nil || errTo != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_RANGE", "from and to must be dates (YYYY-MM-DD)")
		return
	}

	var buf bytes.Buffer
	if err := h.visitService.ExportCSV(c.Request.Context(), businessID, from, to, &buf); err != nil {
		HandleError(c, err)
		return
	}
	RespondAttachment(c, export.BuildFilename("visits", "csv", h.clock()), "text/csv; charset=utf-8", buf.Bytes())
}
