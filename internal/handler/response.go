package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"miklean/internal/domain"
	"miklean/internal/middleware"
)

var errorLog = logrus.StandardLogger()

// SetLogger sets the logger used for internal errors.
func SetLogger(log *logrus.Logger) {
	if log != nil {
		errorLog = log
	}
}

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondWarning sends a 200 success response that carries a warning.
func RespondWarning(c *gin.Context, data interface{}, warning string) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Warning: warning})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondAttachment sends a file download.
func RespondAttachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "validation failed"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrEstimateLocked):
		return http.StatusConflict, "ESTIMATE_LOCKED", "accepted estimates cannot be edited"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_STATUS", "operation not allowed in the current status"
	case errors.Is(err, domain.ErrNotRecurring):
		return http.StatusBadRequest, "NOT_RECURRING", "frequency does not repeat"
	case errors.Is(err, domain.ErrNoVisitsSelected):
		return http.StatusBadRequest, "NO_VISITS_SELECTED", "select at least one completed visit"
	case errors.Is(err, domain.ErrVisitNotInvoiceable):
		return http.StatusBadRequest, "VISIT_NOT_INVOICEABLE", "only completed, uninvoiced visits of this client can be invoiced"
	case errors.Is(err, domain.ErrVisitPriceMissing):
		return http.StatusBadRequest, "VISIT_PRICE_MISSING", "every invoiced visit needs a price"
	case errors.Is(err, domain.ErrClientEmailMissing):
		return http.StatusBadRequest, "CLIENT_EMAIL_MISSING", "client has no email address"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: png, jpg, gif"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDuplicateInvoiceNum):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already taken; try again"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrDeliveryFailed):
		return http.StatusBadGateway, "DELIVERY_FAILED", "message could not be delivered"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Validation errors carry every reason in details.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		errorLog.WithError(err).WithField("request_id", c.GetString(middleware.ContextKeyRequestID)).Error("internal error")
	}
	apiErr := &APIError{Code: code, Message: msg}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		apiErr.Message = verr.Error()
		apiErr.Details = verr.Reasons
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

// businessContext extracts the owning business from the request context.
// Returns false if it is missing (error response already written).
func businessContext(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing business context")
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses a UUID path parameter. Returns false if it is malformed
// (error response already written).
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
