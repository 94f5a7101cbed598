package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrValidation          = errors.New("validation failed")
	ErrEstimateLocked      = errors.New("accepted estimates cannot be edited")
	ErrInvalidTransition   = errors.New("operation not allowed in the current status")
	ErrNotRecurring        = errors.New("frequency does not repeat")
	ErrNoVisitsSelected    = errors.New("no visits selected")
	ErrVisitNotInvoiceable = errors.New("visit is not a completed, uninvoiced visit of this client")
	ErrVisitPriceMissing   = errors.New("visit has no price and no estimate price")
	ErrClientEmailMissing  = errors.New("client has no email address")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrDuplicateInvoiceNum = errors.New("invoice number already exists for this business")
	ErrDeliveryFailed      = errors.New("message delivery failed")
)

// ValidationError carries every human-readable reason an input was rejected.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Reasons []string
}

// NewValidationError builds a ValidationError from the given reasons.
func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a reason.
func (e *ValidationError) Add(reason string) {
	e.Reasons = append(e.Reasons, reason)
}

// OrNil returns nil when no reasons were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Reasons) == 0 {
		return nil
	}
	return e
}
