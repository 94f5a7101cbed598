package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// UpdateProfileRequest represents the profile update request body.
type UpdateProfileRequest struct {
	BusinessName        *string `json:"business_name" example:"Sparkle Cleaning Co"`
	BusinessPhone       *string `json:"business_phone" example:"(512) 555-0100"`
	PaymentInstructions *string `json:"payment_instructions" example:"Venmo: @sparkle"`
}

// PaymentMethodsRequest represents the onboarding payment step.
type PaymentMethodsRequest struct {
	Methods   []string `json:"methods" example:"venmo,cash"`
	Venmo     string   `json:"venmo" example:"@sparkle"`
	Zelle     string   `json:"zelle" example:"pay@sparkle.example"`
	OtherInfo string   `json:"other_info" example:"Payment due within 7 days"`
}

// ClientRequest represents the create and update client request body.
type ClientRequest struct {
	Name    string `json:"name" example:"Jane Doe"`
	Phone   string `json:"phone" example:"(512) 555-0199"`
	Email   string `json:"email" example:"jane@example.com"`
	Street1 string `json:"street1" example:"123 Main St"`
	Street2 string `json:"street2" example:"Apt 2"`
	City    string `json:"city" example:"Austin"`
	State   string `json:"state" example:"TX"`
	ZipCode string `json:"zip_code" example:"78701"`
	Notes   string `json:"notes" example:"Two dogs, key under the mat"`
	Type    string `json:"type" example:"client"`
}

// DeactivateClientRequest represents the deactivate client request body.
type DeactivateClientRequest struct {
	CancelVisits bool `json:"cancel_visits" example:"true"`
}

// EstimateRequest represents the create and update estimate request body.
type EstimateRequest struct {
	Description     string `json:"description" example:"Whole-home clean, 3 bed 2 bath"`
	PricePerVisit   string `json:"price_per_visit" example:"$150.00"`
	Frequency       string `json:"frequency" example:"biweekly"`
	PreferredDay    string `json:"preferred_day" example:"Tuesday"`
	PreferredTime   string `json:"preferred_time" example:"09:00"`
	ShowMonthlyRate bool   `json:"show_monthly_rate" example:"true"`
}

// SendRequest represents the send estimate or invoice request body.
type SendRequest struct {
	Method string `json:"method" binding:"required" example:"email" enums:"email,text"`
}

// ScheduleVisitsRequest represents the schedule visits request body.
type ScheduleVisitsRequest struct {
	Mode      string `json:"mode" example:"recurring" enums:"one_time,recurring"`
	StartDate string `json:"start_date" example:"2024-01-01"`
	Frequency string `json:"frequency" example:"weekly"`
	Time      string `json:"time" example:"09:30"`
	Price     string `json:"price" example:"120"`
}

// CompleteVisitRequest represents the complete visit request body.
type CompleteVisitRequest struct {
	Notes string `json:"notes" example:"Cleaned oven as requested"`
}

// RescheduleVisitRequest represents the reschedule visit request body.
type RescheduleVisitRequest struct {
	Date string `json:"date" binding:"required" example:"2024-01-09"`
	Time string `json:"time" example:"13:00"`
}

// CreateInvoiceRequest represents the create invoice request body.
type CreateInvoiceRequest struct {
	VisitIDs []string `json:"visit_ids" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// DeactivateClientResponse reports how many visits were cancelled.
type DeactivateClientResponse struct {
	CancelledVisits int64 `json:"cancelled_visits" example:"6"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
