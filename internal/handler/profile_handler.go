package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miklean/internal/domain"
	"miklean/internal/middleware"
	"miklean/internal/service"
)

// ProfileHandler handles business profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles GET /api/v1/profile
// @Summary Get business profile
// @Description Returns the signed-in business profile, creating it on first access
// @Tags profile
// @Produce json
// @Success 200 {object} Response{data=domain.BusinessProfile}
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	profile, err := h.profileService.Get(c.Request.Context(), businessID, middleware.GetEmail(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}

// Update handles PUT /api/v1/profile
// @Summary Update business profile
// @Description Update business name, phone or payment instructions. Omitted fields are unchanged; empty strings clear them.
// @Tags profile
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} Response{data=domain.BusinessProfile}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), &service.UpdateProfileInput{
		BusinessID:          businessID,
		BusinessName:        req.BusinessName,
		BusinessPhone:       req.BusinessPhone,
		PaymentInstructions: req.PaymentInstructions,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}

// SetPaymentMethods handles PUT /api/v1/profile/payment-methods
// @Summary Set accepted payment methods
// @Description Builds payment instructions from the selected methods (onboarding step)
// @Tags profile
// @Accept json
// @Produce json
// @Param body body PaymentMethodsRequest true "Payment methods"
// @Success 200 {object} Response{data=domain.BusinessProfile}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /profile/payment-methods [put]
func (h *ProfileHandler) SetPaymentMethods(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}
	var req PaymentMethodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	methods := make([]domain.PaymentMethod, 0, len(req.Methods))
	for _, m := range req.Methods {
		methods = append(methods, domain.PaymentMethod(m))
	}
	profile, err := h.profileService.SetPaymentMethods(c.Request.Context(), &service.PaymentMethodsInput{
		BusinessID: businessID,
		Methods:    methods,
		Venmo:      req.Venmo,
		Zelle:      req.Zelle,
		OtherInfo:  req.OtherInfo,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}

// UploadLogo handles POST /api/v1/profile/logo
// @Summary Upload business logo
// @Description Upload a PNG, JPG or GIF logo shown on estimates and invoices
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "Logo image"
// @Success 200 {object} Response{data=domain.BusinessProfile}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /profile/logo [post]
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "logo field is required")
		return
	}
	defer func() { _ = file.Close() }()

	profile, err := h.profileService.UploadLogo(c.Request.Context(), &service.UploadLogoInput{
		BusinessID: businessID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}
