package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/handler"
	"miklean/internal/service"
	"miklean/mocks"
)

func newEstimateHandler() (*handler.EstimateHandler, *mocks.MockEstimateService) {
	mockSvc := new(mocks.MockEstimateService)
	return handler.NewEstimateHandler(mockSvc), mockSvc
}

func TestEstimateHandler_Create_Success(t *testing.T) {
	h, mockSvc := newEstimateHandler()
	businessID, clientID := uuid.New(), uuid.New()

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.EstimateInput) bool {
		return in.BusinessID == businessID && in.ClientID == clientID &&
			in.PricePerVisit == "$150.00" && in.Frequency == domain.FrequencyBiweekly && in.ShowMonthlyRate
	})).Return(&domain.Estimate{ID: uuid.New(), Status: domain.EstimateStatusDraft}, nil)

	c, w := newCtx(http.MethodPost, "/", map[string]interface{}{
		"description":       "Whole-home clean",
		"price_per_visit":   "$150.00",
		"frequency":         "biweekly",
		"show_monthly_rate": true,
	}, businessID, "id", clientID.String())

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestEstimateHandler_Update_Locked(t *testing.T) {
	h, mockSvc := newEstimateHandler()
	estimateID := uuid.New()

	mockSvc.On("Update", mock.Anything, estimateID, mock.Anything).Return(nil, domain.ErrEstimateLocked)

	c, w := newCtx(http.MethodPut, "/", map[string]string{"description": "x"}, uuid.New(), "id", estimateID.String())

	h.Update(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ESTIMATE_LOCKED", decode(t, w).Error.Code)
}

func TestEstimateHandler_Send_MissingMethod(t *testing.T) {
	h, mockSvc := newEstimateHandler()

	c, w := newCtx(http.MethodPost, "/", map[string]string{}, uuid.New(), "id", uuid.New().String())

	h.Send(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestEstimateHandler_Send_DeliveryFailed(t *testing.T) {
	h, mockSvc := newEstimateHandler()
	businessID, estimateID := uuid.New(), uuid.New()

	mockSvc.On("Send", mock.Anything, &service.SendInput{
		BusinessID: businessID,
		ID:         estimateID,
		Method:     domain.SendMethodText,
	}).Return(nil, domain.ErrDeliveryFailed)

	c, w := newCtx(http.MethodPost, "/", map[string]string{"method": "text"}, businessID, "id", estimateID.String())

	h.Send(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestEstimateHandler_Accept(t *testing.T) {
	h, mockSvc := newEstimateHandler()
	businessID, estimateID := uuid.New(), uuid.New()

	mockSvc.On("Accept", mock.Anything, businessID, estimateID).
		Return(&service.AcceptResult{EstimateID: estimateID, ClientName: "Jane"}, nil)

	c, w := newCtx(http.MethodPost, "/", nil, businessID, "id", estimateID.String())

	h.Accept(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "Jane", data["client_name"])
}

func TestEstimateHandler_PDF(t *testing.T) {
	h, mockSvc := newEstimateHandler()
	businessID, estimateID := uuid.New(), uuid.New()

	mockSvc.On("RenderPDF", mock.Anything, businessID, estimateID).Return(&service.RenderedDocument{
		Filename:    "Estimate_Jane.pdf",
		ContentType: "application/pdf",
		Body:        []byte("%PDF-1.3"),
	}, nil)

	c, w := newCtx(http.MethodGet, "/", nil, businessID, "id", estimateID.String())

	h.PDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Estimate_Jane.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}
