package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/handler"
	"miklean/mocks"
)

func TestStatsHandler_GetStats(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)
	businessID := uuid.New()

	mockSvc.On("GetStats", mock.Anything, businessID).
		Return(&domain.Stats{VisitsToday: 3, Clients: domain.ClientCounts{Client: 12}}, nil)

	c, w := newCtx(http.MethodGet, "/api/v1/stats", nil, businessID)

	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["visits_today"])
	mockSvc.AssertExpectations(t)
}

func TestStatsHandler_GetStats_NoBusiness(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)

	c, w := newCtx(http.MethodGet, "/api/v1/stats", nil, uuid.Nil)

	h.GetStats(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
