package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"miklean/internal/domain"
	"miklean/internal/service"
	"miklean/mocks"
)

func TestStatsService_GetStats_UsesLocalDayAndMonth(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	now := time.Date(2024, time.May, 31, 22, 30, 0, 0, chicago)

	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo, service.FixedClock(now))
	businessID := uuid.New()

	expected := &domain.Stats{VisitsToday: 4, OutstandingTotal: decimal.NewFromInt(300)}
	repo.On("GetBusinessStats", context.Background(), businessID,
		domain.NewDate(2024, time.May, 31),
		time.Date(2024, time.May, 1, 0, 0, 0, 0, chicago),
	).Return(expected, nil)

	stats, err := svc.GetStats(context.Background(), businessID)

	require.NoError(t, err)
	assert.Equal(t, expected, stats)
	repo.AssertExpectations(t)
}

func TestStatsService_GetStats_Error(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo, service.FixedClock(time.Now()))

	repo.On("GetBusinessStats", context.Background(), uuid.Nil, mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	_, err := svc.GetStats(context.Background(), uuid.Nil)
	assert.Error(t, err)
}
