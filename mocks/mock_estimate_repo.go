package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
)

// MockEstimateRepo is a mock implementation of port.EstimateRepository.
type MockEstimateRepo struct {
	mock.Mock
}

func (m *MockEstimateRepo) Create(ctx context.Context, estimate *domain.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepo) GetByID(ctx context.Context, businessID, estimateID uuid.UUID) (*domain.Estimate, error) {
	args := m.Called(ctx, businessID, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepo) GetDetail(ctx context.Context, businessID, estimateID uuid.UUID) (*domain.EstimateDetail, error) {
	args := m.Called(ctx, businessID, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EstimateDetail), args.Error(1)
}

func (m *MockEstimateRepo) ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Estimate, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepo) LatestAccepted(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Estimate, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateRepo) Update(ctx context.Context, estimate *domain.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepo) EnsureAcceptToken(ctx context.Context, businessID, estimateID uuid.UUID, token string) (string, error) {
	args := m.Called(ctx, businessID, estimateID, token)
	return args.String(0), args.Error(1)
}

func (m *MockEstimateRepo) MarkSent(ctx context.Context, businessID, estimateID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, businessID, estimateID, at)
	return args.Error(0)
}

func (m *MockEstimateRepo) Accept(ctx context.Context, businessID, estimateID uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, businessID, estimateID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockEstimateRepo) GetByToken(ctx context.Context, estimateID uuid.UUID, token string) (*domain.EstimateDetail, error) {
	args := m.Called(ctx, estimateID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EstimateDetail), args.Error(1)
}
