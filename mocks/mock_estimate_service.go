package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/service"
)

// MockEstimateService is a mock implementation of service.EstimateService.
type MockEstimateService struct {
	mock.Mock
}

func (m *MockEstimateService) Create(ctx context.Context, input *service.EstimateInput) (*domain.Estimate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateService) Update(ctx context.Context, estimateID uuid.UUID, input *service.EstimateInput) (*domain.Estimate, error) {
	args := m.Called(ctx, estimateID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockEstimateService) Get(ctx context.Context, businessID, estimateID uuid.UUID) (*service.EstimateView, error) {
	args := m.Called(ctx, businessID, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EstimateView), args.Error(1)
}

func (m *MockEstimateService) ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Estimate, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Estimate), args.Error(1)
}

func (m *MockEstimateService) Send(ctx context.Context, input *service.SendInput) (*service.SendResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SendResult), args.Error(1)
}

func (m *MockEstimateService) Accept(ctx context.Context, businessID, estimateID uuid.UUID) (*service.AcceptResult, error) {
	args := m.Called(ctx, businessID, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AcceptResult), args.Error(1)
}

func (m *MockEstimateService) PublicView(ctx context.Context, estimateID uuid.UUID, token string) (*service.PublicEstimateView, error) {
	args := m.Called(ctx, estimateID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicEstimateView), args.Error(1)
}

func (m *MockEstimateService) PublicAccept(ctx context.Context, estimateID uuid.UUID, token string) (*service.AcceptResult, error) {
	args := m.Called(ctx, estimateID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AcceptResult), args.Error(1)
}

func (m *MockEstimateService) RenderPDF(ctx context.Context, businessID, estimateID uuid.UUID) (*service.RenderedDocument, error) {
	args := m.Called(ctx, businessID, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedDocument), args.Error(1)
}
