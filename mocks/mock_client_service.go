package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/service"
)

// MockClientService is a mock implementation of service.ClientService.
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Create(ctx context.Context, input *service.ClientInput) (*domain.Client, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) Get(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) List(ctx context.Context, businessID uuid.UUID, filter domain.ClientFilter) (*service.ClientList, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClientList), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, clientID uuid.UUID, input *service.ClientInput) (*domain.Client, error) {
	args := m.Called(ctx, clientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) Convert(ctx context.Context, businessID, clientID uuid.UUID) error {
	args := m.Called(ctx, businessID, clientID)
	return args.Error(0)
}

func (m *MockClientService) Deactivate(ctx context.Context, businessID, clientID uuid.UUID, cancelVisits bool) (int64, error) {
	args := m.Called(ctx, businessID, clientID, cancelVisits)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientService) Detail(ctx context.Context, businessID, clientID uuid.UUID) (*service.ClientDetail, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClientDetail), args.Error(1)
}
