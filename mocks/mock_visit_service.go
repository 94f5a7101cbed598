package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/service"
)

// MockVisitService is a mock implementation of service.VisitService.
type MockVisitService struct {
	mock.Mock
}

func (m *MockVisitService) Schedule(ctx context.Context, input *service.ScheduleVisitsInput) (*service.ScheduleResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScheduleResult), args.Error(1)
}

func (m *MockVisitService) GetByID(ctx context.Context, businessID, visitID uuid.UUID) (*domain.VisitDetail, error) {
	args := m.Called(ctx, businessID, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitDetail), args.Error(1)
}

func (m *MockVisitService) Complete(ctx context.Context, businessID, visitID uuid.UUID, notes string) (*service.CompleteResult, error) {
	args := m.Called(ctx, businessID, visitID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompleteResult), args.Error(1)
}

func (m *MockVisitService) Cancel(ctx context.Context, businessID, visitID uuid.UUID) error {
	args := m.Called(ctx, businessID, visitID)
	return args.Error(0)
}

func (m *MockVisitService) Reschedule(ctx context.Context, input *service.RescheduleVisitInput) (*domain.Visit, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *MockVisitService) ReplenishWindow(ctx context.Context, input *service.ReplenishInput) (int, error) {
	args := m.Called(ctx, input)
	return args.Int(0), args.Error(1)
}

func (m *MockVisitService) Today(ctx context.Context, businessID uuid.UUID) ([]domain.VisitDetail, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisitDetail), args.Error(1)
}

func (m *MockVisitService) Calendar(ctx context.Context, businessID uuid.UUID, anyDay domain.Date) (*service.CalendarMonth, error) {
	args := m.Called(ctx, businessID, anyDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalendarMonth), args.Error(1)
}

func (m *MockVisitService) ExportCSV(ctx context.Context, businessID uuid.UUID, from, to domain.Date, w io.Writer) error {
	args := m.Called(ctx, businessID, from, to, w)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(w)
	}
	return args.Error(0)
}
