package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
)

// MockVisitRepo is a mock implementation of port.VisitRepository.
type MockVisitRepo struct {
	mock.Mock
}

func (m *MockVisitRepo) CreateBatch(ctx context.Context, visits []domain.Visit) error {
	args := m.Called(ctx, visits)
	return args.Error(0)
}

func (m *MockVisitRepo) GetByID(ctx context.Context, businessID, visitID uuid.UUID) (*domain.Visit, error) {
	args := m.Called(ctx, businessID, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}

func (m *MockVisitRepo) GetDetail(ctx context.Context, businessID, visitID uuid.UUID) (*domain.VisitDetail, error) {
	args := m.Called(ctx, businessID, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitDetail), args.Error(1)
}

func (m *MockVisitRepo) Complete(ctx context.Context, businessID, visitID uuid.UUID, notes *string, at time.Time) error {
	args := m.Called(ctx, businessID, visitID, notes, at)
	return args.Error(0)
}

func (m *MockVisitRepo) Cancel(ctx context.Context, businessID, visitID uuid.UUID) error {
	args := m.Called(ctx, businessID, visitID)
	return args.Error(0)
}

func (m *MockVisitRepo) Reschedule(ctx context.Context, businessID, visitID uuid.UUID, date domain.Date, scheduledTime *string) error {
	args := m.Called(ctx, businessID, visitID, date, scheduledTime)
	return args.Error(0)
}

func (m *MockVisitRepo) ListFutureRecurring(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date) ([]domain.Visit, error) {
	args := m.Called(ctx, businessID, clientID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Visit), args.Error(1)
}

func (m *MockVisitRepo) ListByDateRange(ctx context.Context, businessID uuid.UUID, from, to domain.Date) ([]domain.VisitDetail, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisitDetail), args.Error(1)
}

func (m *MockVisitRepo) ListUpcoming(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date, limit int) ([]domain.Visit, error) {
	args := m.Called(ctx, businessID, clientID, from, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Visit), args.Error(1)
}

func (m *MockVisitRepo) ListPast(ctx context.Context, businessID, clientID uuid.UUID, before domain.Date, limit int) ([]domain.Visit, error) {
	args := m.Called(ctx, businessID, clientID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Visit), args.Error(1)
}

func (m *MockVisitRepo) CancelFutureScheduled(ctx context.Context, businessID, clientID uuid.UUID, from domain.Date) (int64, error) {
	args := m.Called(ctx, businessID, clientID, from)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVisitRepo) ListUninvoiced(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockVisitRepo) ListInvoiceLines(ctx context.Context, businessID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockVisitRepo) ListReminderCandidates(ctx context.Context, date domain.Date) ([]domain.ReminderCandidate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderCandidate), args.Error(1)
}

func (m *MockVisitRepo) MarkReminderSent(ctx context.Context, businessID, visitID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, businessID, visitID, at)
	return args.Error(0)
}
