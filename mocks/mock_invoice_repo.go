package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) LatestNumber(ctx context.Context, businessID uuid.UUID) (string, error) {
	args := m.Called(ctx, businessID)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepo) CreateWithVisits(ctx context.Context, invoice *domain.Invoice, visitIDs []uuid.UUID) error {
	args := m.Called(ctx, invoice, visitIDs)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) GetDetail(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.InvoiceDetail, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceRepo) ListByClient(ctx context.Context, businessID, clientID uuid.UUID, limit int) ([]domain.Invoice, error) {
	args := m.Called(ctx, businessID, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.InvoiceDetail, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceRepo) MarkSent(ctx context.Context, businessID, invoiceID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, businessID, invoiceID, at)
	return args.Error(0)
}

func (m *MockInvoiceRepo) MarkPaid(ctx context.Context, businessID, invoiceID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, businessID, invoiceID, at)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByToken(ctx context.Context, invoiceID uuid.UUID, token string) (*domain.InvoiceDetail, error) {
	args := m.Called(ctx, invoiceID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDetail), args.Error(1)
}
