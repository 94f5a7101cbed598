package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
	"miklean/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Uninvoiced(ctx context.Context, businessID, clientID uuid.UUID) ([]service.LineItem, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.LineItem), args.Error(1)
}

func (m *MockInvoiceService) Create(ctx context.Context, input *service.CreateInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Get(ctx context.Context, businessID, invoiceID uuid.UUID) (*service.InvoiceView, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceView), args.Error(1)
}

func (m *MockInvoiceService) ListByClient(ctx context.Context, businessID, clientID uuid.UUID) ([]domain.Invoice, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListAll(ctx context.Context, businessID uuid.UUID) ([]domain.InvoiceDetail, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceService) Send(ctx context.Context, input *service.SendInput) (*service.SendResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SendResult), args.Error(1)
}

func (m *MockInvoiceService) MarkPaid(ctx context.Context, businessID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, businessID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) PublicView(ctx context.Context, invoiceID uuid.UUID, token string) (*service.PublicInvoiceView, error) {
	args := m.Called(ctx, invoiceID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicInvoiceView), args.Error(1)
}

func (m *MockInvoiceService) RenderPDF(ctx context.Context, businessID, invoiceID uuid.UUID) (*service.RenderedDocument, error) {
	args := m.Called(ctx, businessID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderedDocument), args.Error(1)
}

func (m *MockInvoiceService) ExportWorkbook(ctx context.Context, businessID uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, businessID, w)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(w)
	}
	return args.Error(0)
}
