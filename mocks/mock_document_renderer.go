package mocks

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"miklean/internal/domain"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderEstimate(estimate *domain.EstimateDetail, profile *domain.BusinessProfile, monthlyRate *decimal.Decimal) ([]byte, error) {
	args := m.Called(estimate, profile, monthlyRate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentRenderer) RenderInvoice(invoice *domain.InvoiceDetail, lines []domain.InvoiceLine, profile *domain.BusinessProfile) ([]byte, error) {
	args := m.Called(invoice, lines, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentRenderer) ContentType() string {
	args := m.Called()
	return args.String(0)
}
