package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSMSSender is a mock implementation of port.SMSSender.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) SendSMS(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}
