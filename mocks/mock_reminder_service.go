package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"miklean/internal/service"
)

// MockReminderService is a mock implementation of service.ReminderService.
type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) SendDayAhead(ctx context.Context) (*service.ReminderRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReminderRun), args.Error(1)
}
