package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"miklean/internal/handler"
	"miklean/internal/service"
	"miklean/mocks"
)

func TestTaskHandler_SendReminders(t *testing.T) {
	mockSvc := new(mocks.MockReminderService)
	h := handler.NewTaskHandler(mockSvc)

	mockSvc.On("SendDayAhead", mock.Anything).Return(&service.ReminderRun{Candidates: 2, Sent: 2}, nil)

	c, w := newCtx(http.MethodPost, "/api/v1/tasks/reminders", nil, uuid.Nil)

	h.SendReminders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["sent"])
}

func TestTaskHandler_SendReminders_Error(t *testing.T) {
	mockSvc := new(mocks.MockReminderService)
	h := handler.NewTaskHandler(mockSvc)

	mockSvc.On("SendDayAhead", mock.Anything).Return(nil, errors.New("db down"))

	c, w := newCtx(http.MethodPost, "/api/v1/tasks/reminders", nil, uuid.Nil)

	h.SendReminders(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	c, w := newCtx(http.MethodGet, "/healthz", nil, uuid.Nil)
	handler.NewHealthHandler(fakePinger{}).Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newCtx(http.MethodGet, "/readyz", nil, uuid.Nil)
	handler.NewHealthHandler(fakePinger{err: errors.New("refused")}).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database not reachable")
}
