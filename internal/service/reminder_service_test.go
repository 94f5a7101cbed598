package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"miklean/internal/domain"
	"miklean/internal/logger"
	"miklean/internal/service"
	"miklean/mocks"
)

func TestReminderService_SendDayAhead(t *testing.T) {
	visitRepo := new(mocks.MockVisitRepo)
	sms := new(mocks.MockSMSSender)
	svc := service.NewReminderService(visitRepo, sms,
		service.FixedClock(time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC)), logger.Discard())

	bizID := uuid.New()
	okVisit, failVisit := uuid.New(), uuid.New()
	name := "Sparkle Co"
	at := "09:30"
	candidates := []domain.ReminderCandidate{
		{VisitID: okVisit, BusinessID: bizID, ScheduledDate: jan(15), ScheduledTime: &at,
			ClientName: "Jane", ClientPhone: "+15550001", BusinessName: &name},
		{VisitID: failVisit, BusinessID: bizID, ScheduledDate: jan(15),
			ClientName: "Bob", ClientPhone: "+15550002"},
	}
	visitRepo.On("ListReminderCandidates", mock.Anything, jan(15)).Return(candidates, nil)
	sms.On("SendSMS", mock.Anything, "+15550001",
		"Hi Jane! Reminder: Sparkle Co is scheduled to clean on "+jan(15).Display()+" at 9:30 AM.").Return(nil)
	sms.On("SendSMS", mock.Anything, "+15550002", mock.Anything).Return(errors.New("carrier down"))
	visitRepo.On("MarkReminderSent", mock.Anything, bizID, okVisit, mock.Anything).Return(nil)

	run, err := svc.SendDayAhead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jan(15), run.Date)
	assert.Equal(t, 2, run.Candidates)
	assert.Equal(t, 1, run.Sent)
	assert.Equal(t, 1, run.Failed)

	visitRepo.AssertNotCalled(t, "MarkReminderSent", mock.Anything, bizID, failVisit, mock.Anything)
	sms.AssertExpectations(t)
	visitRepo.AssertExpectations(t)
}

func TestReminderService_SendDayAhead_ListError(t *testing.T) {
	visitRepo := new(mocks.MockVisitRepo)
	sms := new(mocks.MockSMSSender)
	svc := service.NewReminderService(visitRepo, sms,
		service.FixedClock(time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC)), logger.Discard())

	visitRepo.On("ListReminderCandidates", mock.Anything, jan(15)).
		Return(nil, errors.New("db down"))

	_, err := svc.SendDayAhead(context.Background())
	assert.Error(t, err)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderTextMessage_NoTimeNoName(t *testing.T) {
	msg := service.ReminderTextMessage(&domain.ReminderCandidate{
		ClientName:    "Ann",
		ScheduledDate: jan(20),
	})
	assert.Equal(t, "Hi Ann! Reminder: Your cleaning service is scheduled to clean on "+jan(20).Display()+".", msg)
}

func TestNewReminderScheduler_InvalidSpec(t *testing.T) {
	_, err := service.NewReminderScheduler(new(mocks.MockReminderService), "not a cron", time.UTC, logger.Discard())
	assert.Error(t, err)
}

func TestReminderScheduler_StartStop(t *testing.T) {
	s, err := service.NewReminderScheduler(new(mocks.MockReminderService), "0 0 18 * * *", time.UTC, logger.Discard())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
