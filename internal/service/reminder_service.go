package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"miklean/internal/domain"
	"miklean/internal/port"
)

// ReminderRun summarizes one pass of day-ahead reminders.
type ReminderRun struct {
	Date       domain.Date `json:"date"`
	Candidates int         `json:"candidates"`
	Sent       int         `json:"sent"`
	Failed     int         `json:"failed"`
}

// ReminderService texts clients the day before a scheduled visit.
type ReminderService interface {
	SendDayAhead(ctx context.Context) (*ReminderRun, error)
}

type reminderService struct {
	visitRepo port.VisitRepository
	sms       port.SMSSender
	clock     Clock
	log       *logrus.Logger
}

// NewReminderService creates a new ReminderService implementation.
func NewReminderService(visitRepo port.VisitRepository, sms port.SMSSender, clock Clock, log *logrus.Logger) ReminderService {
	return &reminderService{
		visitRepo: visitRepo,
		sms:       sms,
		clock:     clock,
		log:       log,
	}
}

func (s *reminderService) SendDayAhead(ctx context.Context) (*ReminderRun, error) {
	tomorrow := s.clock.Today().AddDays(1)
	candidates, err := s.visitRepo.ListReminderCandidates(ctx, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("reminderService.SendDayAhead: %w", err)
	}

	run := &ReminderRun{Date: tomorrow, Candidates: len(candidates)}
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		c := &candidates[i]
		entry := s.log.WithFields(logrus.Fields{
			"business_id": c.BusinessID,
			"visit_id":    c.VisitID,
		})

		if err := s.sms.SendSMS(ctx, c.ClientPhone, ReminderTextMessage(c)); err != nil {
			entry.WithError(err).Warn("visit reminder not delivered")
			run.Failed++
			continue
		}
		if err := s.visitRepo.MarkReminderSent(ctx, c.BusinessID, c.VisitID, s.clock().UTC()); err != nil {
			entry.WithError(err).Error("visit reminder sent but not recorded")
		}
		run.Sent++
	}

	s.log.WithFields(logrus.Fields{
		"date":       run.Date.String(),
		"candidates": run.Candidates,
		"sent":       run.Sent,
		"failed":     run.Failed,
	}).Info("visit reminders processed")
	return run, nil
}

// ReminderTextMessage is the day-ahead reminder text.
func ReminderTextMessage(c *domain.ReminderCandidate) string {
	business := (&domain.BusinessProfile{BusinessName: c.BusinessName}).DisplayName()
	msg := fmt.Sprintf("Hi %s! Reminder: %s is scheduled to clean on %s", c.ClientName, business, c.ScheduledDate.Display())
	if c.ScheduledTime != nil {
		msg += " at " + domain.DisplayTimeOfDay(*c.ScheduledTime)
	}
	return msg + "."
}

// ReminderScheduler runs ReminderService on a cron schedule.
type ReminderScheduler struct {
	cron    *cron.Cron
	svc     ReminderService
	timeout time.Duration
	log     *logrus.Logger
}

// NewReminderScheduler parses spec (with a seconds field) in loc.
func NewReminderScheduler(svc ReminderService, spec string, loc *time.Location, log *logrus.Logger) (*ReminderScheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &ReminderScheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		svc:     svc,
		timeout: 10 * time.Minute,
		log:     log,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *ReminderScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.svc.SendDayAhead(ctx); err != nil {
		s.log.WithError(err).Error("scheduled visit reminders failed")
	}
}

// Start begins running the schedule in its own goroutine.
func (s *ReminderScheduler) Start() {
	s.cron.Start()
	s.log.Info("reminder scheduler started")
}

// Stop stops the schedule and waits for a running job until ctx is done.
func (s *ReminderScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("reminder scheduler stop timed out")
	}
}
