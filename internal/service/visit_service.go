package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"miklean/internal/domain"
	"miklean/internal/export"
	"miklean/internal/port"
)

// ScheduleVisitsInput is the DTO for putting a client on the schedule.
type ScheduleVisitsInput struct {
	BusinessID uuid.UUID
	ClientID   uuid.UUID
	Mode       domain.ScheduleMode
	StartDate  string
	Frequency  domain.Frequency
	Time       string
	Price      string
}

// ScheduleResult reports the visits a schedule request created.
type ScheduleResult struct {
	Created int            `json:"created"`
	Visits  []domain.Visit `json:"visits"`
}

// RescheduleVisitInput is the DTO for moving a visit.
type RescheduleVisitInput struct {
	BusinessID uuid.UUID
	VisitID    uuid.UUID
	Date       string
	Time       string
}

// ReplenishInput identifies the recurrence chain whose window is refilled.
type ReplenishInput struct {
	BusinessID uuid.UUID
	ClientID   uuid.UUID
	EstimateID *uuid.UUID
	Frequency  domain.Frequency
	Price      decimal.NullDecimal
	Time       *string
}

// CompleteResult reports a completion and the visits it added to the window.
// Warning is set when the visit was completed but the window could not be
// refilled.
type CompleteResult struct {
	Visit   *domain.Visit `json:"visit"`
	Added   int           `json:"added"`
	Warning string        `json:"warning,omitempty"`
}

// CalendarDay groups the visits of one date.
type CalendarDay struct {
	Date   domain.Date          `json:"date"`
	Visits []domain.VisitDetail `json:"visits"`
}

// CalendarMonth is a month of non-cancelled visits grouped by date.
type CalendarMonth struct {
	First        domain.Date   `json:"first"`
	Last         domain.Date   `json:"last"`
	FirstWeekday int           `json:"first_weekday"`
	DaysInMonth  int           `json:"days_in_month"`
	Prev         domain.Date   `json:"prev"`
	Next         domain.Date   `json:"next"`
	Days         []CalendarDay `json:"days"`
}

// VisitService defines the visit scheduling contract.
type VisitService interface {
	Schedule(ctx context.Context, input *ScheduleVisitsInput) (*ScheduleResult, error)
	GetByID(ctx context.Context, businessID, visitID uuid.UUID) (*domain.VisitDetail, error)
	Complete(ctx context.Context, businessID, visitID uuid.UUID, notes string) (*CompleteResult, error)
	Cancel(ctx context.Context, businessID, visitID uuid.UUID) error
	Reschedule(ctx context.Context, input *RescheduleVisitInput) (*domain.Visit, error)
	ReplenishWindow(ctx context.Context, input *ReplenishInput) (int, error)
	Today(ctx context.Context, businessID uuid.UUID) ([]domain.VisitDetail, error)
	Calendar(ctx context.Context, businessID uuid.UUID, anyDay domain.Date) (*CalendarMonth, error)
	ExportCSV(ctx context.Context, businessID uuid.UUID, from, to domain.Date, w io.Writer) error
}

type visitService struct {
	visitRepo    port.VisitRepository
	clientRepo   port.ClientRepository
	estimateRepo port.EstimateRepository
	locks        *KeyedMutex
	clock        Clock
	windowSize   int
	log          *logrus.Logger
}

// NewVisitService creates a new VisitService implementation.
func NewVisitService(
	visitRepo port.VisitRepository,
	clientRepo port.ClientRepository,
	estimateRepo port.EstimateRepository,
	locks *KeyedMutex,
	clock Clock,
	windowSize int,
	log *logrus.Logger,
) VisitService {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &visitService{
		visitRepo:    visitRepo,
		clientRepo:   clientRepo,
		estimateRepo: estimateRepo,
		locks:        locks,
		clock:        clock,
		windowSize:   windowSize,
		log:          log,
	}
}

func (s *visitService) Schedule(ctx context.Context, input *ScheduleVisitsInput) (*ScheduleResult, error) {
	verr := &domain.ValidationError{}

	start, err := domain.ParseDate(input.StartDate)
	if err != nil {
		verr.Add("start date must be a valid date (YYYY-MM-DD)")
	}
	price, err := domain.ParsePrice(input.Price)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			verr.Reasons = append(verr.Reasons, ve.Reasons...)
		}
	}
	scheduledTime, err := domain.ParseTimeOfDay(input.Time)
	if err != nil {
		verr.Add("time must be HH:MM")
	}
	switch input.Mode {
	case domain.ScheduleModeOneTime:
	case domain.ScheduleModeRecurring:
		if _, ok := input.Frequency.IntervalDays(); !ok {
			verr.Add("recurring visits need a weekly, biweekly or monthly frequency")
		}
	default:
		verr.Add("mode must be one_time or recurring")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.clientRepo.GetByID(ctx, input.BusinessID, input.ClientID); err != nil {
		return nil, err
	}

	var estimateID *uuid.UUID
	estimate, err := s.estimateRepo.LatestAccepted(ctx, input.BusinessID, input.ClientID)
	switch {
	case err == nil:
		estimateID = &estimate.ID
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("visitService.Schedule estimate: %w", err)
	}

	base := domain.Visit{
		BusinessID:    input.BusinessID,
		ClientID:      input.ClientID,
		EstimateID:    estimateID,
		ScheduledTime: scheduledTime,
		Status:        domain.VisitStatusScheduled,
		Price:         decimal.NewNullDecimal(price),
	}

	var visits []domain.Visit
	if input.Mode == domain.ScheduleModeOneTime {
		v := base
		v.ScheduledDate = start
		visits = append(visits, v)
	} else {
		dates, err := ScheduleDates(start, input.Frequency, s.windowSize)
		if err != nil {
			return nil, err
		}
		freq := input.Frequency
		for _, d := range dates {
			v := base
			v.ScheduledDate = d
			v.IsRecurring = true
			v.Frequency = &freq
			visits = append(visits, v)
		}
	}

	if err := s.visitRepo.CreateBatch(ctx, visits); err != nil {
		return nil, fmt.Errorf("visitService.Schedule: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"business_id": input.BusinessID,
		"client_id":   input.ClientID,
		"mode":        input.Mode,
		"count":       len(visits),
	}).Info("visits scheduled")

	return &ScheduleResult{Created: len(visits), Visits: visits}, nil
}

func (s *visitService) GetByID(ctx context.Context, businessID, visitID uuid.UUID) (*domain.VisitDetail, error) {
	return s.visitRepo.GetDetail(ctx, businessID, visitID)
}

func (s *visitService) Complete(ctx context.Context, businessID, visitID uuid.UUID, notes string) (*CompleteResult, error) {
	visit, err := s.visitRepo.GetByID(ctx, businessID, visitID)
	if err != nil {
		return nil, err
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	now := s.clock().UTC()
	if err := s.visitRepo.Complete(ctx, businessID, visitID, notesPtr, now); err != nil {
		return nil, err
	}
	visit.Status = domain.VisitStatusCompleted
	visit.CompletionNotes = notesPtr
	visit.CompletedAt = &now

	result := &CompleteResult{Visit: visit}
	if !visit.IsRecurring || visit.Frequency == nil {
		return result, nil
	}
	if _, ok := visit.Frequency.IntervalDays(); !ok {
		return result, nil
	}

	added, err := s.ReplenishWindow(ctx, &ReplenishInput{
		BusinessID: businessID,
		ClientID:   visit.ClientID,
		EstimateID: visit.EstimateID,
		Frequency:  *visit.Frequency,
		Price:      visit.Price,
		Time:       visit.ScheduledTime,
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"business_id": businessID,
			"visit_id":    visitID,
			"client_id":   visit.ClientID,
		}).Error("visit completed but rolling window was not replenished")
		result.Warning = "Visit completed, but upcoming visits could not be scheduled."
		return result, nil
	}
	result.Added = added
	return result, nil
}

func (s *visitService) Cancel(ctx context.Context, businessID, visitID uuid.UUID) error {
	if _, err := s.visitRepo.GetByID(ctx, businessID, visitID); err != nil {
		return err
	}
	return s.visitRepo.Cancel(ctx, businessID, visitID)
}

func (s *visitService) Reschedule(ctx context.Context, input *RescheduleVisitInput) (*domain.Visit, error) {
	verr := &domain.ValidationError{}
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		verr.Add("date must be a valid date (YYYY-MM-DD)")
	}
	scheduledTime, err := domain.ParseTimeOfDay(input.Time)
	if err != nil {
		verr.Add("time must be HH:MM")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.visitRepo.GetByID(ctx, input.BusinessID, input.VisitID); err != nil {
		return nil, err
	}
	if err := s.visitRepo.Reschedule(ctx, input.BusinessID, input.VisitID, date, scheduledTime); err != nil {
		return nil, err
	}
	return s.visitRepo.GetByID(ctx, input.BusinessID, input.VisitID)
}

func (s *visitService) ReplenishWindow(ctx context.Context, input *ReplenishInput) (int, error) {
	unlock := s.locks.Lock(input.BusinessID)
	defer unlock()

	today := s.clock.Today()
	future, err := s.visitRepo.ListFutureRecurring(ctx, input.BusinessID, input.ClientID, today)
	if err != nil {
		return 0, fmt.Errorf("visitService.ReplenishWindow: %w", err)
	}

	plan, err := PlanReplenishment(future, today, input.Frequency, input.Price, s.windowSize)
	if err != nil {
		return 0, err
	}
	if len(plan.Dates) == 0 {
		return 0, nil
	}

	freq := input.Frequency
	visits := make([]domain.Visit, 0, len(plan.Dates))
	for _, d := range plan.Dates {
		visits = append(visits, domain.Visit{
			BusinessID:    input.BusinessID,
			ClientID:      input.ClientID,
			EstimateID:    input.EstimateID,
			ScheduledDate: d,
			ScheduledTime: input.Time,
			Status:        domain.VisitStatusScheduled,
			IsRecurring:   true,
			Frequency:     &freq,
			Price:         plan.Price,
		})
	}

	if err := s.visitRepo.CreateBatch(ctx, visits); err != nil {
		return 0, fmt.Errorf("visitService.ReplenishWindow: %w", err)
	}

	entry := s.log.WithFields(logrus.Fields{
		"business_id": input.BusinessID,
		"client_id":   input.ClientID,
		"added":       len(visits),
	})
	if !plan.Price.Valid {
		entry.Warn("rolling window replenished without a price")
	} else {
		entry.Info("rolling window replenished")
	}
	return len(visits), nil
}

func (s *visitService) Today(ctx context.Context, businessID uuid.UUID) ([]domain.VisitDetail, error) {
	today := s.clock.Today()
	return s.visitRepo.ListByDateRange(ctx, businessID, today, today)
}

func (s *visitService) Calendar(ctx context.Context, businessID uuid.UUID, anyDay domain.Date) (*CalendarMonth, error) {
	first := domain.NewDate(anyDay.Year(), anyDay.Month(), 1)
	next := domain.Date{Time: first.AddDate(0, 1, 0)}
	last := next.AddDays(-1)

	visits, err := s.visitRepo.ListByDateRange(ctx, businessID, first, last)
	if err != nil {
		return nil, err
	}

	month := &CalendarMonth{
		First:        first,
		Last:         last,
		FirstWeekday: int(first.Weekday()),
		DaysInMonth:  last.Day(),
		Prev:         domain.Date{Time: first.AddDate(0, -1, 0)},
		Next:         next,
		Days:         []CalendarDay{},
	}
	for i := range visits {
		n := len(month.Days)
		if n == 0 || !month.Days[n-1].Date.Equal(visits[i].ScheduledDate) {
			month.Days = append(month.Days, CalendarDay{Date: visits[i].ScheduledDate})
			n++
		}
		month.Days[n-1].Visits = append(month.Days[n-1].Visits, visits[i])
	}
	return month, nil
}

func (s *visitService) ExportCSV(ctx context.Context, businessID uuid.UUID, from, to domain.Date, w io.Writer) error {
	if to.Before(from) {
		return domain.NewValidationError("end date must not be before start date")
	}
	visits, err := s.visitRepo.ListByDateRange(ctx, businessID, from, to)
	if err != nil {
		return err
	}

	if _, err := w.Write(export.BOM); err != nil {
		return fmt.Errorf("visitService.ExportCSV: %w", err)
	}
	cw := export.NewVisitWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("visitService.ExportCSV: %w", err)
	}
	if err := cw.WriteVisits(visits); err != nil {
		return fmt.Errorf("visitService.ExportCSV: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
