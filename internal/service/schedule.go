package service

import (
	"github.com/shopspring/decimal"

	"miklean/internal/domain"
)

// DefaultWindowSize is the number of future scheduled visits a recurring
// client keeps.
const DefaultWindowSize = 8

// ScheduleDates returns count dates starting at start and advancing by the
// frequency's interval.
func ScheduleDates(start domain.Date, freq domain.Frequency, count int) ([]domain.Date, error) {
	interval, ok := freq.IntervalDays()
	if !ok {
		return nil, domain.ErrNotRecurring
	}
	dates := make([]domain.Date, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, start.AddDays(i*interval))
	}
	return dates, nil
}

// Replenishment is the set of visits needed to refill a rolling window.
type Replenishment struct {
	Dates []domain.Date
	Price decimal.NullDecimal
}

// PlanReplenishment computes the visits that bring future up to window
// entries. future holds the client's scheduled recurring visits dated today
// or later, in any order. New dates continue from the latest of them, or
// from today when there are none. The price is explicit when valid,
// otherwise the price of the latest future visit, otherwise unset.
func PlanReplenishment(future []domain.Visit, today domain.Date, freq domain.Frequency, explicit decimal.NullDecimal, window int) (*Replenishment, error) {
	interval, ok := freq.IntervalDays()
	if !ok {
		return nil, domain.ErrNotRecurring
	}

	plan := &Replenishment{Price: explicit}
	missing := window - len(future)
	if missing <= 0 {
		return plan, nil
	}

	anchor := today
	var latest *domain.Visit
	for i := range future {
		if latest == nil || future[i].ScheduledDate.After(latest.ScheduledDate) {
			latest = &future[i]
		}
	}
	if latest != nil {
		anchor = latest.ScheduledDate
		if !plan.Price.Valid {
			plan.Price = latest.Price
		}
	}

	plan.Dates = make([]domain.Date, 0, missing)
	for i := 1; i <= missing; i++ {
		plan.Dates = append(plan.Dates, anchor.AddDays(i*interval))
	}
	return plan, nil
}
