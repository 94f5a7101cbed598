package service

import (
	"time"

	"miklean/internal/domain"
)

// Clock returns the current time in the business's local zone.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today is the calendar date of the current time.
func (c Clock) Today() domain.Date {
	return domain.DateOf(c())
}
