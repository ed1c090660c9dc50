package services

import (
	"time"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// Clock supplies wall-clock time in the deployment's time zone.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// NewClock returns a clock reading now in loc. A nil now uses time.Now and a
// nil loc uses the host zone.
func NewClock(now func() time.Time, loc *time.Location) Clock {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return Clock{now: now, loc: loc}
}

// Now returns the current time in the clock's zone.
func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	if c.loc == nil {
		return c.now()
	}
	return c.now().In(c.loc)
}

// Today returns the current calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Now().Format(entities.DateLayout)
}
