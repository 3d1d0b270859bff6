package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant, used by tests and by exports
// that must name files consistently within one run.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.At
}

// Today returns the current calendar date at midnight UTC.
func Today(clock Clock) time.Time {
	y, m, d := clock.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CurrentMonth returns the year and month of the clock's current date.
func CurrentMonth(clock Clock) (int, int) {
	now := clock.Now()
	return now.Year(), int(now.Month())
}
