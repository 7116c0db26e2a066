// Package clock provides the "current time" dependency for period and attention logic.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock in a fixed location.
// A nil Location means time.Local.
type System struct {
	Location *time.Location
}

func (c System) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Fixed always returns the same instant. Used in tests.
type Fixed time.Time

func (c Fixed) Now() time.Time {
	return time.Time(c)
}
