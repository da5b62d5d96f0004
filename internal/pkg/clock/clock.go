// Package clock stamps usage records and notifications
package clock

import "time"

//go:generate mockgen -destination=mock/mock_clock.go -package=clockmock github.com/KirkDiggler/rpg-items/internal/pkg/clock Clock

// Clock tells the time
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC
type System struct{}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant. Used by the CLI replay mode and tests.
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant
func (f Fixed) Now() time.Time {
	return f.At
}

// New returns the system clock
func New() Clock {
	return System{}
}
