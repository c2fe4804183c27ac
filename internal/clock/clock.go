package clock

import (
	"fmt"
	"time"
)

// Clock provides the current time. Rule evaluators take a Clock instead
// of calling time.Now so their decisions are reproducible in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System is the wall-clock implementation used in production wiring.
var System Clock = systemClock{}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Today truncates the clock's current time to midnight UTC.
func Today(c Clock) time.Time {
	return DateOnly(c.Now())
}

// DateOnly strips the time-of-day portion of t.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseClockTime parses a wall-clock time like "09:30" or "09:30:00"
// into minutes since midnight.
func ParseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// At combines a calendar date with a "HH:MM" wall-clock time.
func At(date time.Time, clockTime string) (time.Time, error) {
	minutes, err := ParseClockTime(clockTime)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(date).Add(time.Duration(minutes) * time.Minute), nil
}
