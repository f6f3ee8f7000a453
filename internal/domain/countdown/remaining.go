package countdown

import (
	"fmt"
	"time"
)

// TimeRemaining is the remaining duration of a countdown split into display
// units. It is recomputed on every tick and never persisted.
type TimeRemaining struct {
	// Days is the whole number of days left.
	Days int
	// Hours is the hour component, 0-23.
	Hours int
	// Minutes is the minute component, 0-59.
	Minutes int
	// Seconds is the second component, 0-59.
	Seconds int
	// Total is the full remaining duration the components were derived from.
	// It is clamped to zero once the target is reached.
	Total time.Duration
}

// NewTimeRemaining splits a duration into display units.
// Negative input is clamped to zero.
func NewTimeRemaining(total time.Duration) TimeRemaining {
	if total < 0 {
		total = 0
	}

	seconds := int(total / time.Second)

	return TimeRemaining{
		Days:    seconds / (24 * 60 * 60),
		Hours:   seconds / (60 * 60) % 24,
		Minutes: seconds / 60 % 60,
		Seconds: seconds % 60,
		Total:   total,
	}
}

// RemainingUntil computes the remaining time from now until the target.
func RemainingUntil(target, now time.Time) TimeRemaining {
	return NewTimeRemaining(target.Sub(now))
}

// IsReached reports whether the countdown has run out.
func (r TimeRemaining) IsReached() bool {
	return r.Total <= 0
}

// String renders the remaining time as "DDd HH:MM:SS".
func (r TimeRemaining) String() string {
	return fmt.Sprintf("%dd %02d:%02d:%02d", r.Days, r.Hours, r.Minutes, r.Seconds)
}
