package stage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNoStages is returned when a lookup is attempted on an empty stage list.
	ErrNoStages = errors.New("no stages defined")
	// ErrNegativePercent is returned for percentage thresholds below zero.
	ErrNegativePercent = errors.New("percentage threshold must not be negative")
	// ErrNegativeSeconds is returned for seconds thresholds below zero.
	ErrNegativeSeconds = errors.New("seconds threshold must not be negative")
	// ErrUnknownThreshold is returned for expressions that are neither a
	// percentage nor a seconds count.
	ErrUnknownThreshold = errors.New("unrecognized threshold expression")
)

// ParseThreshold resolves a threshold expression into a duration.
//
// Two forms are accepted: a percentage of the total duration ("50%",
// fractional allowed) and an absolute count of seconds remaining ("60s",
// fractional allowed, independent of the total duration). The three error
// conditions are distinguishable with errors.Is so configuration typos are
// easy to pin down.
func ParseThreshold(expr string, duration time.Duration) (time.Duration, error) {
	switch {
	case strings.HasSuffix(expr, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(expr, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownThreshold, expr)
		}

		if pct < 0 {
			return 0, fmt.Errorf("%w: %q", ErrNegativePercent, expr)
		}

		return time.Duration(pct / 100 * float64(duration)), nil
	case strings.HasSuffix(expr, "s"):
		seconds, err := strconv.ParseFloat(strings.TrimSuffix(expr, "s"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownThreshold, expr)
		}

		if seconds < 0 {
			return 0, fmt.Errorf("%w: %q", ErrNegativeSeconds, expr)
		}

		return time.Duration(seconds * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownThreshold, expr)
	}
}
