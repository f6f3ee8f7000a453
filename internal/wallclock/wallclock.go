package wallclock

import (
	"time"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// FallbackTimezone is the timezone substituted for identifiers that fail to load.
const FallbackTimezone = "UTC"

// EnsureValid returns tz if it names a loadable IANA timezone, otherwise "UTC".
// The empty string also degrades to "UTC" rather than the host's local zone.
func EnsureValid(tz string) string {
	if tz == "" {
		return FallbackTimezone
	}

	if _, err := time.LoadLocation(tz); err != nil {
		return FallbackTimezone
	}

	return tz
}

// ToAbsolute converts a wall-clock time in the named timezone to an instant.
//
// The conversion is a single pass: the calendar fields are first read as if
// they were UTC to form an approximate instant, the timezone's actual UTC
// offset is sampled at that approximate instant, and the result is shifted by
// that offset. If the approximate and final instants straddle a
// daylight-saving transition the offset can be off by the DST delta; that
// approximation is deliberate and must be preserved.
func ToAbsolute(wc domain.WallClockTime, tz string) time.Time {
	loc := loadLocation(tz)

	approx := time.Date(
		wc.Year,
		time.Month(wc.Month+1),
		wc.Day,
		wc.Hours,
		wc.Minutes,
		wc.Seconds,
		0,
		time.UTC,
	)

	// Offset east of UTC, in seconds, at the approximate instant.
	_, offset := approx.In(loc).Zone()

	return approx.Add(-time.Duration(offset) * time.Second)
}

// HasReached reports whether the reference instant is at or past the
// wall-clock target in the named timezone.
func HasReached(wc domain.WallClockTime, tz string, reference time.Time) bool {
	return !reference.Before(ToAbsolute(wc, tz))
}

// loadLocation loads the timezone, falling back to UTC on any failure.
func loadLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}

	return loc
}
