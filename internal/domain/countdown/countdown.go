package countdown

// Mode describes how a countdown target is interpreted.
type Mode string

const (
	// ModeWallClock targets an abstract calendar moment that resolves to a
	// different instant in every timezone. Only this mode routes timezone
	// switches through the celebration state machine.
	ModeWallClock Mode = "wallclock"
	// ModeInstant targets one fixed absolute instant, identical everywhere.
	ModeInstant Mode = "instant"
	// ModeTimer targets "now plus a duration" captured at startup.
	ModeTimer Mode = "timer"
)

// CelebrationState is the completion lifecycle of one countdown view.
type CelebrationState string

const (
	// StateCounting is the initial state: the target lies in the future.
	StateCounting CelebrationState = "counting"
	// StateCelebrating is the transient state entered exactly once when the
	// countdown first reaches its target for a not-yet-celebrated timezone.
	StateCelebrating CelebrationState = "celebrating"
	// StateCelebrated is the terminal display state. In wall-clock mode a
	// timezone switch to a future target returns the view to StateCounting.
	StateCelebrated CelebrationState = "celebrated"
)

// WallClockTime is a calendar moment with no attached timezone. It is
// meaningless until paired with an IANA timezone identifier.
//
// Month is zero-based (0 = January) to stay wire-compatible with the
// URL/config format the values arrive in.
type WallClockTime struct {
	// Year is the full calendar year.
	Year int
	// Month is the zero-based month, 0-11.
	Month int
	// Day is the day of month, 1-31.
	Day int
	// Hours is the hour of day, 0-23.
	Hours int
	// Minutes is the minute, 0-59.
	Minutes int
	// Seconds is the second, 0-59.
	Seconds int
}
