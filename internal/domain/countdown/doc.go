// Package countdown contains core domain types for the countdown business logic.
//
// It defines TimeRemaining (the split remaining-time value recomputed on every
// tick), WallClockTime (a calendar moment with no attached timezone),
// CelebrationState (the three-state completion lifecycle) and Mode (how the
// countdown target is interpreted).
package countdown
