// Package celebration serializes the "has this countdown, for this timezone,
// reached and displayed its target" lifecycle into three states: counting,
// celebrating and celebrated.
//
// The machine owns no state of its own. Every transition reads and writes
// through narrow capability interfaces over an externally-owned store, so a
// single store instance per view remains the sole source of truth. A
// per-timezone celebrated set prevents replaying the celebration animation
// when a user toggles back and forth between timezones in wall-clock mode
// while still presenting the terminal state immediately.
//
// Transition functions have no error conditions. Guarding against invalid
// call sequences (for instance double-firing a completion) is the caller's
// contract: consult HasCelebrated before transitioning.
package celebration
