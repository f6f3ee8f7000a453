// Package runner orchestrates one countdown: it owns the tick loop, feeds
// every TimeRemaining to the presenter and the stage scheduler, routes
// completion through the celebration state machine, and applies timezone
// switches in wall-clock mode (and only there).
//
// The core packages it glues together stay free of each other: the tick loop
// knows nothing about celebration, the stage scheduler knows nothing about
// ticking, and the state machine works against capability interfaces over the
// store the runner owns.
package runner
