// Package ticker drives the countdown tick loop. A Loop periodically
// recomputes the remaining time from a caller-supplied target provider and
// reports it through callbacks, detecting completion exactly once per
// false-to-true transition of an external completion predicate.
//
// The target provider is re-invoked on every tick, never cached, so a caller
// may retarget a countdown across ticks without rebuilding the loop. Pause is
// a logical flag: the periodic timer is cancelled and the remaining duration
// at the pause moment is frozen, but a manual recomputation stays available
// through ForceUpdate.
package ticker
