// Package stage maps remaining countdown time to a named configuration
// bundle, so presentation code can express "as time runs low, intensify"
// curves declaratively.
//
// A consumer declares an ordered list of stages, each with a threshold
// expression ("50%" of total duration, or "60s" of absolute remaining time)
// and an opaque payload. Lookups resolve the stage whose threshold is the
// tightest bound still at or above the remaining time, plus the fraction of
// that stage's window already elapsed. Results are memoized in fixed-width
// time buckets so repeated queries return the identical snapshot and callers
// can skip redundant redraws with a pointer comparison.
package stage
