package stage

import (
	"time"
)

const (
	// DefaultBucket is the memoization bucket width.
	DefaultBucket = 50 * time.Millisecond
	// DefaultCacheCapacity bounds the number of memoized snapshots.
	DefaultCacheCapacity = 128
)

// Definition declares one stage: a name, a threshold expression (see
// ParseThreshold) and an opaque payload meaningful only to the consumer.
type Definition[V any] struct {
	// Name identifies the stage.
	Name string
	// At is the threshold expression, e.g. "50%" or "60s".
	At string
	// Values is the consumer's payload for this stage.
	Values V
}

// Snapshot is the resolved, cached result of a stage query. Snapshots from
// the same memoization bucket are pointer-identical.
type Snapshot[V any] struct {
	// Name is the active stage's name.
	Name string
	// Values is the active stage's payload.
	Values V
	// StageIndex is the active stage's position in the declared list.
	StageIndex int
	// Progress is the elapsed fraction of the active stage's window, 0 to 1.
	Progress float64
}

// Option configures a Scheduler.
type Option func(*options)

// options holds resolved scheduler settings.
type options struct {
	bucket        time.Duration
	cacheCapacity int
}

// WithBucket overrides the memoization bucket width.
func WithBucket(bucket time.Duration) Option {
	return func(o *options) {
		if bucket > 0 {
			o.bucket = bucket
		}
	}
}

// WithCacheCapacity overrides the memoization cache bound.
func WithCacheCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.cacheCapacity = capacity
		}
	}
}

// Scheduler resolves remaining time to a stage snapshot with memoization.
//
// Stages are consulted in declaration order; the expected convention is
// thresholds sorted in descending resolved order. The scheduler does not
// validate the ordering: a misordered list produces a lookup exactly as
// misordered as its input.
//
// The cache is an explicit per-instance value with a bounded, oldest-first
// eviction policy; there is no process-wide shared state, so independent
// views and test runs stay deterministic.
type Scheduler[V any] struct {
	// stages is the caller-supplied ordered stage list.
	stages []Definition[V]
	// opts are the resolved settings.
	opts options
	// cache maps bucket index to the memoized snapshot.
	cache map[int64]*Snapshot[V]
	// cacheOrder tracks insertion order for oldest-first eviction.
	cacheOrder []int64
	// cacheDuration is the total duration the cache entries were resolved
	// against; a different duration invalidates every entry.
	cacheDuration time.Duration
}

// New creates a Scheduler over the provided stage list.
func New[V any](stages []Definition[V], opts ...Option) *Scheduler[V] {
	o := options{
		bucket:        DefaultBucket,
		cacheCapacity: DefaultCacheCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Scheduler[V]{
		stages: stages,
		opts:   o,
		cache:  make(map[int64]*Snapshot[V]),
	}
}

// GetStage resolves the active stage for the remaining time of a countdown
// with the given total duration.
//
// The active stage is the one whose resolved threshold is the tightest bound
// still at or above the remaining time. Remaining time at or below zero
// clamps to the last stage with progress 1; remaining time above every
// threshold clamps to the first stage with progress 0. Repeated queries
// inside the same memoization bucket return the identical snapshot.
func (s *Scheduler[V]) GetStage(remaining, duration time.Duration) (*Snapshot[V], error) {
	if len(s.stages) == 0 {
		return nil, ErrNoStages
	}

	if duration != s.cacheDuration {
		s.ClearCache()
		s.cacheDuration = duration
	}

	bucket := int64(remaining / s.opts.bucket)
	if remaining < 0 {
		bucket = -1
	}

	if snapshot, ok := s.cache[bucket]; ok {
		return snapshot, nil
	}

	snapshot, err := s.resolve(remaining, duration)
	if err != nil {
		return nil, err
	}

	s.store(bucket, snapshot)

	return snapshot, nil
}

// ClearCache drops every memoized snapshot.
func (s *Scheduler[V]) ClearCache() {
	s.cache = make(map[int64]*Snapshot[V])
	s.cacheOrder = s.cacheOrder[:0]
}

// resolve computes a snapshot without touching the cache.
func (s *Scheduler[V]) resolve(remaining, duration time.Duration) (*Snapshot[V], error) {
	thresholds := make([]time.Duration, len(s.stages))

	for i, def := range s.stages {
		threshold, err := ParseThreshold(def.At, duration)
		if err != nil {
			return nil, err
		}

		thresholds[i] = threshold
	}

	if remaining <= 0 {
		last := len(s.stages) - 1

		return s.snapshotAt(last, 1), nil
	}

	// Tightest threshold still covering the remaining time. Scanning from
	// the end keeps the first matching stage in declaration order when
	// thresholds follow the descending convention.
	index := -1

	for i := len(s.stages) - 1; i >= 0; i-- {
		if thresholds[i] >= remaining {
			index = i

			break
		}
	}

	if index < 0 {
		// Remaining time exceeds every threshold; the countdown has not yet
		// entered the first stage's window.
		return s.snapshotAt(0, 0), nil
	}

	var floor time.Duration
	if index+1 < len(thresholds) {
		floor = thresholds[index+1]
	}

	progress := 1.0
	if window := thresholds[index] - floor; window > 0 {
		progress = float64(thresholds[index]-remaining) / float64(window)
	}

	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	return s.snapshotAt(index, progress), nil
}

// snapshotAt builds a snapshot for the stage at the given index.
func (s *Scheduler[V]) snapshotAt(index int, progress float64) *Snapshot[V] {
	return &Snapshot[V]{
		Name:       s.stages[index].Name,
		Values:     s.stages[index].Values,
		StageIndex: index,
		Progress:   progress,
	}
}

// store memoizes a snapshot, evicting the oldest entry once full.
func (s *Scheduler[V]) store(bucket int64, snapshot *Snapshot[V]) {
	if len(s.cache) >= s.opts.cacheCapacity && len(s.cacheOrder) > 0 {
		oldest := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		delete(s.cache, oldest)
	}

	s.cache[bucket] = snapshot
	s.cacheOrder = append(s.cacheOrder, bucket)
}
