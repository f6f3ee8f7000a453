package ticker

import (
	"errors"
	"sync"
	"time"

	"github.com/oshokin/zero-hour/internal/clock"
	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// DefaultInterval is the tick cadence used when none is configured.
const DefaultInterval = time.Second

// ErrNoTargetProvider is returned when a Loop is built without a target provider.
var ErrNoTargetProvider = errors.New("target provider is required")

// Config holds the collaborators and settings of a Loop.
type Config struct {
	// Target returns the current target instant. It is called on every tick
	// so the countdown may be retargeted without rebuilding the loop.
	Target func() time.Time
	// OnTick receives every recomputed TimeRemaining that is not suppressed
	// by a completion cycle.
	OnTick func(domain.TimeRemaining)
	// OnComplete fires when the remaining time reaches zero while IsComplete
	// still reports false. Within one tick cycle at most one of OnTick and
	// OnComplete is invoked.
	OnComplete func()
	// IsComplete is the externally-owned completion predicate. Completion
	// ownership lives outside the loop so a single state machine stays the
	// sole source of truth and the loop never double-fires.
	IsComplete func() bool
	// Interval is the tick cadence. Defaults to DefaultInterval.
	Interval time.Duration
	// Clock supplies time; defaults to the system clock.
	Clock clock.Clock
}

// Loop is a periodic countdown tick scheduler.
type Loop struct {
	// cfg is immutable after construction.
	cfg Config

	// mu protects the mutable run state below.
	mu sync.Mutex
	// running reports whether the loop has been started and not stopped.
	running bool
	// paused freezes periodic and on-demand ticking.
	paused bool
	// pausedRemaining is the remaining duration captured when pausing.
	pausedRemaining time.Duration
	// last is the most recently computed remaining time, nil before the
	// first tick.
	last *domain.TimeRemaining
	// completedFallback latches completion when no external predicate is
	// configured, keeping OnComplete exactly-once in standalone use.
	completedFallback bool
	// completing serializes completion dispatch across concurrent steps.
	completing bool
	// stopCh cancels the active ticking goroutine, nil when none runs.
	stopCh chan struct{}
}

// NewLoop builds a Loop from the provided configuration.
func NewLoop(cfg Config) (*Loop, error) {
	if cfg.Target == nil {
		return nil, ErrNoTargetProvider
	}

	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}

	return &Loop{cfg: cfg}, nil
}

// Start begins periodic ticking. It is idempotent: a running loop is left
// untouched. The first tick is computed and emitted immediately, then the
// loop ticks at the configured interval.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}

	l.running = true
	l.paused = false
	stopCh := make(chan struct{})
	l.stopCh = stopCh
	l.mu.Unlock()

	l.step(false)

	go l.run(stopCh)
}

// Stop cancels the periodic timer. It is idempotent and safe to call before
// Start or multiple times; no timer is left dangling.
func (l *Loop) Stop() {
	l.mu.Lock()
	stopCh := l.stopCh
	l.stopCh = nil
	l.running = false
	l.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
}

// Tick computes and emits one TimeRemaining immediately, independent of
// Start. It is a no-op while paused.
func (l *Loop) Tick() {
	l.step(false)
}

// ForceUpdate computes and emits one tick regardless of pause state, without
// mutating it.
func (l *Loop) ForceUpdate() {
	l.step(true)
}

// Pause cancels the periodic timer and captures the remaining duration at
// this moment. It is a no-op when already paused, not running, or already
// complete: the loop never pauses past completion.
func (l *Loop) Pause() {
	if l.isDone() {
		return
	}

	remaining := l.cfg.Target().Sub(l.cfg.Clock.Now())

	l.mu.Lock()
	if !l.running || l.paused {
		l.mu.Unlock()
		return
	}

	l.paused = true
	l.pausedRemaining = remaining
	stopCh := l.stopCh
	l.stopCh = nil
	l.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
}

// Resume clears the paused flag, emits one immediate tick, and restarts
// periodic ticking at the original cadence. It is a no-op when not paused.
func (l *Loop) Resume() {
	l.mu.Lock()
	if !l.paused || !l.running {
		l.mu.Unlock()
		return
	}

	l.paused = false
	stopCh := make(chan struct{})
	l.stopCh = stopCh
	l.mu.Unlock()

	l.step(false)

	go l.run(stopCh)
}

// SetPausedRemaining overwrites the captured remaining duration while
// paused, e.g. to reset a paused timer. It has no effect when not paused.
func (l *Loop) SetPausedRemaining(remaining time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		l.pausedRemaining = remaining
	}
}

// PausedRemaining returns the frozen remaining duration and whether the loop
// is currently paused.
func (l *Loop) PausedRemaining() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.pausedRemaining, l.paused
}

// LastTime returns the most recently computed TimeRemaining, reporting false
// before the first tick.
func (l *Loop) LastTime() (domain.TimeRemaining, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.last == nil {
		return domain.TimeRemaining{}, false
	}

	return *l.last, true
}

// run delivers periodic ticks until the stop channel closes.
func (l *Loop) run(stopCh chan struct{}) {
	tk := l.cfg.Clock.NewTicker(l.cfg.Interval)
	defer tk.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-tk.C():
			// A tick that raced with Stop or Pause must not emit.
			select {
			case <-stopCh:
				return
			default:
			}

			l.step(false)
		}
	}
}

// step computes one tick cycle and dispatches at most one of the OnTick and
// OnComplete callbacks.
func (l *Loop) step(force bool) {
	l.mu.Lock()
	paused := l.paused
	frozen := l.pausedRemaining
	l.mu.Unlock()

	if paused && !force {
		return
	}

	var remaining domain.TimeRemaining
	if paused {
		remaining = domain.NewTimeRemaining(frozen)
	} else {
		remaining = domain.RemainingUntil(l.cfg.Target(), l.cfg.Clock.Now())
	}

	l.mu.Lock()
	l.last = &remaining
	l.mu.Unlock()

	if remaining.IsReached() {
		l.dispatchCompletion()

		return
	}

	if l.cfg.OnTick != nil {
		l.cfg.OnTick(remaining)
	}
}

// dispatchCompletion fires OnComplete once per false-to-true transition of
// the completion predicate; while the predicate reports true the cycle emits
// nothing. Steps run concurrently when an on-demand Tick or ForceUpdate
// overlaps the cadence goroutine, so the check and the dispatch are guarded
// by a latch: only the step holding it can observe the predicate false, and
// the callback has flipped the predicate by the time the latch clears.
func (l *Loop) dispatchCompletion() {
	l.mu.Lock()
	if l.completing {
		l.mu.Unlock()
		return
	}

	l.completing = true
	l.mu.Unlock()

	if !l.completed() && l.cfg.OnComplete != nil {
		l.cfg.OnComplete()
	}

	l.mu.Lock()
	l.completing = false
	l.mu.Unlock()
}

// isDone reports the current completion status without latching the fallback.
func (l *Loop) isDone() bool {
	if l.cfg.IsComplete != nil {
		return l.cfg.IsComplete()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.completedFallback
}

// completed reports whether completion already fired. When no external
// predicate is configured it latches the internal fallback, so the caller
// observing false owns the one completion dispatch.
func (l *Loop) completed() bool {
	if l.cfg.IsComplete != nil {
		return l.cfg.IsComplete()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.completedFallback {
		return true
	}

	l.completedFallback = true

	return false
}
