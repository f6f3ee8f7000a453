package ticker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/zero-hour/internal/clock"
	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// recorder collects loop callbacks through channels so tests can synchronize
// with the ticking goroutine.
type recorder struct {
	ticks     chan domain.TimeRemaining
	completes chan struct{}
	complete  bool
}

func newRecorder() *recorder {
	return &recorder{
		ticks:     make(chan domain.TimeRemaining, 16),
		completes: make(chan struct{}, 16),
	}
}

func (r *recorder) onTick(remaining domain.TimeRemaining) {
	r.ticks <- remaining
}

func (r *recorder) onComplete() {
	r.complete = true
	r.completes <- struct{}{}
}

func (r *recorder) isComplete() bool {
	return r.complete
}

// nextTick waits for one tick with a real-time guard against hangs.
func (r *recorder) nextTick(t *testing.T) domain.TimeRemaining {
	t.Helper()

	select {
	case remaining := <-r.ticks:
		return remaining
	case <-time.After(2 * time.Second):
		t.Fatal("expected a tick")
		return domain.TimeRemaining{}
	}
}

// requireQuiet asserts that no tick and no completion is pending.
func (r *recorder) requireQuiet(t *testing.T) {
	t.Helper()

	select {
	case remaining := <-r.ticks:
		t.Fatalf("unexpected tick: %v", remaining)
	case <-r.completes:
		t.Fatal("unexpected completion")
	default:
	}
}

// newTestLoop builds a loop against a fake clock with a fixed target.
func newTestLoop(t *testing.T, rec *recorder, fake *clock.Fake, target time.Time) *Loop {
	t.Helper()

	loop, err := NewLoop(Config{
		Target:     func() time.Time { return target },
		OnTick:     rec.onTick,
		OnComplete: rec.onComplete,
		IsComplete: rec.isComplete,
		Interval:   time.Second,
		Clock:      fake,
	})
	require.NoError(t, err)

	return loop
}

// TestNewLoopRequiresTarget verifies construction validation.
func TestNewLoopRequiresTarget(t *testing.T) {
	t.Parallel()

	_, err := NewLoop(Config{})
	require.ErrorIs(t, err, ErrNoTargetProvider)
}

// TestStartEmitsImmediateTick verifies the synchronous first tick and that
// Start is idempotent.
func TestStartEmitsImmediateTick(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := newRecorder()
	loop := newTestLoop(t, rec, fake, start.Add(10*time.Second))

	defer loop.Stop()

	_, ok := loop.LastTime()
	require.False(t, ok)

	loop.Start()

	remaining := rec.nextTick(t)
	require.Equal(t, 10*time.Second, remaining.Total)

	last, ok := loop.LastTime()
	require.True(t, ok)
	require.Equal(t, remaining, last)

	// A second Start must not emit another immediate tick.
	loop.Start()
	rec.requireQuiet(t)
}

// TestCompletionScenario runs the canonical schedule: a target 1500 ms out
// with a 1000 ms interval ticks at t=0 and t=1000, completes once at t=2000
// and stays silent afterwards.
func TestCompletionScenario(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := newRecorder()
	loop := newTestLoop(t, rec, fake, start.Add(1500*time.Millisecond))

	defer loop.Stop()

	loop.Start()
	require.Equal(t, 1500*time.Millisecond, rec.nextTick(t).Total)
	fake.BlockUntilTickers(1)

	fake.Advance(time.Second)
	require.Equal(t, 500*time.Millisecond, rec.nextTick(t).Total)

	fake.Advance(time.Second)

	select {
	case <-rec.completes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected completion")
	}

	// Further cycles emit neither ticks nor another completion.
	fake.Advance(3 * time.Second)
	rec.requireQuiet(t)
}

// TestPauseResume verifies the freeze semantics: no ticking while paused,
// one immediate tick on resume, periodic cadence restored.
func TestPauseResume(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := newRecorder()
	loop := newTestLoop(t, rec, fake, start.Add(time.Minute))

	defer loop.Stop()

	loop.Start()
	rec.nextTick(t)
	fake.BlockUntilTickers(1)

	loop.Pause()

	frozen, paused := loop.PausedRemaining()
	require.True(t, paused)
	require.Equal(t, time.Minute, frozen)

	// Paused: neither the cadence nor a manual Tick produces output.
	fake.Advance(5 * time.Second)
	loop.Tick()
	rec.requireQuiet(t)

	// Pausing again is a no-op.
	loop.Pause()

	loop.Resume()
	rec.nextTick(t)
	fake.BlockUntilTickers(2)

	fake.Advance(time.Second)
	rec.nextTick(t)
}

// TestSetPausedRemaining verifies overwriting the frozen duration and that
// it has no effect while running.
func TestSetPausedRemaining(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := newRecorder()
	loop := newTestLoop(t, rec, fake, start.Add(time.Minute))

	defer loop.Stop()

	loop.Start()
	rec.nextTick(t)

	// Not paused: the call must be ignored.
	loop.SetPausedRemaining(5 * time.Second)

	_, paused := loop.PausedRemaining()
	require.False(t, paused)

	loop.Pause()
	loop.SetPausedRemaining(5 * time.Second)

	frozen, paused := loop.PausedRemaining()
	require.True(t, paused)
	require.Equal(t, 5*time.Second, frozen)

	// ForceUpdate reports the frozen value without unpausing.
	loop.ForceUpdate()
	require.Equal(t, 5*time.Second, rec.nextTick(t).Total)

	_, paused = loop.PausedRemaining()
	require.True(t, paused)
}

// TestPauseAfterCompletion ensures the loop never pauses past completion.
func TestPauseAfterCompletion(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := newRecorder()
	loop := newTestLoop(t, rec, fake, start)

	defer loop.Stop()

	loop.Start()

	select {
	case <-rec.completes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected completion")
	}

	loop.Pause()

	_, paused := loop.PausedRemaining()
	require.False(t, paused)
}

// TestConcurrentCompletionFiresOnce hammers on-demand steps from several
// goroutines with the target already past: however the steps interleave,
// exactly one of them may observe the predicate false and fire the
// completion callback.
func TestConcurrentCompletionFiresOnce(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)

	var fired atomic.Int32

	loop, err := NewLoop(Config{
		Target: func() time.Time { return start.Add(-time.Second) },
		OnComplete: func() {
			fired.Add(1)
		},
		IsComplete: func() bool {
			return fired.Load() > 0
		},
		Clock: fake,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				loop.ForceUpdate()
			}
		}()
	}

	wg.Wait()

	require.Equal(t, int32(1), fired.Load())
}

// TestStopIdempotent ensures Stop is safe before Start and when repeated.
func TestStopIdempotent(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := newRecorder()
	loop := newTestLoop(t, rec, fake, start.Add(time.Minute))

	loop.Stop()
	loop.Start()
	rec.nextTick(t)
	loop.Stop()
	loop.Stop()

	// No cadence survives a stop.
	fake.Advance(5 * time.Second)
	rec.requireQuiet(t)
}

// TestRetargetWithoutRebuild verifies the provider is re-read every tick.
func TestRetargetWithoutRebuild(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := newRecorder()

	target := start.Add(time.Minute)
	loop, err := NewLoop(Config{
		Target:     func() time.Time { return target },
		OnTick:     rec.onTick,
		OnComplete: rec.onComplete,
		IsComplete: rec.isComplete,
		Interval:   time.Second,
		Clock:      fake,
	})
	require.NoError(t, err)

	defer loop.Stop()

	loop.Start()
	require.Equal(t, time.Minute, rec.nextTick(t).Total)

	// Retargeting takes effect on the very next tick.
	target = start.Add(time.Hour)

	loop.Tick()
	require.Equal(t, time.Hour, rec.nextTick(t).Total)
}
