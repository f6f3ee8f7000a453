package clock

import (
	"runtime"
	"sync"
	"time"
)

// Fake is a manually driven Clock for tests. Its current time only moves
// when Advance or Set is called, and tickers fire synchronously during
// Advance, one delivery per elapsed interval.
type Fake struct {
	// mu protects the current time and the ticker list.
	mu sync.Mutex
	// now is the fake current time.
	now time.Time
	// tickers are all tickers created from this clock and not yet stopped.
	tickers []*fakeTicker
}

// NewFake returns a Fake clock starting at the provided time.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

// Set jumps the fake clock to the provided time without firing tickers.
func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = now
}

// Advance moves the fake clock forward and delivers due ticks in order.
// Delivery blocks until the consumer receives each tick, keeping test
// interleavings deterministic.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	deadline := f.now.Add(d)

	for {
		next, earliest := f.earliestDueLocked(deadline)
		if earliest == nil {
			break
		}

		f.now = next
		earliest.next = next.Add(earliest.interval)
		ch, done := earliest.ch, earliest.done
		f.mu.Unlock()

		// Deliver outside the lock so the consumer may call back into the
		// clock. A ticker stopped mid-delivery abandons the tick instead of
		// blocking the advance forever.
		select {
		case ch <- next:
		case <-done:
		}

		f.mu.Lock()
	}

	f.now = deadline
	f.mu.Unlock()
}

// BlockUntilTickers waits until at least n tickers have been created over
// the clock's lifetime, stopped ones included. Callers that start a ticking
// goroutine must synchronize on registration before the first Advance,
// otherwise the advance may run before the ticker exists and its ticks are
// silently skipped.
func (f *Fake) BlockUntilTickers(n int) {
	for {
		f.mu.Lock()
		created := len(f.tickers)
		f.mu.Unlock()

		if created >= n {
			return
		}

		runtime.Gosched()
	}
}

// earliestDueLocked finds the ticker with the earliest pending fire time
// not later than the deadline.
func (f *Fake) earliestDueLocked(deadline time.Time) (time.Time, *fakeTicker) {
	var (
		earliest *fakeTicker
		at       time.Time
	)

	for _, t := range f.tickers {
		if t.stopped || t.next.After(deadline) {
			continue
		}

		if earliest == nil || t.next.Before(at) {
			earliest = t
			at = t.next
		}
	}

	return at, earliest
}

// NewTicker returns a fake ticker firing every d during Advance.
func (f *Fake) NewTicker(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTicker{
		clock:    f,
		interval: d,
		next:     f.now.Add(d),
		ch:       make(chan time.Time),
		done:     make(chan struct{}),
	}
	f.tickers = append(f.tickers, t)

	return t
}

// fakeTicker is a Ticker driven by Fake.Advance.
type fakeTicker struct {
	clock    *Fake
	interval time.Duration
	next     time.Time
	ch       chan time.Time
	done     chan struct{}
	stopped  bool
}

// C returns the tick delivery channel.
func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

// Stop prevents further deliveries. Safe to call more than once.
func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if !t.stopped {
		t.stopped = true
		close(t.done)
	}
}
