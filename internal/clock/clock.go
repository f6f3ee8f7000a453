package clock

import "time"

// Clock provides the time operations the tick loop needs.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// NewTicker returns a ticker delivering ticks every d.
	NewTicker(d time.Duration) Ticker
}

// Ticker is a periodic tick source, a minimal view of time.Ticker.
type Ticker interface {
	// C returns the channel ticks are delivered on.
	C() <-chan time.Time
	// Stop turns the ticker off. It does not close the channel.
	Stop()
}

// realClock implements Clock with the standard time package.
type realClock struct{}

// Real returns a Clock backed by the host system time.
func Real() Clock {
	return realClock{}
}

// Now returns the current system time.
func (realClock) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker.
func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

// realTicker adapts time.Ticker to the Ticker interface.
type realTicker struct {
	ticker *time.Ticker
}

// C returns the underlying ticker channel.
func (t *realTicker) C() <-chan time.Time {
	return t.ticker.C
}

// Stop stops the underlying ticker.
func (t *realTicker) Stop() {
	t.ticker.Stop()
}
