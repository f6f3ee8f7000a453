package cmd

import (
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
	"github.com/oshokin/zero-hour/internal/stage"
)

// displayRefreshRate is the terminal redraw cadence.
const displayRefreshRate = 150 * time.Millisecond

// CountdownDisplay renders the countdown as a terminal progress bar. The bar
// fills as the target approaches; the active stage glyph and the remaining
// time are drawn next to it.
//
// The bar is created lazily on the first tick, when the full countdown
// window is known. Logs go to stderr, so the bar owns stdout.
type CountdownDisplay struct {
	// progress is the mpb render container.
	progress *mpb.Progress
	// mu protects the fields below; decorators read them from the render
	// goroutine.
	mu sync.Mutex
	// bar is the countdown bar, nil until the first tick.
	bar *mpb.Bar
	// total is the full countdown window captured on the first tick.
	total time.Duration
	// remaining is the latest remaining time.
	remaining domain.TimeRemaining
	// glyph is the active stage indicator.
	glyph string
	// message is the completion phrase shown once the countdown ends.
	message string
	// celebrating is the view-wide celebrating marker.
	celebrating bool
}

// NewCountdownDisplay creates a display rendering to stdout.
func NewCountdownDisplay() *CountdownDisplay {
	return &CountdownDisplay{
		progress: mpb.New(
			mpb.WithWidth(64),
			mpb.WithRefreshRate(displayRefreshRate),
		),
	}
}

// UpdateTime advances the bar to match the remaining time. Bar calls happen
// outside the lock: the render goroutine takes the same lock in decorators.
func (d *CountdownDisplay) UpdateTime(remaining domain.TimeRemaining) {
	d.mu.Lock()
	d.remaining = remaining

	if d.bar == nil {
		d.initBarLocked(remaining.Total)
	}

	bar := d.bar

	elapsed := d.total - remaining.Total
	if elapsed < 0 {
		elapsed = 0
	}
	d.mu.Unlock()

	bar.SetCurrent(int64(elapsed / time.Second))
}

// UpdateStage switches the stage glyph. Pointer-identical snapshots are
// skipped for free because the glyph assignment is idempotent.
func (d *CountdownDisplay) UpdateStage(snapshot *stage.Snapshot[string]) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.glyph = snapshot.Values
}

// Celebrating completes the bar and shows the completion phrase.
func (d *CountdownDisplay) Celebrating(message string) {
	d.completeBar(message)
}

// Celebrated shows the terminal state without the fill animation having run.
func (d *CountdownDisplay) Celebrated(message string) {
	d.completeBar(message)
}

// Counting clears the terminal message after a switch back to a running
// countdown.
func (d *CountdownDisplay) Counting() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.message = ""
}

// SetCelebrating records the view-wide celebrating marker.
func (d *CountdownDisplay) SetCelebrating(active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.celebrating = active
}

// Close aborts an unfinished bar and waits for the render goroutine.
func (d *CountdownDisplay) Close() {
	d.mu.Lock()
	bar := d.bar
	d.mu.Unlock()

	if bar != nil && !bar.Completed() {
		bar.Abort(false)
	}

	d.progress.Wait()
}

// completeBar fills the bar and records the completion phrase.
func (d *CountdownDisplay) completeBar(message string) {
	d.mu.Lock()
	d.message = message

	if d.bar == nil {
		d.initBarLocked(0)
	}

	bar := d.bar
	total := int64(d.total / time.Second)
	d.mu.Unlock()

	if total <= 0 {
		total = 1
	}

	bar.SetCurrent(total)
}

// initBarLocked creates the bar once the countdown window is known.
func (d *CountdownDisplay) initBarLocked(total time.Duration) {
	d.total = total

	totalSeconds := int64(total / time.Second)
	if totalSeconds <= 0 {
		totalSeconds = 1
	}

	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")

	d.bar = d.progress.New(totalSeconds,
		barStyle,
		mpb.PrependDecorators(
			decor.Name("T-minus", decor.WC{W: 8, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string {
				return d.label()
			}),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				return d.suffix()
			}),
		),
	)
	d.bar.EnableTriggerComplete()
}

// label renders the remaining time next to the bar.
func (d *CountdownDisplay) label() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.message != "" {
		return d.message
	}

	return d.remaining.String()
}

// suffix renders the active stage glyph.
func (d *CountdownDisplay) suffix() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.glyph
}
