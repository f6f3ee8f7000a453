package celebration

import (
	"github.com/oshokin/zero-hour/internal/clock"
	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
	"github.com/oshokin/zero-hour/internal/wallclock"
)

// Presenter receives display-state transitions for one countdown view.
// Animation duration is entirely the presenter's concern; the machine never
// waits for an animation-completion signal.
type Presenter interface {
	// Celebrating is the animated entry hook, invoked once per timezone.
	Celebrating(message string)
	// Celebrated is the terminal-state entry hook, invoked when the terminal
	// display is applied without the animation.
	Celebrated(message string)
	// Counting is the reset hook, invoked when the view returns to counting
	// from an animated or terminal state.
	Counting()
	// SetCelebrating flags the view-wide celebrating marker consumed by
	// presentation and ARIA hooks.
	SetCelebrating(active bool)
}

// Announcer receives the discrete completion event for accessibility
// output. Announcement throttling policy lives outside this package.
type Announcer interface {
	AnnounceCompletion(message string)
}

// Machine applies celebration transitions to an externally-owned store.
type Machine struct {
	// store holds the externally-owned celebration state.
	store Store
	// presenter receives display transitions; required.
	presenter Presenter
	// announcer receives completion events; may be nil.
	announcer Announcer
	// clk supplies the reference instant for timezone-switch decisions.
	clk clock.Clock
}

// NewMachine builds a Machine over the provided collaborators. A nil clock
// defaults to the system clock; the announcer may be nil.
func NewMachine(store Store, presenter Presenter, announcer Announcer, clk clock.Clock) *Machine {
	if clk == nil {
		clk = clock.Real()
	}

	return &Machine{
		store:     store,
		presenter: presenter,
		announcer: announcer,
		clk:       clk,
	}
}

// Celebrate runs the counting-to-celebrating transition for a timezone whose
// countdown just completed, then advances straight to celebrated: the
// machine does not wait for any animation to finish.
//
// The caller must only invoke this for a timezone not yet in the celebrated
// set; membership is not re-validated here.
func (m *Machine) Celebrate(timezone, message string) {
	m.store.SetCelebrationState(domain.StateCelebrating)
	m.store.MarkCelebrated(timezone)
	m.store.SetComplete(true)
	m.presenter.SetCelebrating(true)
	m.presenter.Celebrating(message)

	if m.announcer != nil {
		m.announcer.AnnounceCompletion(message)
	}

	m.store.SetCelebrationState(domain.StateCelebrated)
}

// SkipToCelebrated applies the terminal display state without the animation:
// the initial target was already past, or the user switched to a timezone
// that is past or already celebrated. The celebrated entry hook fires only
// for a timezone that has not celebrated before, preventing replay.
func (m *Machine) SkipToCelebrated(timezone, message string) {
	alreadyCelebrated := m.store.HasCelebrated(timezone)

	m.store.SetCelebrationState(domain.StateCelebrated)
	m.store.SetComplete(true)
	m.presenter.SetCelebrating(true)

	if !alreadyCelebrated {
		m.store.MarkCelebrated(timezone)
		m.presenter.Celebrated(message)
	}
}

// ResetToCounting returns the view to counting after a switch to a timezone
// whose target has not been reached. The counting hook fires only when the
// view was previously in an animated or terminal state.
func (m *Machine) ResetToCounting(previous domain.CelebrationState) {
	m.store.ResetCelebration()
	m.presenter.SetCelebrating(false)

	if previous != domain.StateCounting {
		m.presenter.Counting()
	}
}

// SwitchTimezone routes a wall-clock-mode timezone switch to the right
// transition: a timezone already celebrated or with a past target goes
// straight to the terminal state, any other returns the view to counting.
//
// Only wall-clock countdowns are timezone-sensitive; timer-mode and
// fixed-instant countdowns must never be routed through here. That check is
// the caller's responsibility.
func (m *Machine) SwitchTimezone(
	target domain.WallClockTime,
	timezone, message string,
	previous domain.CelebrationState,
) domain.CelebrationState {
	timezone = wallclock.EnsureValid(timezone)

	if m.store.HasCelebrated(timezone) || wallclock.HasReached(target, timezone, m.clk.Now()) {
		m.SkipToCelebrated(timezone, message)

		return domain.StateCelebrated
	}

	m.ResetToCounting(previous)

	return domain.StateCounting
}
