package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/zero-hour/internal/announce"
	"github.com/oshokin/zero-hour/internal/celebration"
	"github.com/oshokin/zero-hour/internal/clock"
	"github.com/oshokin/zero-hour/internal/config"
	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
	"github.com/oshokin/zero-hour/internal/logger"
	"github.com/oshokin/zero-hour/internal/repository/state"
	"github.com/oshokin/zero-hour/internal/stage"
	"github.com/oshokin/zero-hour/internal/ticker"
	"github.com/oshokin/zero-hour/internal/wallclock"
)

// Presenter is the display collaborator of one countdown view. It extends
// the celebration hooks with the per-tick outputs.
type Presenter interface {
	celebration.Presenter

	// UpdateTime receives every non-suppressed TimeRemaining.
	UpdateTime(remaining domain.TimeRemaining)
	// UpdateStage receives the active display stage for the tick. Snapshots
	// repeat pointer-identical within a memoization bucket, so presenters
	// may skip redraws with a pointer comparison.
	UpdateStage(snapshot *stage.Snapshot[string])
}

// Runner drives a single countdown to completion.
type Runner struct {
	// cfg is the validated countdown definition.
	cfg *config.Config
	// presenter receives display updates.
	presenter Presenter
	// messages formats localized announcement phrases.
	messages *announce.Messages
	// store holds celebration state; the runner owns exactly one per view.
	store *celebration.MemoryStore
	// machine applies celebration transitions to the store.
	machine *celebration.Machine
	// loop is the periodic tick scheduler.
	loop *ticker.Loop
	// stages resolves display stages, nil when none are configured.
	stages *stage.Scheduler[string]
	// repo persists celebration state across runs, nil when persistence
	// is off.
	repo state.Repository
	// clk supplies time.
	clk clock.Clock
	// ctx carries the scoped logger for callbacks.
	ctx context.Context

	// mu protects the retargetable state below.
	mu sync.Mutex
	// timezone is the normalized current timezone (wall-clock mode).
	timezone string
	// target is the current target instant.
	target time.Time
	// duration is the full countdown window used for stage resolution.
	duration time.Duration

	// doneOnce closes done exactly once.
	doneOnce sync.Once
	// done is closed when the view reaches the terminal celebrated state.
	done chan struct{}
}

// New builds a Runner for the provided definition and presenter. A nil clock
// defaults to the system clock.
func New(ctx context.Context, cfg *config.Config, presenter Presenter, clk clock.Clock) (*Runner, error) {
	if clk == nil {
		clk = clock.Real()
	}

	messages, err := announce.NewMessages(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("build announcements: %w", err)
	}

	r := &Runner{
		cfg:       cfg,
		presenter: presenter,
		messages:  messages,
		store:     celebration.NewMemoryStore(),
		clk:       clk,
		ctx:       ctx,
		done:      make(chan struct{}),
	}

	// Untrusted timezone input degrades to UTC instead of failing.
	r.timezone = wallclock.EnsureValid(cfg.Timezone)
	if r.timezone != cfg.Timezone && cfg.Timezone != "" {
		logger.WarnKV(ctx, "Unknown timezone, falling back to UTC", "timezone", cfg.Timezone)
	}

	now := clk.Now()
	r.target = r.resolveTarget(now)
	r.duration = r.target.Sub(now)

	if err := r.buildStages(); err != nil {
		return nil, err
	}

	r.machine = celebration.NewMachine(r.store, presenter, r, clk)

	loop, err := ticker.NewLoop(ticker.Config{
		Target:     r.currentTarget,
		OnTick:     r.onTick,
		OnComplete: r.onComplete,
		IsComplete: r.store.IsComplete,
		Interval:   cfg.TickInterval,
		Clock:      clk,
	})
	if err != nil {
		return nil, fmt.Errorf("build tick loop: %w", err)
	}

	r.loop = loop

	return r, nil
}

// UseStateRepository attaches a persistence repository and restores the
// previously celebrated timezones, so a restarted countdown never replays an
// animation for a timezone that already saw it. Must be called before Run.
func (r *Runner) UseStateRepository(ctx context.Context, repo state.Repository) error {
	snapshot, err := repo.Load(ctx)
	if err != nil && !errors.Is(err, state.ErrNotFound) {
		return fmt.Errorf("load celebration state: %w", err)
	}

	if snapshot != nil {
		r.store.RestoreCelebrated(snapshot.Celebrated)
	}

	r.repo = repo

	return nil
}

// Run starts the countdown and blocks until the view reaches its terminal
// state or the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	logger.InfoKV(ctx, "Countdown started",
		"title", r.cfg.Title,
		"mode", string(r.cfg.Mode),
		"timezone", r.Timezone(),
		"target", r.currentTarget().Format(time.RFC3339),
	)

	// A target already in the past skips the animation entirely.
	if !r.clk.Now().Before(r.currentTarget()) {
		r.machine.SkipToCelebrated(r.Timezone(), r.completionMessage())
		r.persist()
		r.finish()
	}

	r.loop.Start()
	defer r.loop.Stop()

	select {
	case <-ctx.Done():
		logger.Info(ctx, "Context canceled, exiting")
		return nil
	case <-r.done:
		logger.Info(ctx, "Countdown finished")
		return nil
	}
}

// Pause freezes the countdown. Meaningful for timer mode, where resuming
// shifts the target so the frozen remaining time is preserved.
func (r *Runner) Pause() {
	r.loop.Pause()
}

// Resume unfreezes a paused countdown. In timer mode the target is shifted
// to now plus the frozen remaining duration before ticking restarts.
func (r *Runner) Resume() {
	if remaining, paused := r.loop.PausedRemaining(); paused && r.cfg.Mode == domain.ModeTimer {
		r.setTarget(r.clk.Now().Add(remaining))
	}

	r.loop.Resume()
}

// ResetTimer rewinds a paused timer back to its full duration.
func (r *Runner) ResetTimer() {
	if r.cfg.Mode != domain.ModeTimer {
		return
	}

	r.loop.SetPausedRemaining(r.cfg.Duration)
}

// SwitchTimezone applies a timezone switch in wall-clock mode. Timer and
// fixed-instant countdowns are timezone-invariant, so the switch is refused
// before it reaches the state machine.
func (r *Runner) SwitchTimezone(tz string) {
	if r.cfg.Mode != domain.ModeWallClock {
		logger.WarnKV(r.ctx, "Timezone switch ignored outside wall-clock mode", "mode", string(r.cfg.Mode))
		return
	}

	tz = wallclock.EnsureValid(tz)
	target := r.cfg.WallClock.Domain()

	r.mu.Lock()
	previous := r.store.State()
	r.timezone = tz
	r.target = wallclock.ToAbsolute(target, tz)
	r.duration = r.target.Sub(r.clk.Now())
	r.mu.Unlock()

	next := r.machine.SwitchTimezone(target, tz, r.completionMessage(), previous)
	r.persist()

	logger.InfoKV(r.ctx, "Timezone switched", "timezone", tz, "state", string(next))

	// Refresh the display immediately instead of waiting for the cadence.
	r.loop.ForceUpdate()
}

// Timezone returns the normalized current timezone.
func (r *Runner) Timezone() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.timezone
}

// State returns the current celebration state.
func (r *Runner) State() domain.CelebrationState {
	return r.store.State()
}

// Done is closed once the view reaches the terminal celebrated state.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// AnnounceCompletion emits the completion event for accessibility output.
// Throttling policy is not this core's concern; completion is discrete.
func (r *Runner) AnnounceCompletion(message string) {
	logger.Infof(r.ctx, "%s", message)
}

// onTick forwards a recomputed remaining time to the presenter and the
// stage scheduler.
func (r *Runner) onTick(remaining domain.TimeRemaining) {
	r.presenter.UpdateTime(remaining)

	logger.Debugf(r.ctx, "%s", r.messages.Remaining(remaining))

	if r.stages == nil {
		return
	}

	r.mu.Lock()
	duration := r.duration
	r.mu.Unlock()

	snapshot, err := r.stages.GetStage(remaining.Total, duration)
	if err != nil {
		// Threshold syntax was checked at construction; anything here is new.
		logger.ErrorKV(r.ctx, "Stage lookup failed", "error", err)
		return
	}

	r.presenter.UpdateStage(snapshot)
}

// onComplete routes the one completion transition through the state machine.
func (r *Runner) onComplete() {
	r.machine.Celebrate(r.Timezone(), r.completionMessage())
	r.persist()
	r.finish()
}

// persist snapshots the celebration state. A write failure does not stop the
// countdown; the snapshot is an optimization for the next run.
func (r *Runner) persist() {
	if r.repo == nil {
		return
	}

	snapshot := &state.Snapshot{
		State:      r.store.State(),
		Complete:   r.store.IsComplete(),
		Celebrated: r.store.Celebrated(),
		SavedAt:    r.clk.Now(),
	}

	if err := r.repo.Save(r.ctx, snapshot); err != nil {
		logger.ErrorKV(r.ctx, "Failed to save celebration state", "error", err)
	}
}

// finish marks the terminal state reached.
func (r *Runner) finish() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

// completionMessage formats the localized completion phrase.
func (r *Runner) completionMessage() string {
	title := r.cfg.Title
	if title == "" {
		title = "Countdown"
	}

	return r.messages.Completion(title)
}

// currentTarget is the loop's target provider; it is re-read on every tick
// so retargeting (timezone switches, timer resumes) needs no loop rebuild.
func (r *Runner) currentTarget() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.target
}

// setTarget replaces the target instant.
func (r *Runner) setTarget(target time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.target = target
}

// resolveTarget computes the initial target instant for the configured mode.
func (r *Runner) resolveTarget(now time.Time) time.Time {
	switch r.cfg.Mode {
	case domain.ModeTimer:
		return now.Add(r.cfg.Duration)
	case domain.ModeWallClock:
		return wallclock.ToAbsolute(r.cfg.WallClock.Domain(), r.timezone)
	case domain.ModeInstant:
		fallthrough
	default:
		return r.cfg.Target
	}
}

// buildStages constructs the stage scheduler and fails fast on threshold
// syntax errors so misconfiguration never surfaces mid-countdown.
func (r *Runner) buildStages() error {
	if len(r.cfg.Stages) == 0 {
		return nil
	}

	defs := make([]stage.Definition[string], 0, len(r.cfg.Stages))

	for _, s := range r.cfg.Stages {
		if _, err := stage.ParseThreshold(s.At, r.duration); err != nil {
			return fmt.Errorf("stage %q: %w", s.Name, err)
		}

		defs = append(defs, stage.Definition[string]{
			Name:   s.Name,
			At:     s.At,
			Values: s.Glyph,
		})
	}

	r.stages = stage.New(defs)

	return nil
}
