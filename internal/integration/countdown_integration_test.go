package integration

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/zero-hour/internal/config"
	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
	"github.com/oshokin/zero-hour/internal/repository/state"
	"github.com/oshokin/zero-hour/internal/service/runner"
	"github.com/oshokin/zero-hour/internal/stage"
)

// recordingPresenter is a minimal presenter capturing celebration hooks.
type recordingPresenter struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPresenter) UpdateTime(domain.TimeRemaining) {}

func (p *recordingPresenter) UpdateStage(*stage.Snapshot[string]) {}

func (p *recordingPresenter) Celebrating(string) { p.record("celebrating") }

func (p *recordingPresenter) Celebrated(string) { p.record("celebrated") }

func (p *recordingPresenter) Counting() { p.record("counting") }

func (p *recordingPresenter) SetCelebrating(bool) {}

func (p *recordingPresenter) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
}

func (p *recordingPresenter) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.events...)
}

// TestCountdown_TimerRunsToCompletion drives a short real-time timer through
// the full command surface and checks the persisted snapshot afterwards.
func TestCountdown_TimerRunsToCompletion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "countdown.yaml")
	statePath := filepath.Join(dir, "state.yaml")

	err := config.Save(cfgPath, &config.Config{
		Title:        "Kettle",
		Duration:     300 * time.Millisecond,
		TickInterval: 50 * time.Millisecond,
		Stages: []config.Stage{
			{Name: "calm", At: "100%", Glyph: "·"},
			{Name: "final", At: "0.2s", Glyph: "!"},
		},
	})
	require.NoError(t, err)

	presenter := &recordingPresenter{}

	err = runner.Run(context.Background(), &runner.Options{
		ConfigPath: cfgPath,
		StatePath:  statePath,
		Presenter:  presenter,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"celebrating"}, presenter.recorded())

	// The terminal state survived to disk.
	snapshot, err := state.NewFileRepository(statePath).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.StateCelebrated, snapshot.State)
	require.True(t, snapshot.Complete)
	require.Equal(t, []string{"UTC"}, snapshot.Celebrated)
}

// TestCountdown_CelebratedSetSurvivesRestart runs the same past-target
// countdown twice against one state file: the first run fires the celebrated
// hook, the second stays silent because the timezone already celebrated.
func TestCountdown_CelebratedSetSurvivesRestart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "countdown.yaml")
	statePath := filepath.Join(dir, "state.yaml")

	err := config.Save(cfgPath, &config.Config{
		Title:    "Millennium",
		Timezone: "Europe/Moscow",
		WallClock: &config.WallClock{
			Year: 2020,
			Day:  1,
		},
	})
	require.NoError(t, err)

	first := &recordingPresenter{}

	err = runner.Run(context.Background(), &runner.Options{
		ConfigPath: cfgPath,
		StatePath:  statePath,
		Presenter:  first,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"celebrated"}, first.recorded())

	second := &recordingPresenter{}

	err = runner.Run(context.Background(), &runner.Options{
		ConfigPath: cfgPath,
		StatePath:  statePath,
		Presenter:  second,
	})
	require.NoError(t, err)
	require.Empty(t, second.recorded())
}

// TestCountdown_ReturnsOnCancel cancels a countdown far from its target and
// verifies a clean exit.
func TestCountdown_ReturnsOnCancel(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "countdown.yaml")

	err := config.Save(cfgPath, &config.Config{
		Title:        "Someday",
		Duration:     time.Hour,
		TickInterval: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- runner.Run(runCtx, &runner.Options{ConfigPath: cfgPath})
	}()

	// Let a few ticks pass, then cancel.
	time.Sleep(120 * time.Millisecond)
	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the countdown to exit on cancellation")
	}
}
