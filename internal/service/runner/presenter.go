package runner

import (
	"context"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
	"github.com/oshokin/zero-hour/internal/logger"
	"github.com/oshokin/zero-hour/internal/stage"
)

// LogPresenter is a headless Presenter writing display transitions to the
// log. It backs non-interactive runs and keeps the runner testable without
// a terminal.
type LogPresenter struct {
	// ctx carries the scoped logger.
	ctx context.Context
	// lastStage suppresses repeated stage logs within a memoization bucket.
	lastStage *stage.Snapshot[string]
}

// NewLogPresenter creates a presenter logging through the provided context.
func NewLogPresenter(ctx context.Context) *LogPresenter {
	return &LogPresenter{ctx: ctx}
}

// UpdateTime logs the recomputed remaining time at debug level.
func (p *LogPresenter) UpdateTime(remaining domain.TimeRemaining) {
	logger.DebugKV(p.ctx, "Tick", "remaining", remaining.String())
}

// UpdateStage logs stage changes. Pointer-identical snapshots are skipped.
func (p *LogPresenter) UpdateStage(snapshot *stage.Snapshot[string]) {
	if snapshot == p.lastStage {
		return
	}

	p.lastStage = snapshot

	logger.DebugKV(p.ctx, "Stage",
		"name", snapshot.Name,
		"index", snapshot.StageIndex,
		"progress", snapshot.Progress,
	)
}

// Celebrating logs the animated completion entry.
func (p *LogPresenter) Celebrating(message string) {
	logger.Infof(p.ctx, "%s", message)
}

// Celebrated logs the terminal state entry.
func (p *LogPresenter) Celebrated(message string) {
	logger.Infof(p.ctx, "%s", message)
}

// Counting logs the return to counting.
func (p *LogPresenter) Counting() {
	logger.Info(p.ctx, "Counting resumed")
}

// SetCelebrating records the view-wide celebrating marker.
func (p *LogPresenter) SetCelebrating(active bool) {
	logger.DebugKV(p.ctx, "Celebrating marker", "active", active)
}
