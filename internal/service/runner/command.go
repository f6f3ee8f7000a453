package runner

import (
	"context"
	"fmt"

	"github.com/oshokin/zero-hour/internal/config"
	"github.com/oshokin/zero-hour/internal/logger"
	"github.com/oshokin/zero-hour/internal/repository/state"
)

// Options controls the countdown run.
type Options struct {
	// ConfigPath specifies the path to the countdown definition YAML file.
	ConfigPath string
	// Timezone provides an optional timezone override for wall-clock mode.
	Timezone string
	// Language provides an optional announcement locale override.
	Language string
	// StatePath enables celebration-state persistence at the given file.
	StatePath string
	// Presenter receives display updates. Defaults to a logging presenter.
	Presenter Presenter
}

// Run loads the countdown definition and drives it to completion or until
// the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "zero-hour")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load countdown definition: %w", err)
	}

	// Command line overrides take precedence over the definition file.
	if opts.Timezone != "" {
		cfg.Timezone = opts.Timezone
	}

	if opts.Language != "" {
		cfg.Language = opts.Language
	}

	// Tag every log line from this run with the effective timezone.
	ctx = logger.WithKV(ctx, "timezone", cfg.Timezone)

	presenter := opts.Presenter
	if presenter == nil {
		presenter = NewLogPresenter(ctx)
	}

	r, err := New(ctx, cfg, presenter, nil)
	if err != nil {
		return fmt.Errorf("initialise countdown: %w", err)
	}

	if opts.StatePath != "" {
		if err = r.UseStateRepository(ctx, state.NewFileRepository(opts.StatePath)); err != nil {
			return err
		}
	}

	return r.Run(ctx)
}
