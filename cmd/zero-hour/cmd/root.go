package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/zero-hour/internal/config"
	"github.com/oshokin/zero-hour/internal/logger"
	"github.com/oshokin/zero-hour/internal/service/runner"
	"github.com/oshokin/zero-hour/internal/version"
)

var (
	// configPath to the countdown definition YAML file.
	configPath string
	// timezone override for wall-clock countdowns.
	timezone string
	// languageCode override for announcement messages.
	languageCode string
	// statePath enables celebration-state persistence.
	statePath string
	// logLevel sets the logging verbosity.
	logLevel string
	// headless disables the terminal progress bar.
	headless bool

	// rootCmd represents the base command running one countdown.
	rootCmd = &cobra.Command{
		Use:   "zero-hour",
		Short: "Run a countdown in the terminal.",
		Long: `Runs a countdown defined in a YAML file until it reaches zero.

The target may be an absolute instant, a timer duration, or a wall-clock
calendar moment paired with an IANA timezone. Wall-clock countdowns resolve
the same calendar moment to a different instant per timezone. An unknown
timezone never aborts the countdown; it silently degrades to UTC.

Display stages declared in the definition drive the progress indicator as
the remaining time runs low.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &runner.Options{
				ConfigPath: configPath,
				Timezone:   timezone,
				Language:   languageCode,
				StatePath:  statePath,
			}

			if !headless {
				display := NewCountdownDisplay()
				defer display.Close()

				options.Presenter = display
			}

			return runner.Run(ctx, options)
		},
	}
)

// Execute runs the zero-hour CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to countdown definition file")
	rootCmd.Flags().StringVarP(&timezone, "timezone", "t", "", "timezone override for wall-clock countdowns")
	rootCmd.Flags().StringVarP(&languageCode, "language", "l", "", "announcement language (en, fr, ru)")
	rootCmd.Flags().StringVar(&statePath, "state", "", "path to a celebration state file, remembers celebrated timezones between runs")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "log ticks instead of drawing a progress bar")
}
