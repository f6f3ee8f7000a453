package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/zero-hour/internal/config"
)

// initCmd writes a sample countdown definition to the config path.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample countdown definition.",
	Long: `Writes a sample countdown definition to the configured path.

The sample counts down to the next New Year in the Europe/Moscow timezone
with three display stages. Edit the file to taste and run zero-hour.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := sampleConfig(time.Now())

		if err := config.Save(configPath, cfg); err != nil {
			return fmt.Errorf("write sample definition: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)

		return nil
	},
}

// sampleConfig builds a wall-clock countdown to the next New Year.
func sampleConfig(now time.Time) *config.Config {
	return &config.Config{
		Title: "New Year",
		WallClock: &config.WallClock{
			Year: now.Year() + 1,
			// Zero-based month: 0 is January.
			Month: 0,
			Day:   1,
		},
		Timezone: "Europe/Moscow",
		Language: config.DefaultLanguage,
		Stages: []config.Stage{
			{Name: "calm", At: "100%", Glyph: "·"},
			{Name: "closing", At: "10%", Glyph: "!"},
			{Name: "final", At: "60s", Glyph: "!!!"},
		},
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(initCmd)
}
