package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// Stage declares one display stage of the countdown.
type Stage struct {
	// Name identifies the stage.
	Name string `yaml:"name"`
	// At is the threshold expression, a percentage of total duration
	// ("50%") or an absolute count of seconds remaining ("60s").
	At string `yaml:"at"`
	// Glyph is the indicator shown next to the countdown in this stage.
	Glyph string `yaml:"glyph"`
}

// WallClock mirrors domain.WallClockTime for YAML input.
type WallClock struct {
	// Year is the full calendar year.
	Year int `yaml:"year"`
	// Month is the zero-based month, 0-11.
	Month int `yaml:"month"`
	// Day is the day of month, 1-31.
	Day int `yaml:"day"`
	// Hours is the hour of day, 0-23.
	Hours int `yaml:"hours"`
	// Minutes is the minute, 0-59.
	Minutes int `yaml:"minutes"`
	// Seconds is the second, 0-59.
	Seconds int `yaml:"seconds"`
}

// Domain converts the YAML value into the domain type.
func (w *WallClock) Domain() domain.WallClockTime {
	return domain.WallClockTime{
		Year:    w.Year,
		Month:   w.Month,
		Day:     w.Day,
		Hours:   w.Hours,
		Minutes: w.Minutes,
		Seconds: w.Seconds,
	}
}

// Config describes one countdown for the zero-hour binary.
type Config struct {
	// Title is the human-readable name of the countdown.
	Title string `yaml:"title"`
	// Mode selects how the target is interpreted. Derived from the target
	// fields when left empty.
	Mode domain.Mode `yaml:"mode"`
	// Target is the absolute target instant for instant mode.
	Target time.Time `yaml:"target"`
	// Duration is the countdown length for timer mode.
	Duration time.Duration `yaml:"duration"`
	// WallClock is the calendar target for wall-clock mode.
	WallClock *WallClock `yaml:"wall_clock"`
	// Timezone is the IANA timezone identifier for wall-clock mode. It is
	// user-editable and deliberately not validated here; the core degrades
	// unloadable identifiers to UTC.
	Timezone string `yaml:"timezone"`
	// TickInterval is the refresh cadence. Defaults to one second.
	TickInterval time.Duration `yaml:"tick_interval"`
	// Language selects the announcement locale, e.g. "en" or "fr".
	Language string `yaml:"language"`
	// Stages is the ordered stage list, thresholds conventionally sorted in
	// descending resolved order.
	Stages []Stage `yaml:"stages"`
}

const (
	// DefaultConfigFilename is the default countdown definition file.
	DefaultConfigFilename = "zero-hour.yaml"

	// DefaultTickInterval is the default refresh cadence.
	DefaultTickInterval = time.Second

	// DefaultLanguage is the default announcement locale.
	DefaultLanguage = "en"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNoTarget is returned when no target of any kind is configured.
	errNoTarget = errors.New("one of target, duration or wall_clock must be provided")
	// errTargetMismatch is returned when the configured mode has no
	// matching target field.
	errTargetMismatch = errors.New("mode does not match the configured target")
	// errUnknownMode is returned for unrecognized mode values.
	errUnknownMode = errors.New("unknown mode")
)

// Load reads a countdown definition from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read countdown definition: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal countdown definition: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes a countdown definition to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal countdown definition: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write countdown definition: %w", err)
	}

	return nil
}

// Validate checks the definition for a usable target and fills defaults.
// Stage threshold syntax is validated lazily at lookup time by the stage
// scheduler; the timezone is deliberately left unvalidated (see Timezone).
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Mode == "" {
		cfg.Mode = deriveMode(cfg)
	}

	switch cfg.Mode {
	case domain.ModeInstant:
		if cfg.Target.IsZero() {
			return fmt.Errorf("%w: instant mode needs target", errTargetMismatch)
		}
	case domain.ModeTimer:
		if cfg.Duration <= 0 {
			return fmt.Errorf("%w: timer mode needs duration", errTargetMismatch)
		}
	case domain.ModeWallClock:
		if cfg.WallClock == nil {
			return fmt.Errorf("%w: wallclock mode needs wall_clock", errTargetMismatch)
		}
	case "":
		return errNoTarget
	default:
		return fmt.Errorf("%w: %q", errUnknownMode, cfg.Mode)
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}

	return nil
}

// deriveMode infers the mode from whichever target field is set.
func deriveMode(cfg *Config) domain.Mode {
	switch {
	case cfg.WallClock != nil:
		return domain.ModeWallClock
	case !cfg.Target.IsZero():
		return domain.ModeInstant
	case cfg.Duration > 0:
		return domain.ModeTimer
	default:
		return ""
	}
}
