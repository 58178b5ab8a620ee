package gctrace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config holds the settings an Interpreter starts from.
type Config struct {
	// InitialPosition is where the tool is before the first move.
	InitialPosition Position `yaml:"initial_position"`

	// FeedRate is the modal feed rate, in units per minute, before any F word.
	// Zero means moves fail until the program sets a feed rate.
	FeedRate float64 `yaml:"feed_rate"`

	// RapidFeedRate, when positive, is used for G0 moves instead of the modal
	// feed rate.
	RapidFeedRate float64 `yaml:"rapid_feed_rate"`

	// ArcEpsilon is the smallest arc radius that is not degenerate.
	ArcEpsilon float64 `yaml:"arc_epsilon"`

	// Tick is the clock step Run drives each move with.
	Tick time.Duration `yaml:"tick"`

	Display Display `yaml:"display"`
}

func DefaultConfig() Config {
	return Config{
		InitialPosition: zeroPosition,
		ArcEpsilon:      defaultArcEpsilon,
		Tick:            10 * time.Millisecond,
		Display: Display{
			Scale: 1.0,
			Axes:  AxesProgram,
		},
	}
}

// LoadConfig reads a YAML configuration file. A .env file in the working
// directory, if there is one, is loaded first so that the configuration can
// refer to ${VARIABLES}. Settings missing from the file keep their defaults.
func LoadConfig(configPath string) (Config, error) {
	err := loadEnvFile(".env")
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig([]byte(os.ExpandEnv(string(data))))
}

// ParseConfig parses YAML configuration data over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict())
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.FeedRate < 0.0 {
		return fmt.Errorf("%w: feed_rate must not be negative: %g", ErrConfigValidation,
			cfg.FeedRate)
	}
	if cfg.RapidFeedRate < 0.0 {
		return fmt.Errorf("%w: rapid_feed_rate must not be negative: %g", ErrConfigValidation,
			cfg.RapidFeedRate)
	}
	if cfg.ArcEpsilon <= 0.0 {
		return fmt.Errorf("%w: arc_epsilon must be positive: %g", ErrConfigValidation,
			cfg.ArcEpsilon)
	}
	if cfg.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive: %s", ErrConfigValidation, cfg.Tick)
	}
	if cfg.Display.Scale <= 0.0 {
		return fmt.Errorf("%w: display scale must be positive: %g", ErrConfigValidation,
			cfg.Display.Scale)
	}
	if _, ok := axisMaps[cfg.Display.Axes]; !ok {
		return fmt.Errorf("%w: unknown display axes: %q", ErrConfigValidation,
			cfg.Display.Axes)
	}
	return nil
}

func loadEnvFile(name string) error {
	_, err := os.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	return godotenv.Load(name)
}
