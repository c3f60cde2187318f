package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// MinTickInterval is the fastest cadence at which generations may be published
const MinTickInterval = 100 * time.Millisecond

// Config holds the configuration for the game
type Config struct {
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	TickInterval   time.Duration `json:"tick_interval"`
	RandomDensity  float64       `json:"random_density"`
	Seed           int64         `json:"seed"`            // 0 seeds from the clock
	MaxGenerations int           `json:"max_generations"` // headless only, 0 runs until interrupted
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:           50,
		Cols:           50,
		TickInterval:   MinTickInterval,
		RandomDensity:  0.3,
		Seed:           0,
		MaxGenerations: 0,
	}
}

// LoadConfig loads configuration from JSON file. Fields missing from the file keep
// their default values.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, config.Validate()
}

// Validate checks that the configuration describes a playable board
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("[Validate] grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be within [0,1], got %v", c.RandomDensity)
	}
	if c.TickInterval < MinTickInterval {
		return errors.Errorf("[Validate] tick_interval must be at least %v, got %v", MinTickInterval, c.TickInterval)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}
