// Package config holds the tunable timing and capture parameters of a run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultFrameSize          = 500 * time.Millisecond
	DefaultRaceTimeout        = 10 * time.Minute
	DefaultProximityThreshold = 2.0
)

// SimulationConfig represents the tunable parameters of a run. Every field is
// optional; the Get* accessors fall back to the defaults above.
type SimulationConfig struct {
	FrameSize          *string  `json:"frame_size,omitempty"`   // duration string like "500ms"
	RaceTimeout        *string  `json:"race_timeout,omitempty"` // duration string like "10m"
	ProximityThreshold *float64 `json:"proximity_threshold,omitempty"`
}

// EmptySimulationConfig returns a SimulationConfig with all fields set to nil.
func EmptySimulationConfig() *SimulationConfig {
	return &SimulationConfig{}
}

// LoadSimulationConfig loads a SimulationConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted from
// the file keep their defaults.
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySimulationConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set field is usable.
func (c *SimulationConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.FrameSize != nil {
		d, err := time.ParseDuration(*c.FrameSize)
		if err != nil {
			return fmt.Errorf("invalid frame_size %q: %w", *c.FrameSize, err)
		}
		if d <= 0 {
			return fmt.Errorf("frame_size must be positive, got %s", d)
		}
		if d%time.Millisecond != 0 {
			return fmt.Errorf("frame_size must be a whole number of milliseconds, got %s", d)
		}
	}
	if c.RaceTimeout != nil {
		d, err := time.ParseDuration(*c.RaceTimeout)
		if err != nil {
			return fmt.Errorf("invalid race_timeout %q: %w", *c.RaceTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("race_timeout must be positive, got %s", d)
		}
	}
	if c.ProximityThreshold != nil && *c.ProximityThreshold <= 0 {
		return fmt.Errorf("proximity_threshold must be positive, got %v", *c.ProximityThreshold)
	}
	return nil
}

// GetFrameSize returns the simulated duration of one frame.
func (c *SimulationConfig) GetFrameSize() time.Duration {
	if c == nil || c.FrameSize == nil {
		return DefaultFrameSize
	}
	d, err := time.ParseDuration(*c.FrameSize)
	if err != nil || d <= 0 || d%time.Millisecond != 0 {
		return DefaultFrameSize
	}
	return d
}

// GetRaceTimeout returns the elapsed time after which a run times out.
func (c *SimulationConfig) GetRaceTimeout() time.Duration {
	if c == nil || c.RaceTimeout == nil {
		return DefaultRaceTimeout
	}
	d, err := time.ParseDuration(*c.RaceTimeout)
	if err != nil || d <= 0 {
		return DefaultRaceTimeout
	}
	return d
}

// GetProximityThreshold returns the capture distance.
func (c *SimulationConfig) GetProximityThreshold() float64 {
	if c == nil || c.ProximityThreshold == nil {
		return DefaultProximityThreshold
	}
	return *c.ProximityThreshold
}
