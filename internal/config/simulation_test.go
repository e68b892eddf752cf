package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

func TestDefaults(t *testing.T) {
	var nilCfg *SimulationConfig
	for _, cfg := range []*SimulationConfig{nilCfg, EmptySimulationConfig()} {
		assert.Equal(t, 500*time.Millisecond, cfg.GetFrameSize())
		assert.Equal(t, 10*time.Minute, cfg.GetRaceTimeout())
		assert.InDelta(t, 2.0, cfg.GetProximityThreshold(), 1e-12)
		assert.NoError(t, cfg.Validate())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  SimulationConfig
		ok   bool
	}{
		{"overrides", SimulationConfig{FrameSize: ptrString("250ms"), RaceTimeout: ptrString("1m"), ProximityThreshold: ptrFloat64(3)}, true},
		{"bad frame size", SimulationConfig{FrameSize: ptrString("fast")}, false},
		{"zero frame size", SimulationConfig{FrameSize: ptrString("0s")}, false},
		{"sub-millisecond frame size", SimulationConfig{FrameSize: ptrString("300us")}, false},
		{"fractional millisecond frame size", SimulationConfig{FrameSize: ptrString("1500us")}, false},
		{"whole millisecond frame size", SimulationConfig{FrameSize: ptrString("1ms")}, true},
		{"negative timeout", SimulationConfig{RaceTimeout: ptrString("-1s")}, false},
		{"zero proximity", SimulationConfig{ProximityThreshold: ptrFloat64(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadSimulationConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"frame_size":"100ms"}`), 0o644))

		cfg, err := LoadSimulationConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 100*time.Millisecond, cfg.GetFrameSize())
		assert.Equal(t, DefaultRaceTimeout, cfg.GetRaceTimeout())
	})

	t.Run("wrong extension", func(t *testing.T) {
		_, err := LoadSimulationConfig(filepath.Join(dir, "cfg.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".json extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSimulationConfig(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"proximity_threshold":-2}`), 0o644))

		_, err := LoadSimulationConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
