package engine

import (
	"github.com/cxd309/swim-engine/internal/citymap"
	"github.com/cxd309/swim-engine/internal/command"
	"github.com/cxd309/swim-engine/internal/config"
	"github.com/cxd309/swim-engine/internal/swimmer"
	"github.com/cxd309/swim-engine/internal/training"
)

// SimulationMeta holds the identity of a simulation run.
type SimulationMeta struct {
	SimulationID string `json:"simulation_id,omitempty"`
}

// SimulationInput is the JSON-serialisable input to the engine.
type SimulationInput struct {
	Meta     SimulationMeta           `json:"simulation_meta"`
	CityMap  citymap.CityMapData      `json:"city_map"`
	Swimmer  swimmer.Swimmer          `json:"swimmer"`
	Settings *config.SimulationConfig `json:"settings,omitempty"`
}

// FrameLog is the state of the run after a single frame.
type FrameLog struct {
	Frame         int                `json:"frame"`
	ElapsedMillis int64              `json:"elapsed_millis"`
	Command       command.Command    `json:"command"`
	Swimmer       swimmer.SwimmerLog `json:"swimmer"`
	Status        training.Status    `json:"status"`
}

// SimulationLog is the complete output of a simulation run.
type SimulationLog struct {
	Meta   SimulationMeta  `json:"simulation_meta"`
	RunID  string          `json:"run_id"` // fresh per execution, even for the same simulation ID
	Frames []FrameLog      `json:"frames"`
	Result training.Result `json:"result"`
}
