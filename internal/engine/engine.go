// Package engine implements the swim simulation loop.
//
// The simulation advances in fixed frames. Each frame runs three stages in
// order:
//
//  1. Navigation - the policy picks the next target and a command, capturing
//     the current target if the swimmer has already arrived.
//
//  2. Kinematics - the swimmer's position and speeds are integrated under the
//     command and water drag.
//
//  3. Tracking - elapsed time, bounds, and targets passed along the travelled
//     segment are reconciled into the run result.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cxd309/swim-engine/internal/citymap"
	"github.com/cxd309/swim-engine/internal/swimmer"
)

// Simulation is a complete run: a city, a swimmer and the controller driving it.
type Simulation struct {
	meta       SimulationMeta
	runID      uuid.UUID
	city       *citymap.CityMap
	swimmer    *swimmer.Swimmer
	controller *Controller
	log        *zap.Logger
}

// NewSimulation builds a Simulation from a SimulationInput. The input's
// settings apply unless an explicit WithConfig option overrides them.
func NewSimulation(input SimulationInput, opts ...Option) (*Simulation, error) {
	if err := input.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	city, err := citymap.New(input.CityMap)
	if err != nil {
		return nil, fmt.Errorf("building city map: %w", err)
	}

	sw := input.Swimmer
	if !city.IsWithinCity(sw.Position) {
		return nil, fmt.Errorf("swimmer starts outside the city at %s", sw.Position)
	}

	runID := uuid.New()
	opts = append([]Option{WithConfig(input.Settings)}, opts...)
	opts = append(opts, withLogFields(zap.String("run_id", runID.String())))
	controller := NewController(opts...)

	return &Simulation{
		meta:       input.Meta,
		runID:      runID,
		city:       city,
		swimmer:    &sw,
		controller: controller,
		log:        controller.log,
	}, nil
}

// Run executes frames until the run reaches a terminal status and returns the log.
func (s *Simulation) Run() (SimulationLog, error) {
	log := SimulationLog{Meta: s.meta, RunID: s.runID.String()}
	s.log.Info("run started",
		zap.String("simulation_id", s.meta.SimulationID),
		zap.Int("targets", len(s.city.Targets())))

	for !s.controller.Result().Status.IsTerminal() {
		cmd, err := s.controller.NextCommand(s.swimmer, s.city)
		if err != nil {
			return SimulationLog{}, fmt.Errorf("at t=%dms: %w", s.controller.Result().ElapsedMillis, err)
		}
		result := s.controller.Result()
		log.Frames = append(log.Frames, FrameLog{
			Frame:         len(log.Frames) + 1,
			ElapsedMillis: result.ElapsedMillis,
			Command:       cmd,
			Swimmer:       s.swimmer.GetLog(),
			Status:        result.Status,
		})
	}

	log.Result = s.controller.Result()
	s.log.Info("run finished",
		zap.String("status", string(log.Result.Status)),
		zap.Int64("elapsed_millis", log.Result.ElapsedMillis),
		zap.Int("captured", len(log.Result.CapturedTargets)))
	return log, nil
}

// Controller exposes the controller driving the simulation.
func (s *Simulation) Controller() *Controller { return s.controller }

// RunJSON is the primary entry point for the CLI and WASM targets.
// It accepts a JSON-encoded SimulationInput, runs the simulation, and returns a
// JSON-encoded SimulationLog.
func RunJSON(jsonInput string, opts ...Option) (string, error) {
	var input SimulationInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	sim, err := NewSimulation(input, opts...)
	if err != nil {
		return "", err
	}

	simLog, err := sim.Run()
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(simLog)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
