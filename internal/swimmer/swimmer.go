// Package swimmer defines the agent moved by the simulation: its position,
// per-axis speeds, and the drag model that governs them.
package swimmer

import (
	"encoding/json"
	"fmt"

	"github.com/cxd309/swim-engine/internal/citymap"
	"github.com/cxd309/swim-engine/internal/command"
	"github.com/cxd309/swim-engine/internal/kinematics"
)

// Swimmer is the live kinematic state of the agent. Horizontal and Vertical
// are signed speeds along x and y, independent of each other.
type Swimmer struct {
	Position   citymap.Position       `json:"position"`
	Horizontal float64                `json:"horizontal"` // distance/s
	Vertical   float64                `json:"vertical"`   // distance/s
	Kinem      kinematics.MotionModel `json:"-"`          // set by UnmarshalJSON
}

// New returns a swimmer at rest at pos, governed by the default water model.
func New(pos citymap.Position) *Swimmer {
	return &Swimmer{Position: pos, Kinem: kinematics.DefaultWaterDrag()}
}

// kinematicsDisc is the minimum JSON structure needed to read the model discriminator.
type kinematicsDisc struct {
	Model string `json:"model"`
}

// swimmerJSON is the raw JSON shape of a Swimmer, before the kinematics model is resolved.
type swimmerJSON struct {
	Position   citymap.Position `json:"position"`
	Horizontal float64          `json:"horizontal"`
	Vertical   float64          `json:"vertical"`
	Kinem      json.RawMessage  `json:"kinematics"`
}

// UnmarshalJSON implements json.Unmarshaler for Swimmer.
// An optional "kinematics" object selects the drag model through its "model"
// discriminator; when absent the default water model is used.
//
// Supported models:
//   - "water": static threshold plus quadratic drag.
func (s *Swimmer) UnmarshalJSON(data []byte) error {
	var aux swimmerJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Position = aux.Position
	s.Horizontal = aux.Horizontal
	s.Vertical = aux.Vertical

	if len(aux.Kinem) == 0 {
		s.Kinem = kinematics.DefaultWaterDrag()
		return nil
	}

	var disc kinematicsDisc
	if err := json.Unmarshal(aux.Kinem, &disc); err != nil {
		return fmt.Errorf("swimmer: reading kinematics model discriminator: %w", err)
	}

	switch disc.Model {
	case kinematics.WaterModelName:
		w := kinematics.DefaultWaterDrag()
		if err := json.Unmarshal(aux.Kinem, &w); err != nil {
			return fmt.Errorf("swimmer: parsing water kinematics: %w", err)
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("swimmer: %w", err)
		}
		s.Kinem = w
	default:
		return fmt.Errorf("swimmer: unknown kinematics model %q", disc.Model)
	}
	return nil
}

// Apply integrates one frame of dt seconds under cmd, moving the swimmer and
// updating both speeds. On error the swimmer is left untouched.
func (s *Swimmer) Apply(cmd command.Command, dt float64) error {
	if s.Kinem == nil {
		s.Kinem = kinematics.DefaultWaterDrag()
	}
	m, err := kinematics.Step(s.Kinem, cmd, s.Horizontal, s.Vertical, dt)
	if err != nil {
		return err
	}
	s.Position = s.Position.Translate(m.DX, m.DY)
	s.Horizontal = m.Horizontal
	s.Vertical = m.Vertical
	return nil
}

// SwimmerLog is a point-in-time snapshot of a Swimmer's state.
type SwimmerLog struct {
	Position   citymap.Position `json:"position"`
	Horizontal float64          `json:"horizontal"`
	Vertical   float64          `json:"vertical"`
}

// GetLog returns a point-in-time snapshot of the swimmer state.
func (s *Swimmer) GetLog() SwimmerLog {
	return SwimmerLog{
		Position:   s.Position,
		Horizontal: s.Horizontal,
		Vertical:   s.Vertical,
	}
}
