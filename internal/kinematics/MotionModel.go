// Package kinematics defines the MotionModel interface for the swimmer's drag
// physics, along with built-in implementations and the per-frame axis split.
//
// Adding a new drag model requires only implementing MotionModel and registering
// it in the JSON discriminator in the swimmer package. The frame driver never
// needs to change.
package kinematics

import (
	"errors"
	"fmt"
	"math"

	"github.com/cxd309/swim-engine/internal/command"
)

var (
	// ErrInvalidDirection is returned when a command carries an unrecognised direction.
	ErrInvalidDirection = errors.New("invalid command direction")
	// ErrInvalidModifier is returned when an acceleration modifier is not exactly +1 or -1.
	ErrInvalidModifier = errors.New("acceleration modifier must be either -1 or 1")
)

// MotionModel is the physics contract every drag implementation must satisfy.
// Speeds are in distance/s, accelerations in distance/s², time in seconds.
// Each call works on a single axis.
type MotionModel interface {
	// DragAcceleration returns the drag acting on speed v. It always opposes v
	// and is zero when v is zero.
	DragAcceleration(v float64) float64

	// NetAcceleration returns the acceleration from applying tier in the
	// direction given by modifier (+1 or -1) at speed v, drag included.
	NetAcceleration(v float64, modifier int, tier command.SpeedLevel) (float64, error)

	// DisplacementUnderDrag returns the rounded displacement over dt seconds with
	// only drag acting. Drag alone never reverses direction.
	DisplacementUnderDrag(v, dt float64) int

	// NewSpeedUnderDrag returns the speed after dt seconds with only drag acting.
	// The result has the sign of v or is exactly zero.
	NewSpeedUnderDrag(v, dt float64) float64
}

// Displacement returns v·dt + ½·a·dt² rounded half away from zero.
func Displacement(v, a, dt float64) int {
	return int(math.Round(v*dt + 0.5*a*dt*dt))
}

// NewSpeed returns v + a·dt.
func NewSpeed(v, a, dt float64) float64 {
	return v + a*dt
}

// Motion is the outcome of one frame: per-axis integer displacement and the
// speeds reached at the end of the frame.
type Motion struct {
	DX, DY     int
	Horizontal float64
	Vertical   float64
}

// Step integrates one frame of dt seconds from speeds (vx, vy) under cmd.
//
// The axis aligned with the command's direction uses the model's net
// acceleration; the perpendicular axis coasts under drag. An idle command
// leaves both axes coasting whatever its nominal direction.
func Step(m MotionModel, cmd command.Command, vx, vy, dt float64) (Motion, error) {
	if cmd.IsIdle() {
		return Motion{
			DX:         m.DisplacementUnderDrag(vx, dt),
			DY:         m.DisplacementUnderDrag(vy, dt),
			Horizontal: m.NewSpeedUnderDrag(vx, dt),
			Vertical:   m.NewSpeedUnderDrag(vy, dt),
		}, nil
	}

	switch cmd.Direction.Axis() {
	case command.AxisY:
		a, err := m.NetAcceleration(vy, cmd.Direction.AccelerationModifier(), cmd.SpeedLevel)
		if err != nil {
			return Motion{}, err
		}
		return Motion{
			DX:         m.DisplacementUnderDrag(vx, dt),
			DY:         Displacement(vy, a, dt),
			Horizontal: m.NewSpeedUnderDrag(vx, dt),
			Vertical:   NewSpeed(vy, a, dt),
		}, nil

	case command.AxisX:
		a, err := m.NetAcceleration(vx, cmd.Direction.AccelerationModifier(), cmd.SpeedLevel)
		if err != nil {
			return Motion{}, err
		}
		return Motion{
			DX:         Displacement(vx, a, dt),
			DY:         m.DisplacementUnderDrag(vy, dt),
			Horizontal: NewSpeed(vx, a, dt),
			Vertical:   m.NewSpeedUnderDrag(vy, dt),
		}, nil

	default:
		return Motion{}, fmt.Errorf("%w: %s", ErrInvalidDirection, cmd)
	}
}
