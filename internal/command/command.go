// Package command defines the movement commands issued to the swimmer each
// frame: a cardinal Direction paired with a SpeedLevel effort tier.
package command

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal directions a command can push toward.
type Direction string

const (
	North Direction = "NORTH"
	South Direction = "SOUTH"
	East  Direction = "EAST"
	West  Direction = "WEST"
)

// Axis identifies which coordinate a direction acts on.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// Axis returns the axis d pushes along, or AxisNone for an unknown direction.
func (d Direction) Axis() Axis {
	switch d {
	case North, South:
		return AxisY
	case East, West:
		return AxisX
	}
	return AxisNone
}

// AccelerationModifier returns +1 or -1 for a valid direction and 0 otherwise.
// North and East increase the coordinate, South and West decrease it.
func (d Direction) AccelerationModifier() int {
	switch d {
	case North, East:
		return 1
	case South, West:
		return -1
	}
	return 0
}

// SpeedLevel is a discrete effort tier, ordered weakest to strongest.
type SpeedLevel int

const (
	Idle SpeedLevel = iota
	L1
	L2
	L3
	L4
)

var speedLevelNames = [...]string{"IDLE", "L1", "L2", "L3", "L4"}

// speedLevelAcceleration holds the fixed acceleration magnitude of each tier, distance/s².
var speedLevelAcceleration = [...]float64{0, 2, 8, 32, 128}

// Acceleration returns the tier's acceleration magnitude. Unknown tiers apply none.
func (l SpeedLevel) Acceleration() float64 {
	if l < Idle || l > L4 {
		return 0
	}
	return speedLevelAcceleration[l]
}

func (l SpeedLevel) String() string {
	if l < Idle || l > L4 {
		return fmt.Sprintf("SpeedLevel(%d)", int(l))
	}
	return speedLevelNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l SpeedLevel) MarshalText() ([]byte, error) {
	if l < Idle || l > L4 {
		return nil, fmt.Errorf("unknown speed level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *SpeedLevel) UnmarshalText(text []byte) error {
	s := strings.ToUpper(string(text))
	for i, name := range speedLevelNames {
		if name == s {
			*l = SpeedLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown speed level %q", string(text))
}

// Command is a single frame's movement instruction.
type Command struct {
	Direction  Direction  `json:"direction"`
	SpeedLevel SpeedLevel `json:"speed_level"`
}

// New returns a command pushing toward d at tier l.
func New(d Direction, l SpeedLevel) Command {
	return Command{Direction: d, SpeedLevel: l}
}

// Default returns the fallback command: South with no effort applied.
func Default() Command {
	return Command{Direction: South, SpeedLevel: Idle}
}

// IsIdle reports whether the command applies no directional force.
func (c Command) IsIdle() bool { return c.SpeedLevel == Idle }

func (c Command) String() string {
	return fmt.Sprintf("VoiceCommand{direction=%s, speedLevel=%s}", c.Direction, c.SpeedLevel)
}
