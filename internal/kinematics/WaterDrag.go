package kinematics

import (
	"fmt"

	"github.com/cxd309/swim-engine/internal/command"
)

// WaterModelName is the JSON discriminator string for the WaterDrag model.
const WaterModelName = "water"

const (
	// DefaultWaterDragThreshold is the static drag a tier must exceed to get moving.
	DefaultWaterDragThreshold = 1.6
	// DefaultWaterDragDivisor scales the quadratic drag term v²/divisor.
	DefaultWaterDragDivisor = 200
)

// WaterDrag implements MotionModel with a constant static drag plus a
// quadratic term: |drag| = threshold + v²/divisor.
//
// JSON discriminator: "model": "water"
type WaterDrag struct {
	Threshold float64 `json:"drag_threshold"` // distance/s²
	Divisor   float64 `json:"drag_divisor"`
}

// DefaultWaterDrag returns the water model with its standard constants.
func DefaultWaterDrag() WaterDrag {
	return WaterDrag{Threshold: DefaultWaterDragThreshold, Divisor: DefaultWaterDragDivisor}
}

// Validate checks that the drag constants describe a usable model.
func (w WaterDrag) Validate() error {
	if w.Threshold < 0 {
		return fmt.Errorf("drag_threshold must be non-negative, got %v", w.Threshold)
	}
	if w.Divisor <= 0 {
		return fmt.Errorf("drag_divisor must be positive, got %v", w.Divisor)
	}
	return nil
}

func (w WaterDrag) DragAcceleration(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -sign(v) * (w.Threshold + v*v/w.Divisor)
}

func (w WaterDrag) NetAcceleration(v float64, modifier int, tier command.SpeedLevel) (float64, error) {
	if modifier != -1 && modifier != 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidModifier, modifier)
	}

	a := float64(modifier) * tier.Acceleration()
	if v == 0 {
		// Stuck: the tier cannot break through static drag.
		if tier.Acceleration() <= w.Threshold {
			return 0, nil
		}
		return a - float64(modifier)*w.Threshold, nil
	}
	return a + w.DragAcceleration(v), nil
}

func (w WaterDrag) DisplacementUnderDrag(v, dt float64) int {
	d := Displacement(v, w.DragAcceleration(v), dt)
	if overshoots(v, float64(d)) {
		return 0
	}
	return d
}

func (w WaterDrag) NewSpeedUnderDrag(v, dt float64) float64 {
	newV := NewSpeed(v, w.DragAcceleration(v), dt)
	if overshoots(v, newV) {
		return 0
	}
	return newV
}

// overshoots reports whether a drag-only result has crossed zero relative to v.
func overshoots(v, result float64) bool {
	return v == 0 || (v < 0 && result > 0) || (v > 0 && result < 0)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

var _ MotionModel = WaterDrag{}
