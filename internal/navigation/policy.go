// Package navigation chooses the swimmer's next command: which target to
// pursue, which way to push, and how hard.
//
// Targets are pursued in order of their distance from the origin, fixed once
// when the policy is created. This is a deliberately naive ordering, not a
// shortest-path tour.
package navigation

import (
	"cmp"
	"math"
	"slices"

	"github.com/cxd309/swim-engine/internal/citymap"
	"github.com/cxd309/swim-engine/internal/command"
)

// Tier bands, in seconds of estimated travel time.
const (
	l1MaxETA = 11
	l2MaxETA = 34
	l3MaxETA = 170
)

// Drag is the part of the motion model the policy needs to estimate travel time.
type Drag interface {
	DragAcceleration(v float64) float64
}

// Ledger records captured targets. The run tracker implements it.
type Ledger interface {
	Capture(p citymap.Position) bool
	IsCaptured(p citymap.Position) bool
	AllCaptured(targets []citymap.Position) bool
}

// Policy holds the pursuit order of the remaining targets.
type Policy struct {
	targets   []citymap.Position // every target on the map, insertion order
	pending   []citymap.Position // pursuit order, head is the current target
	proximity float64
	drag      Drag
}

// NewPolicy snapshots targets and orders them by distance from the origin.
// Ties keep their insertion order.
func NewPolicy(targets []citymap.Position, proximity float64, drag Drag) *Policy {
	all := slices.Clone(targets)
	pending := slices.Clone(targets)
	slices.SortStableFunc(pending, func(a, b citymap.Position) int {
		return cmp.Compare(a.DistanceFromOrigin(), b.DistanceFromOrigin())
	})
	return &Policy{targets: all, pending: pending, proximity: proximity, drag: drag}
}

// Pending returns a copy of the targets still to pursue, in order. Targets
// already captured in ledger are left out.
func (p *Policy) Pending(ledger Ledger) []citymap.Position {
	out := make([]citymap.Position, 0, len(p.pending))
	for _, t := range p.pending {
		if !ledger.IsCaptured(t) {
			out = append(out, t)
		}
	}
	return out
}

// Decision is the policy's choice for one frame.
type Decision struct {
	Command command.Command
	Arrived bool             // the swimmer is on Target; confirm with Arrive
	Target  citymap.Position // current target, zero when none is left
}

// Next returns the decision for a swimmer at pos moving at (vx, vy). It does
// not change the pursuit order or the ledger.
//
// When the swimmer is within the proximity threshold of its current target on
// both axes, the decision is marked Arrived and carries the default command.
func (p *Policy) Next(pos citymap.Position, vx, vy float64, ledger Ledger) Decision {
	target, ok := p.current(ledger)
	if !ok {
		return Decision{Command: command.Default()}
	}
	d := Decision{Command: command.Default(), Target: target}

	dx := abs(target.X - pos.X)
	dy := abs(target.Y - pos.Y)

	switch {
	case float64(dx) < p.proximity && float64(dy) < p.proximity && !ledger.AllCaptured(p.targets):
		d.Arrived = true
	case target.X > pos.X:
		d.Command = command.New(command.East, ChooseSpeedLevel(dx, vx, p.drag))
	case target.Y > pos.Y:
		d.Command = command.New(command.North, ChooseSpeedLevel(dy, vy, p.drag))
	case target.X < pos.X:
		d.Command = command.New(command.West, ChooseSpeedLevel(dx, vx, p.drag))
	case target.Y < pos.Y:
		d.Command = command.New(command.South, ChooseSpeedLevel(dy, vy, p.drag))
	}
	return d
}

// Arrive captures an arrived decision's target in ledger and drops it from
// the pursuit order. Other decisions are ignored.
func (p *Policy) Arrive(d Decision, ledger Ledger) {
	if !d.Arrived {
		return
	}
	ledger.Capture(d.Target)
	if i := slices.Index(p.pending, d.Target); i >= 0 {
		p.pending = slices.Delete(p.pending, i, i+1)
	}
}

// current returns the first target in pursuit order not yet captured.
func (p *Policy) current(ledger Ledger) (citymap.Position, bool) {
	for _, t := range p.pending {
		if !ledger.IsCaptured(t) {
			return t, true
		}
	}
	return citymap.Position{}, false
}

// ChooseSpeedLevel picks the effort tier for covering delta along one axis at
// speed v.
func ChooseSpeedLevel(delta int, v float64, drag Drag) command.SpeedLevel {
	effective := v - drag.DragAcceleration(v)
	return TierForETA(float64(delta) / effective)
}

// TierForETA maps an estimated travel time to a tier. The bands share their
// boundary values, so they are checked from the lowest up and the first match
// wins: (0,11] is L1, (11,34] is L2, (34,170] is L3. Anything else, including
// non-positive, infinite or NaN estimates, is L4.
func TierForETA(eta float64) command.SpeedLevel {
	switch {
	case math.IsNaN(eta) || eta <= 0:
		return command.L4
	case eta <= l1MaxETA:
		return command.L1
	case eta <= l2MaxETA:
		return command.L2
	case eta <= l3MaxETA:
		return command.L3
	}
	return command.L4
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
