// Package citymap provides the bounded 2D city the swimmer moves through and
// the targets it has to capture.
package citymap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Position is an integer point on the city grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Translate returns p moved by (dx, dy).
func (p Position) Translate(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DistanceFromOrigin returns the Euclidean distance from (0,0) to p.
func (p Position) DistanceFromOrigin() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func (p Position) vec() r2.Vec { return r2.Vec{X: float64(p.X), Y: float64(p.Y)} }

// Bounds is an inclusive rectangle of navigable positions.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// CityMapData is the serialisable input representation of a city map.
type CityMapData struct {
	Bounds  Bounds     `json:"bounds"`
	Targets []Position `json:"targets"`
}

// CityMap is an immutable bounded area holding an ordered set of targets.
type CityMap struct {
	bounds    Bounds
	targets   []Position
	targetSet map[Position]struct{}
}

// New builds a CityMap from CityMapData, returning an error if the bounds are
// inverted, a target is duplicated or lies outside the city, or there are no
// targets at all.
func New(data CityMapData) (*CityMap, error) {
	b := data.Bounds
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return nil, fmt.Errorf("bounds [%d,%d]x[%d,%d] are inverted", b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	if len(data.Targets) == 0 {
		return nil, fmt.Errorf("city map has no targets")
	}

	m := &CityMap{
		bounds:    b,
		targetSet: make(map[Position]struct{}, len(data.Targets)),
	}
	for _, t := range data.Targets {
		if err := m.addTarget(t); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// addTarget appends a target, rejecting duplicates and targets outside the city.
func (m *CityMap) addTarget(p Position) error {
	if _, exists := m.targetSet[p]; exists {
		return fmt.Errorf("target %s already exists", p)
	}
	if !m.bounds.Contains(p) {
		return fmt.Errorf("target %s is outside the city", p)
	}
	m.targets = append(m.targets, p)
	m.targetSet[p] = struct{}{}
	return nil
}

// Targets returns a copy of the targets in insertion order.
func (m *CityMap) Targets() []Position {
	out := make([]Position, len(m.targets))
	copy(out, m.targets)
	return out
}

// IsTarget reports whether p is one of the map's targets.
func (m *CityMap) IsTarget(p Position) bool {
	_, ok := m.targetSet[p]
	return ok
}

// IsWithinCity reports whether p is inside the navigable area.
func (m *CityMap) IsWithinCity(p Position) bool {
	return m.bounds.Contains(p)
}

// Bounds returns the navigable area.
func (m *CityMap) Bounds() Bounds { return m.bounds }

// SegmentDistance returns the shortest distance from p to the segment [a, b].
// A degenerate segment (a == b) measures the distance to that point.
func SegmentDistance(a, b, p Position) float64 {
	av, pv := a.vec(), p.vec()
	ab := r2.Sub(b.vec(), av)
	ap := r2.Sub(pv, av)

	lenSq := r2.Dot(ab, ab)
	if lenSq == 0 {
		return r2.Norm(ap)
	}
	t := math.Max(0, math.Min(1, r2.Dot(ap, ab)/lenSq))
	closest := r2.Add(av, r2.Scale(t, ab))
	return r2.Norm(r2.Sub(pv, closest))
}
