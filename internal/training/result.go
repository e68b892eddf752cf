// Package training tracks the outcome of a run: its status, the simulated
// time spent, and which targets have been captured.
package training

import (
	"time"

	"go.uber.org/zap"

	"github.com/cxd309/swim-engine/internal/citymap"
	"github.com/cxd309/swim-engine/internal/config"
)

// Status describes where a run is in its lifecycle.
type Status string

const (
	StatusNotStarted  Status = "not_started"
	StatusRunning     Status = "running"
	StatusTimeout     Status = "timeout"
	StatusOutsideCity Status = "outside_city"
	StatusCompleted   Status = "completed"
)

// IsTerminal reports whether no further transitions follow s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusTimeout, StatusOutsideCity, StatusCompleted:
		return true
	}
	return false
}

// CityMap is the part of the map the tracker reads.
type CityMap interface {
	Targets() []citymap.Position
	IsWithinCity(p citymap.Position) bool
}

// Result is a read-only snapshot of a run.
type Result struct {
	Status          Status             `json:"status"`
	ElapsedMillis   int64              `json:"elapsed_millis"`
	CapturedTargets []citymap.Position `json:"captured_targets"`
}

// Elapsed returns the simulated time spent as a duration.
func (r Result) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMillis) * time.Millisecond
}

// Tracker reconciles run status and captured targets after every frame.
// It does not stop updating once the status is terminal; callers must stop
// ticking instead.
type Tracker struct {
	status    Status
	elapsed   time.Duration
	captured  map[citymap.Position]struct{}
	order     []citymap.Position // capture order, for reporting
	frameSize time.Duration
	timeout   time.Duration
	proximity float64
	log       *zap.Logger
}

// NewTracker returns a tracker in the not-started state. A nil cfg uses the
// defaults and a nil logger discards output.
func NewTracker(cfg *config.SimulationConfig, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		status:    StatusNotStarted,
		captured:  make(map[citymap.Position]struct{}),
		frameSize: cfg.GetFrameSize(),
		timeout:   cfg.GetRaceTimeout(),
		proximity: cfg.GetProximityThreshold(),
		log:       log,
	}
}

// Update advances the run by one frame in which the swimmer moved from
// before to after.
func (t *Tracker) Update(before, after citymap.Position, m CityMap) {
	if t.status == StatusNotStarted {
		t.status = StatusRunning
		t.elapsed = 0
	}

	t.elapsed += t.frameSize

	if t.elapsed > t.timeout {
		t.setStatus(StatusTimeout)
		return
	}

	if !m.IsWithinCity(after) {
		t.setStatus(StatusOutsideCity)
		return
	}

	targets := m.Targets()
	for _, target := range targets {
		if citymap.SegmentDistance(before, after, target) < t.proximity {
			t.Capture(target)
		}
	}

	if t.AllCaptured(targets) {
		t.setStatus(StatusCompleted)
	}
}

// Capture marks p as captured. It reports whether p was newly captured;
// capturing the same target again is a no-op.
func (t *Tracker) Capture(p citymap.Position) bool {
	if _, ok := t.captured[p]; ok {
		return false
	}
	t.captured[p] = struct{}{}
	t.order = append(t.order, p)
	t.log.Info("target captured",
		zap.Stringer("target", p),
		zap.Duration("elapsed", t.elapsed))
	return true
}

// IsCaptured reports whether p has been captured.
func (t *Tracker) IsCaptured(p citymap.Position) bool {
	_, ok := t.captured[p]
	return ok
}

// AllCaptured reports whether every one of targets has been captured.
func (t *Tracker) AllCaptured(targets []citymap.Position) bool {
	for _, p := range targets {
		if !t.IsCaptured(p) {
			return false
		}
	}
	return true
}

// Status returns the current run status.
func (t *Tracker) Status() Status { return t.status }

// Result returns a snapshot of the run.
func (t *Tracker) Result() Result {
	captured := make([]citymap.Position, len(t.order))
	copy(captured, t.order)
	return Result{
		Status:          t.status,
		ElapsedMillis:   t.elapsed.Milliseconds(),
		CapturedTargets: captured,
	}
}

func (t *Tracker) setStatus(s Status) {
	if t.status != s {
		t.log.Info("run status changed",
			zap.String("from", string(t.status)),
			zap.String("to", string(s)),
			zap.Duration("elapsed", t.elapsed))
	}
	t.status = s
}
