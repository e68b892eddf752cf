package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cxd309/swim-engine/internal/citymap"
	"github.com/cxd309/swim-engine/internal/command"
	"github.com/cxd309/swim-engine/internal/config"
	"github.com/cxd309/swim-engine/internal/kinematics"
	"github.com/cxd309/swim-engine/internal/navigation"
	"github.com/cxd309/swim-engine/internal/swimmer"
	"github.com/cxd309/swim-engine/internal/training"
)

// CityMap is the map contract the controller consumes.
type CityMap interface {
	Targets() []citymap.Position
	IsWithinCity(p citymap.Position) bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for commands, captures and status changes.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithConfig sets the run's timing and capture parameters.
func WithConfig(cfg *config.SimulationConfig) Option {
	return func(c *Controller) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// withLogFields tags every log line of the run. It must follow WithLogger.
func withLogFields(fields ...zap.Field) Option {
	return func(c *Controller) {
		c.log = c.log.With(fields...)
	}
}

// Controller drives one run, one frame per NextCommand call. It owns the
// pursuit order and the run result, and is not safe for concurrent use.
type Controller struct {
	cfg     *config.SimulationConfig
	policy  *navigation.Policy // nil until the first frame
	tracker *training.Tracker
	log     *zap.Logger
	frame   int
}

// NewController returns a controller for a run that has not started yet.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		cfg: config.EmptySimulationConfig(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tracker = training.NewTracker(c.cfg, c.log)
	return c
}

// NextCommand advances the run by one frame and returns the command issued.
//
// The policy picks a command from the swimmer's current state, the swimmer
// moves under it, and the tracker reconciles status and captures against the
// segment just travelled. An invalid command aborts the frame before the
// swimmer moves, a target is captured or the tracker is updated.
//
// Calling NextCommand after the run reached a terminal status is not
// prevented; the physics still applies.
func (c *Controller) NextCommand(sw *swimmer.Swimmer, m CityMap) (command.Command, error) {
	if sw.Kinem == nil {
		sw.Kinem = kinematics.DefaultWaterDrag()
	}
	if c.policy == nil {
		c.policy = navigation.NewPolicy(m.Targets(), c.cfg.GetProximityThreshold(), sw.Kinem)
	}
	if status := c.tracker.Status(); status.IsTerminal() {
		c.log.Warn("frame requested after run ended", zap.String("status", string(status)))
	}

	before := sw.Position
	decision := c.policy.Next(before, sw.Horizontal, sw.Vertical, c.tracker)
	cmd := decision.Command

	if err := sw.Apply(cmd, c.cfg.GetFrameSize().Seconds()); err != nil {
		return command.Command{}, fmt.Errorf("frame %d: %w", c.frame+1, err)
	}
	c.frame++

	c.policy.Arrive(decision, c.tracker)
	c.tracker.Update(before, sw.Position, m)

	c.log.Debug("command issued",
		zap.Int("frame", c.frame),
		zap.Stringer("command", cmd),
		zap.Stringer("from", before),
		zap.Stringer("to", sw.Position),
		zap.Float64("horizontal", sw.Horizontal),
		zap.Float64("vertical", sw.Vertical))

	return cmd, nil
}

// Result returns a read-only snapshot of the run.
func (c *Controller) Result() training.Result {
	return c.tracker.Result()
}

// Pending returns the uncaptured targets still to pursue, in pursuit order.
// It is empty before the first frame.
func (c *Controller) Pending() []citymap.Position {
	if c.policy == nil {
		return nil
	}
	return c.policy.Pending(c.tracker)
}
