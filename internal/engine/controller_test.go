package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cxd309/swim-engine/internal/citymap"
	"github.com/cxd309/swim-engine/internal/command"
	"github.com/cxd309/swim-engine/internal/kinematics"
	"github.com/cxd309/swim-engine/internal/swimmer"
	"github.com/cxd309/swim-engine/internal/training"
)

func newCity(t *testing.T, bounds citymap.Bounds, targets ...citymap.Position) *citymap.CityMap {
	t.Helper()
	m, err := citymap.New(citymap.CityMapData{Bounds: bounds, Targets: targets})
	require.NoError(t, err)
	return m
}

var hundred = citymap.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

func TestFirstFrameHeadsForTarget(t *testing.T) {
	target := citymap.Position{X: 0, Y: 5}
	city := newCity(t, hundred, target)
	sw := swimmer.New(citymap.Position{X: 0, Y: 0})
	c := NewController()

	cmd, err := c.NextCommand(sw, city)
	require.NoError(t, err)

	assert.Equal(t, command.North, cmd.Direction)
	assert.Equal(t, command.L4, cmd.SpeedLevel)
	assert.Equal(t, citymap.Position{X: 0, Y: 16}, sw.Position)
	assert.InDelta(t, 63.2, sw.Vertical, 1e-9)
	assert.Zero(t, sw.Horizontal)

	r := c.Result()
	assert.Equal(t, training.StatusCompleted, r.Status, "target passed on the way is captured")
	assert.Equal(t, int64(500), r.ElapsedMillis)
	assert.Equal(t, []citymap.Position{target}, r.CapturedTargets)
}

func TestArrivalCapturesAndIssuesFallback(t *testing.T) {
	target := citymap.Position{X: 0, Y: 0}
	city := newCity(t, hundred, target)
	sw := swimmer.New(citymap.Position{X: 1, Y: 1})
	c := NewController()

	cmd, err := c.NextCommand(sw, city)
	require.NoError(t, err)

	assert.Equal(t, command.Default(), cmd)
	assert.Empty(t, c.Pending())
	assert.Equal(t, citymap.Position{X: 1, Y: 1}, sw.Position)

	r := c.Result()
	assert.Equal(t, []citymap.Position{target}, r.CapturedTargets, "arrival and segment checks capture once")
	assert.Equal(t, training.StatusCompleted, r.Status)
}

func TestLeavingTheCity(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	city := newCity(t, hundred, citymap.Position{X: 0, Y: 100})
	sw := swimmer.New(citymap.Position{X: 0, Y: 98})
	c := NewController(WithLogger(zap.New(core)))

	_, err := c.NextCommand(sw, city)
	require.NoError(t, err)

	assert.Equal(t, citymap.Position{X: 0, Y: 114}, sw.Position)
	assert.Equal(t, training.StatusOutsideCity, c.Result().Status)
	assert.Equal(t, training.StatusOutsideCity, c.Result().Status)
	assert.Empty(t, c.Result().CapturedTargets)
	assert.Zero(t, logs.Len())

	// Ticking on is a caller error; it is logged but not prevented.
	_, err = c.NextCommand(sw, city)
	require.NoError(t, err)
	assert.Equal(t, training.StatusOutsideCity, c.Result().Status)
	assert.Equal(t, 1, logs.FilterMessage("frame requested after run ended").Len())
}

func TestCompletedOnlyAfterEveryTarget(t *testing.T) {
	near := citymap.Position{X: 0, Y: 5}
	far := citymap.Position{X: 0, Y: 30}
	city := newCity(t, hundred, far, near)
	sw := swimmer.New(citymap.Position{X: 0, Y: 0})
	c := NewController()

	_, err := c.NextCommand(sw, city)
	require.NoError(t, err)
	assert.Equal(t, training.StatusRunning, c.Result().Status)
	assert.Equal(t, []citymap.Position{near}, c.Result().CapturedTargets)

	cmd, err := c.NextCommand(sw, city)
	require.NoError(t, err)
	assert.Equal(t, command.New(command.North, command.L1), cmd)
	assert.Equal(t, citymap.Position{X: 0, Y: 45}, sw.Position)
	assert.Equal(t, training.StatusCompleted, c.Result().Status)
	assert.Equal(t, []citymap.Position{near, far}, c.Result().CapturedTargets)
}

func TestPendingDropsSegmentCaptures(t *testing.T) {
	near := citymap.Position{X: 0, Y: 5}
	next := citymap.Position{X: 0, Y: 12}
	city := newCity(t, hundred, near, next)
	sw := swimmer.New(citymap.Position{X: 0, Y: 0})
	c := NewController()

	_, err := c.NextCommand(sw, city)
	require.NoError(t, err)

	assert.Equal(t, citymap.Position{X: 0, Y: 16}, sw.Position)
	assert.Equal(t, training.StatusCompleted, c.Result().Status)
	assert.Equal(t, []citymap.Position{near, next}, c.Result().CapturedTargets)
	assert.Empty(t, c.Pending())
}

// stalledWater fails every powered stroke.
type stalledWater struct {
	kinematics.WaterDrag
}

func (stalledWater) NetAcceleration(float64, int, command.SpeedLevel) (float64, error) {
	return 0, kinematics.ErrInvalidModifier
}

func TestFailedFrameLeavesRunUntouched(t *testing.T) {
	target := citymap.Position{X: 0, Y: 30}
	city := newCity(t, hundred, target)
	sw := swimmer.New(citymap.Position{X: 0, Y: 0})
	sw.Kinem = stalledWater{kinematics.DefaultWaterDrag()}
	c := NewController()

	_, err := c.NextCommand(sw, city)
	require.ErrorIs(t, err, kinematics.ErrInvalidModifier)
	assert.Contains(t, err.Error(), "frame 1")

	assert.Equal(t, citymap.Position{X: 0, Y: 0}, sw.Position)
	assert.Zero(t, sw.Vertical)
	r := c.Result()
	assert.Equal(t, training.StatusNotStarted, r.Status)
	assert.Zero(t, r.ElapsedMillis)
	assert.Empty(t, r.CapturedTargets)
	assert.Equal(t, []citymap.Position{target}, c.Pending())
}

func TestPendingBeforeFirstFrame(t *testing.T) {
	assert.Nil(t, NewController().Pending())
}
