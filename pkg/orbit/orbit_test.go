package orbit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/moonview/pkg/camera"
)

func startState() camera.State {
	return camera.State{
		Position: mgl32.Vec3{0, 0, 5000},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      30,
		Near:     0.1,
		Far:      10000,
		Aspect:   4.0 / 3.0,
	}
}

func drag(c *Controller, dx, dy float64) {
	c.PointerDown(400, 300)
	c.PointerMove(400+dx, 300+dy)
	c.PointerUp()
}

func TestIdleLeavesPositionUnchanged(t *testing.T) {
	c := NewController(DefaultConfig())
	s := startState()
	s.Position = mgl32.Vec3{123, 45, 678}

	got := c.Update(s)
	assert.Equal(t, s.Position, got.Position)
	assert.Equal(t, mgl32.Vec3{}, got.Target)
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	c := NewController(DefaultConfig())
	c.PointerMove(10, 10)
	c.PointerMove(500, 500)
	assert.True(t, c.Idle())
}

func TestDragRotatesAroundTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableDamping = false
	c := NewController(cfg)
	c.SetViewport(800, 600)

	// a quarter of the viewport height is a quarter turn
	drag(c, -150, 0)
	got := c.Update(startState())

	assert.InDelta(t, 5000, got.Distance(), 1e-2)
	assert.InDelta(t, 5000, got.Position.X(), 1e-1)
	assert.InDelta(t, 0, got.Position.Z(), 1e-1)
	assert.True(t, c.Idle())
}

func TestDampingSpreadsRotationOverTicks(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetViewport(800, 600)
	drag(c, -150, 0)

	s := startState()
	s = c.Update(s)
	first := math.Atan2(float64(s.Position.X()), float64(s.Position.Z()))
	// one tick applies only the damping factor's share
	assert.InDelta(t, math.Pi/2*0.1, first, 1e-4)

	for i := 0; i < 500 && !c.Idle(); i++ {
		s = c.Update(s)
	}
	require.True(t, c.Idle())

	total := math.Atan2(float64(s.Position.X()), float64(s.Position.Z()))
	assert.InDelta(t, math.Pi/2, total, 1e-3)
	assert.InDelta(t, 5000, s.Distance(), 1e-1)
}

func TestPolarAngleStaysOffThePoles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableDamping = false
	c := NewController(cfg)
	c.SetViewport(800, 600)

	drag(c, 0, 5000)
	got := c.Update(startState())

	assert.Greater(t, got.Position.Y(), float32(0))
	assert.InDelta(t, 5000, got.Distance(), 1e-1)
	assert.False(t, got.Position.X() == 0 && got.Position.Z() == 0 && got.Position.Y() == 5000)
}

func TestScrollZoomClamps(t *testing.T) {
	tests := []struct {
		name    string
		notches float64
		want    float64
	}{
		{"one notch in", 1, 5000 * 0.95},
		{"far in clamps to min", 200, 800},
		{"out clamps to max", -3, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(DefaultConfig())
			c.Scroll(tt.notches)
			got := c.Update(startState())
			assert.InDelta(t, tt.want, got.Distance(), 1e-2)
		})
	}
}

func TestOutOfRangeCameraIsNotPulledBack(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetViewport(800, 600)

	// pushed past the max distance by keyboard motion
	s := startState()
	s.Position = mgl32.Vec3{0, 0, 6000}

	drag(c, -30, 0)
	s = c.Update(s)
	assert.InDelta(t, 6000, s.Distance(), 1e-1)

	// zooming out cannot push it further
	c.Scroll(-1)
	s = c.Update(s)
	assert.InDelta(t, 6000, s.Distance(), 1e-1)

	// zooming in still works
	c.Scroll(1)
	s = c.Update(s)
	assert.InDelta(t, 6000*0.95, s.Distance(), 1e-1)
}

func TestOrbitOnlyMotionStaysInRange(t *testing.T) {
	cfg := DefaultConfig()
	c := NewController(cfg)
	c.SetViewport(1024, 768)
	rng := rand.New(rand.NewSource(7))

	s := startState()
	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			drag(c, rng.Float64()*400-200, rng.Float64()*400-200)
		case 1:
			c.Scroll(float64(rng.Intn(7) - 3))
		}
		s = c.Update(s)

		d := float64(s.Distance())
		require.GreaterOrEqual(t, d, cfg.MinDistance-1e-2, "tick %d", i)
		require.LessOrEqual(t, d, cfg.MaxDistance+1e-2, "tick %d", i)
	}
}

func TestSetViewportIgnoresEmptySize(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetViewport(0, 0)
	assert.Equal(t, 600, c.height)
}
