// Package orbit implements damped drag-to-orbit and scroll-to-zoom camera control
// around a fixed target point.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/moonview/pkg/camera"
)

const (
	// keeps the camera off the poles, where the up vector degenerates
	polarEpsilon = 1e-6
	// pending rotation below this is treated as settled
	settleEpsilon = 1e-6
	// float32 round-off on a camera sitting at a distance limit
	distanceSlack = 1e-3
	zoomBase      = 0.95
)

// Config holds the orbit controller settings
type Config struct {
	EnableDamping bool
	DampingFactor float64
	MinDistance   float64
	MaxDistance   float64
	RotateSpeed   float64
	ZoomSpeed     float64
}

// DefaultConfig returns the viewer's orbit settings
func DefaultConfig() Config {
	return Config{
		EnableDamping: true,
		DampingFactor: 0.1,
		MinDistance:   800,
		MaxDistance:   5000,
		RotateSpeed:   1,
		ZoomSpeed:     1,
	}
}

// Controller turns pointer drags and scrolls into a smoothed per-tick camera update.
// Distance is clamped only for the controller's own motion: a camera moved outside
// [MinDistance, MaxDistance] by something else stays where it was put.
type Controller struct {
	cfg    Config
	target mgl32.Vec3

	// pending spherical deltas
	deltaTheta float64
	deltaPhi   float64
	scale      float64

	dragging     bool
	lastX, lastY float64

	width, height int
}

// NewController creates a controller orbiting the origin
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:    cfg,
		scale:  1,
		width:  800, // Default size
		height: 600,
	}
}

// Config returns the controller settings
func (c *Controller) Config() Config {
	return c.cfg
}

// SetViewport records the viewport size used to scale drag rotation
func (c *Controller) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
}

// PointerDown starts a drag at the given cursor position
func (c *Controller) PointerDown(x, y float64) {
	c.dragging = true
	c.lastX = x
	c.lastY = y
}

// PointerMove rotates by the cursor offset while dragging.
// Dragging the full viewport height turns the camera a full circle.
func (c *Controller) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}

	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX = x
	c.lastY = y

	c.rotateLeft(2 * math.Pi * dx / float64(c.height) * c.cfg.RotateSpeed)
	c.rotateUp(2 * math.Pi * dy / float64(c.height) * c.cfg.RotateSpeed)
}

// PointerUp ends the current drag; pending damped motion keeps playing out
func (c *Controller) PointerUp() {
	c.dragging = false
}

// Scroll zooms by the given number of notches. Positive values move closer.
func (c *Controller) Scroll(notches float64) {
	if notches == 0 {
		return
	}
	c.scale *= math.Pow(math.Pow(zoomBase, c.cfg.ZoomSpeed), notches)
}

func (c *Controller) rotateLeft(angle float64) {
	c.deltaTheta -= angle
}

func (c *Controller) rotateUp(angle float64) {
	c.deltaPhi -= angle
}

// Idle reports whether the controller has no pending motion
func (c *Controller) Idle() bool {
	return c.deltaTheta == 0 && c.deltaPhi == 0 && c.scale == 1
}

// Update implements camera.Stage. It applies one damped step of pending rotation
// and any pending zoom, then points the camera at the target.
func (c *Controller) Update(s camera.State) camera.State {
	s.Target = c.target
	if c.Idle() {
		return s
	}

	offset := s.Position.Sub(c.target)
	x, y, z := float64(offset.X()), float64(offset.Y()), float64(offset.Z())

	radius := math.Sqrt(x*x + y*y + z*z)
	theta, phi := 0.0, math.Pi/2
	if radius > 0 {
		theta = math.Atan2(x, z)
		phi = math.Acos(clamp(y/radius, -1, 1))
	}

	if c.cfg.EnableDamping {
		theta += c.deltaTheta * c.cfg.DampingFactor
		phi += c.deltaPhi * c.cfg.DampingFactor
	} else {
		theta += c.deltaTheta
		phi += c.deltaPhi
	}
	phi = clamp(phi, polarEpsilon, math.Pi-polarEpsilon)

	// a camera already outside the range keeps its distance as the limit
	lo, hi := c.cfg.MinDistance, c.cfg.MaxDistance
	if radius < lo-distanceSlack {
		lo = radius
	}
	if radius > hi+distanceSlack {
		hi = radius
	}
	radius = clamp(radius*c.scale, lo, hi)

	sinPhi := math.Sin(phi)
	s.Position = c.target.Add(mgl32.Vec3{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	})

	if c.cfg.EnableDamping {
		c.deltaTheta *= 1 - c.cfg.DampingFactor
		c.deltaPhi *= 1 - c.cfg.DampingFactor
		if math.Abs(c.deltaTheta) < settleEpsilon && math.Abs(c.deltaPhi) < settleEpsilon {
			c.deltaTheta, c.deltaPhi = 0, 0
		}
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
	}
	c.scale = 1

	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
