// Package camera implements the camera rig: a perspective projection plus a
// position looking at a target, updated by an ordered list of stages each tick.
package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidState is returned when a camera state breaks the projection invariants
var ErrInvalidState = errors.New("invalid camera state")

// State is a value snapshot of the camera
type State struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOV    float32 // vertical field of view in degrees
	Near   float32
	Far    float32
	Aspect float32
}

// Validate checks 0 < Near < Far, a usable field of view and a positive aspect ratio
func (s State) Validate() error {
	if s.Near <= 0 {
		return fmt.Errorf("%w: near plane %v must be positive", ErrInvalidState, s.Near)
	}
	if s.Near >= s.Far {
		return fmt.Errorf("%w: near plane %v must be less than far plane %v", ErrInvalidState, s.Near, s.Far)
	}
	if s.FOV <= 0 || s.FOV >= 180 {
		return fmt.Errorf("%w: field of view %v out of range", ErrInvalidState, s.FOV)
	}
	if s.Aspect <= 0 {
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidState, s.Aspect)
	}
	return nil
}

// WithAspect returns a copy with the aspect ratio recomputed from viewport dimensions.
// Non-positive dimensions leave the state unchanged.
func (s State) WithAspect(width, height int) State {
	if width <= 0 || height <= 0 {
		return s
	}
	s.Aspect = float32(width) / float32(height)
	return s
}

// Projection returns the perspective projection matrix
func (s State) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(s.FOV), s.Aspect, s.Near, s.Far)
}

// View returns the view matrix looking from Position at Target
func (s State) View() mgl32.Mat4 {
	up := s.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}

	target := s.Target
	// Camera pushed exactly onto its target has no view direction
	if s.Position.Sub(target).Len() == 0 {
		target = s.Position.Add(mgl32.Vec3{0, 0, -1})
	}
	return mgl32.LookAtV(s.Position, target, up)
}

// Distance returns how far the camera is from its target
func (s State) Distance() float32 {
	return s.Position.Sub(s.Target).Len()
}

// Stage is one camera update applied by the render loop every tick
type Stage interface {
	Update(State) State
}

// StageFunc adapts a function to the Stage interface
type StageFunc func(State) State

// Update calls f(s)
func (f StageFunc) Update(s State) State {
	return f(s)
}

// Rig owns the camera state shared by the render loop and viewport sync.
// It enforces no bounds on position.
type Rig struct {
	state State
}

// NewRig creates a rig from an initial state
func NewRig(initial State) (*Rig, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Rig{state: initial}, nil
}

// State returns the current camera state
func (r *Rig) State() State {
	return r.state
}

// UpdateAspectRatio recomputes the aspect ratio; call before the next render after a resize
func (r *Rig) UpdateAspectRatio(width, height int) {
	r.state = r.state.WithAspect(width, height)
}

// Apply runs the stages in order, each one seeing the previous stage's output
func (r *Rig) Apply(stages ...Stage) {
	for _, stage := range stages {
		r.state = stage.Update(r.state)
	}
}
