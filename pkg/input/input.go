// Package input tracks held keys and turns them into per-tick camera motion.
package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/moonview/pkg/camera"
)

// Key identifies a key by its lower-case name, e.g. "w"
type Key string

// Movement keys
const (
	KeyForward Key = "w"
	KeyBack    Key = "s"
	KeyLeft    Key = "a"
	KeyRight   Key = "d"
)

// Motion defaults
const (
	DefaultSpeed        = 200.0
	DefaultTickFraction = 0.1
)

// State maps keys to their held flag. A key stays held until Release,
// including when the window loses focus.
type State struct {
	held map[Key]bool
}

// NewState creates an empty key state
func NewState() *State {
	return &State{held: make(map[Key]bool)}
}

// Press marks a key as held
func (s *State) Press(k Key) {
	s.held[k] = true
}

// Release marks a key as no longer held
func (s *State) Release(k Key) {
	s.held[k] = false
}

// Held reports whether the key is currently held
func (s *State) Held(k Key) bool {
	return s.held[k]
}

// binding ties a key to a world-axis direction
type binding struct {
	key Key
	dir mgl32.Vec3
}

var bindings = []binding{
	{KeyForward, mgl32.Vec3{0, 0, -1}},
	{KeyBack, mgl32.Vec3{0, 0, 1}},
	{KeyLeft, mgl32.Vec3{-1, 0, 0}},
	{KeyRight, mgl32.Vec3{1, 0, 0}},
}

// Motion displaces the camera along fixed world axes for every held movement key.
// Displacement is unconditional: there is no clamp, collision or bounds check.
type Motion struct {
	Keys         *State
	Speed        float32
	TickFraction float32
}

// NewMotion creates a motion stage with the default speed
func NewMotion(keys *State) *Motion {
	return &Motion{
		Keys:         keys,
		Speed:        DefaultSpeed,
		TickFraction: DefaultTickFraction,
	}
}

// Delta returns the displacement for one tick given the current key state
func (m *Motion) Delta() mgl32.Vec3 {
	var delta mgl32.Vec3
	step := m.Speed * m.TickFraction
	for _, b := range bindings {
		if m.Keys.Held(b.key) {
			delta = delta.Add(b.dir.Mul(step))
		}
	}
	return delta
}

// Update implements camera.Stage
func (m *Motion) Update(s camera.State) camera.State {
	s.Position = s.Position.Add(m.Delta())
	return s
}
