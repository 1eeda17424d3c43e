// Package viewport keeps the camera aspect ratio and output surface in step
// with the window size.
package viewport

import (
	"github.com/leterax/moonview/pkg/camera"
)

// Surface is the output the renderer draws into
type Surface interface {
	SetSize(width, height int)
	Size() (width, height int)
}

// Observer is notified with the new size after every applied resize
type Observer func(width, height int)

// Sync applies window resizes to the camera rig and the output surface
type Sync struct {
	rig       *camera.Rig
	surface   Surface
	observers []Observer
}

// NewSync creates a viewport sync for the given rig and surface
func NewSync(rig *camera.Rig, surface Surface, observers ...Observer) *Sync {
	return &Sync{
		rig:       rig,
		surface:   surface,
		observers: observers,
	}
}

// Resize recomputes the aspect ratio and resizes the surface. Calling it again
// with the same size leaves the state unchanged. Non-positive sizes, reported
// for minimized windows, are ignored.
func (s *Sync) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	s.rig.UpdateAspectRatio(width, height)
	if s.surface != nil {
		s.surface.SetSize(width, height)
	}
	for _, o := range s.observers {
		o(width, height)
	}
}

// MemorySurface is a Surface that only records its size
type MemorySurface struct {
	width, height int
}

// NewMemorySurface creates a surface with the given initial size
func NewMemorySurface(width, height int) *MemorySurface {
	return &MemorySurface{width: width, height: height}
}

// SetSize records the new size
func (m *MemorySurface) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Size returns the recorded size
func (m *MemorySurface) Size() (int, int) {
	return m.width, m.height
}
