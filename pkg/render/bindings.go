package render

import (
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/leterax/moonview/internal/openglhelper"
	"github.com/leterax/moonview/pkg/input"
	"github.com/leterax/moonview/pkg/orbit"
	"github.com/leterax/moonview/pkg/viewport"
)

// Bindings routes GLFW window events to the viewer's input, orbit and viewport state
type Bindings struct {
	window   *openglhelper.Window
	keys     *input.State
	orbit    *orbit.Controller
	viewport *viewport.Sync
}

// NewBindings creates bindings for a window
func NewBindings(window *openglhelper.Window, keys *input.State, orb *orbit.Controller, sync *viewport.Sync) *Bindings {
	return &Bindings{
		window:   window,
		keys:     keys,
		orbit:    orb,
		viewport: sync,
	}
}

// Attach installs the GLFW callbacks
func (b *Bindings) Attach() {
	w := b.window.GLFWWindow()
	w.SetKeyCallback(b.keyCallback)
	w.SetCursorPosCallback(b.cursorPosCallback)
	w.SetMouseButtonCallback(b.mouseButtonCallback)
	w.SetScrollCallback(b.scrollCallback)
	w.SetFramebufferSizeCallback(b.framebufferSizeCallback)
}

// Callback functions
func (b *Bindings) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == KeyEscape && action == Press {
		b.window.SetShouldClose(true)
		return
	}

	// GetKeyName follows the keyboard layout, like a browser's key value
	name := glfw.GetKeyName(key, scancode)
	if name == "" {
		return
	}
	k := input.Key(strings.ToLower(name))

	switch action {
	case Press, Repeat:
		b.keys.Press(k)
	case Release:
		b.keys.Release(k)
	}
}

func (b *Bindings) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	b.orbit.PointerMove(xpos, ypos)
}

func (b *Bindings) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != OrbitButton {
		return
	}
	switch action {
	case Press:
		b.orbit.PointerDown(w.GetCursorPos())
	case Release:
		b.orbit.PointerUp()
	}
}

func (b *Bindings) scrollCallback(_ *glfw.Window, xoffset, yoffset float64) {
	b.orbit.Scroll(yoffset)
}

func (b *Bindings) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	b.viewport.Resize(width, height)
}
