package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Key constants for window control
const (
	KeyEscape = glfw.KeyEscape
)

// Action constants for key states
const (
	Press   = glfw.Press
	Release = glfw.Release
	Repeat  = glfw.Repeat
)

// Mouse button that drags the orbit
const OrbitButton = glfw.MouseButtonLeft

// ClearColor is fully transparent so the desktop shows through around the model
var ClearColor = mgl32.Vec4{0, 0, 0, 0}

