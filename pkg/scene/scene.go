// Package scene holds the renderable and light nodes presented each frame.
package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// LightKind distinguishes the supported light types
type LightKind int

const (
	// Ambient lights every surface uniformly
	Ambient LightKind = iota
	// Directional shines from Position towards the origin
	Directional
)

// String returns the light kind name
func (k LightKind) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Directional:
		return "directional"
	default:
		return "unknown"
	}
}

// Light is a light node. Lights are created once at startup and never mutated.
type Light struct {
	Kind      LightKind
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
}

// Direction returns the normalized direction the light travels in.
// Ambient lights have no direction and return the zero vector.
func (l Light) Direction() mgl32.Vec3 {
	if l.Kind != Directional || l.Position.Len() == 0 {
		return mgl32.Vec3{}
	}
	return l.Position.Mul(-1).Normalize()
}

// ColorFromHex converts a 0xRRGGBB value into an RGB vector in [0,1]
func ColorFromHex(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// Mesh is triangle geometry in model space. Texture is multiplied by Color
// when set, UVs then holds one coordinate per position.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Color     mgl32.Vec4
	Texture   *image.RGBA
}

// Textured reports whether the mesh samples a base color texture
func (m *Mesh) Textured() bool {
	return m.Texture != nil && len(m.Texture.Pix) > 0 && len(m.UVs) == len(m.Positions)
}

// TriangleCount returns the number of indexed triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Model is a loaded renderable object. Once inserted into a Graph it is not mutated.
type Model struct {
	Name     string
	Meshes   []*Mesh
	Scale    mgl32.Vec3
	Position mgl32.Vec3
}

// NewModel creates a model with unit scale at the origin
func NewModel(name string, meshes []*Mesh) *Model {
	return &Model{
		Name:   name,
		Meshes: meshes,
		Scale:  mgl32.Vec3{1, 1, 1},
	}
}

// Matrix returns the model-to-world transform
func (m *Model) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	s := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	return t.Mul4(s)
}

// Graph is the scene tree. It is owned by the render loop thread.
type Graph struct {
	lights []Light
	models []*Model
}

// NewGraph creates an empty scene graph
func NewGraph() *Graph {
	return &Graph{}
}

// AddLight appends a light node
func (g *Graph) AddLight(light Light) {
	g.lights = append(g.lights, light)
}

// AddModel appends a model node
func (g *Graph) AddModel(model *Model) {
	g.models = append(g.models, model)
}

// Lights returns the light nodes in insertion order
func (g *Graph) Lights() []Light {
	return g.lights
}

// Models returns the model nodes in insertion order
func (g *Graph) Models() []*Model {
	return g.models
}
