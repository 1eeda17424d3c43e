// Package render draws the scene with OpenGL and drives the frame queue from a
// GLFW window, or from a ticker when no window could be attached.
package render

import (
	_ "embed"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/moonview/internal/openglhelper"
	"github.com/leterax/moonview/pkg/camera"
	"github.com/leterax/moonview/pkg/scene"
)

var (
	//go:embed shaders/model.vert
	vertexShaderSource string
	//go:embed shaders/model.frag
	fragmentShaderSource string
)

// baseColorUnit is the texture unit sampled for base color
const baseColorUnit = 0

// GLRasterizer draws scene models with one ambient term and one directional light
type GLRasterizer struct {
	window   *openglhelper.Window
	shader   *openglhelper.Shader
	meshes   map[*scene.Mesh]*openglhelper.Mesh
	textures map[*image.RGBA]*openglhelper.Texture
	log      *slog.Logger
}

// NewGLRasterizer compiles the model shader; the window's context must be current
func NewGLRasterizer(window *openglhelper.Window, log *slog.Logger) (*GLRasterizer, error) {
	if log == nil {
		log = slog.Default()
	}

	shader, err := openglhelper.NewShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}

	shader.Use()
	shader.SetInt("baseColorTexture", baseColorUnit)

	return &GLRasterizer{
		window:   window,
		shader:   shader,
		meshes:   make(map[*scene.Mesh]*openglhelper.Mesh),
		textures: make(map[*image.RGBA]*openglhelper.Texture),
		log:      log,
	}, nil
}

// Render implements viewer.Rasterizer
func (r *GLRasterizer) Render(g *scene.Graph, cam camera.State) {
	r.window.Clear(ClearColor)

	r.shader.Use()
	r.shader.SetMat4("view", cam.View())
	r.shader.SetMat4("projection", cam.Projection())
	r.setLights(g.Lights())

	for _, model := range g.Models() {
		modelMatrix := model.Matrix()
		r.shader.SetMat4("model", modelMatrix)
		r.shader.SetMat3("normalMatrix", modelMatrix.Mat3().Inv().Transpose())

		for _, src := range model.Meshes {
			r.shader.SetVec4("baseColor", src.Color)
			if src.Textured() {
				r.texture(src.Texture).Bind(baseColorUnit)
				r.shader.SetInt("hasTexture", 1)
			} else {
				r.shader.SetInt("hasTexture", 0)
			}
			r.upload(src).Draw()
		}
	}
}

// setLights sums the ambient lights and uses the first directional light
func (r *GLRasterizer) setLights(lights []scene.Light) {
	var ambient, direct, dir mgl32.Vec3
	haveDirectional := false

	for _, l := range lights {
		switch l.Kind {
		case scene.Ambient:
			ambient = ambient.Add(l.Color.Mul(l.Intensity))
		case scene.Directional:
			if haveDirectional {
				continue
			}
			haveDirectional = true
			direct = l.Color.Mul(l.Intensity)
			dir = l.Direction()
		}
	}

	r.shader.SetVec3("ambientColor", ambient)
	r.shader.SetVec3("lightColor", direct)
	r.shader.SetVec3("lightDir", dir)
}

// upload creates GPU buffers the first time a mesh is drawn
func (r *GLRasterizer) upload(src *scene.Mesh) *openglhelper.Mesh {
	if m, ok := r.meshes[src]; ok {
		return m
	}
	m := openglhelper.NewMesh(src)
	r.meshes[src] = m
	r.log.Debug("Uploaded mesh", "triangles", src.TriangleCount())
	return m
}

// texture uploads each decoded image once; meshes sharing a material share it
func (r *GLRasterizer) texture(img *image.RGBA) *openglhelper.Texture {
	if t, ok := r.textures[img]; ok {
		return t
	}
	t := openglhelper.NewTexture(img)
	r.textures[img] = t
	r.log.Debug("Uploaded texture", "width", t.Width, "height", t.Height)
	return t
}

// Delete releases GPU resources
func (r *GLRasterizer) Delete() {
	for _, m := range r.meshes {
		m.Delete()
	}
	r.meshes = nil
	for _, t := range r.textures {
		t.Delete()
	}
	r.textures = nil
	r.shader.Delete()
}
