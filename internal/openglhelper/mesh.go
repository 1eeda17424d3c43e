package openglhelper

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/leterax/moonview/pkg/scene"
)

// floats per interleaved vertex: position (3) + normal (3) + uv (2)
const vertexStride = 8

// Mesh is a scene mesh uploaded to GPU buffers
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewMesh uploads positions, normals, texture coordinates and indices of a scene mesh
func NewMesh(src *scene.Mesh) *Mesh {
	vertices := make([]float32, 0, len(src.Positions)*vertexStride)
	for i, p := range src.Positions {
		n := [3]float32{0, 1, 0}
		if i < len(src.Normals) {
			n = src.Normals[i]
		}
		var uv [2]float32
		if i < len(src.UVs) {
			uv = src.UVs[i]
		}
		vertices = append(vertices, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}

	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices, StaticDraw)
	ebo := NewEBO(src.Indices, StaticDraw)

	// Position attribute (3 floats)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride*4, 0)
	// Normal attribute (3 floats)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride*4, 3*4)
	// Texture coordinate attribute (2 floats)
	vao.SetVertexAttribPointer(2, 2, gl.FLOAT, false, vertexStride*4, 6*4)

	// Unbind VAO
	vao.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(src.Indices)),
	}
}

// Draw renders the mesh with whatever shader is bound
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
