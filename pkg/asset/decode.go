package asset

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/leterax/moonview/pkg/scene"
)

// ErrNoGeometry is returned when a document has no triangle meshes to show
var ErrNoGeometry = errors.New("asset contains no triangle geometry")

var (
	identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	zeroMatrix     [16]float64
)

// Decode parses a glTF or GLB stream and flattens its default scene into a model.
// Mesh positions and normals are baked into model space. Base color textures
// embedded in the document are decoded; externally referenced images are skipped.
func Decode(r io.Reader, name string) (*scene.Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode gltf: %w", err)
	}

	meshes, err := flatten(doc)
	if err != nil {
		return nil, err
	}
	if len(meshes) == 0 {
		return nil, ErrNoGeometry
	}

	return scene.NewModel(name, meshes), nil
}

// flatten walks the default scene (or the first one) from its root nodes
func flatten(doc *gltf.Document) ([]*scene.Mesh, error) {
	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		// no scenes: every node that is nobody's child is a root
		roots = rootNodes(doc)
	}

	var meshes []*scene.Mesh
	visited := make(map[int]bool)
	textures := newTextureCache(doc)

	var walk func(idx int, parent mgl32.Mat4) error
	walk = func(idx int, parent mgl32.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", idx)
		}
		if visited[idx] {
			return fmt.Errorf("node %d visited twice, node graph is not a tree", idx)
		}
		visited[idx] = true

		node := doc.Nodes[idx]
		world := parent.Mul4(localMatrix(node))

		if node.Mesh != nil {
			built, err := buildMesh(doc, textures, *node.Mesh, world)
			if err != nil {
				return fmt.Errorf("node %q: %w", node.Name, err)
			}
			meshes = append(meshes, built...)
		}

		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

func rootNodes(doc *gltf.Document) []int {
	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}

	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// localMatrix returns the node transform, preferring an explicit matrix over TRS
func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != identityMatrix && n.Matrix != zeroMatrix {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := mgl32.Translate3D(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))

	r := mgl32.Ident4()
	if n.Rotation != [4]float64{} {
		q := mgl32.Quat{
			W: float32(n.Rotation[3]),
			V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])},
		}
		r = q.Normalize().Mat4()
	}

	s := mgl32.Ident4()
	if n.Scale != [3]float64{} {
		s = mgl32.Scale3D(float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]))
	}

	return t.Mul4(r).Mul4(s)
}

// buildMesh converts each triangle primitive of a glTF mesh into a scene mesh
func buildMesh(doc *gltf.Document, textures *textureCache, meshIdx int, world mgl32.Mat4) ([]*scene.Mesh, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	normalMatrix := world.Mat3().Inv().Transpose()

	var out []*scene.Mesh
	for i, prim := range doc.Meshes[meshIdx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		acr, err := accessor(doc, posIdx)
		if err != nil {
			return nil, err
		}
		positions, err := modeler.ReadPosition(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: failed to read positions: %w", i, err)
		}

		mesh := &scene.Mesh{
			Positions: make([]mgl32.Vec3, len(positions)),
			Color:     baseColor(doc, prim),
		}
		for j, p := range positions {
			mesh.Positions[j] = mgl32.TransformCoordinate(mgl32.Vec3{p[0], p[1], p[2]}, world)
		}

		if prim.Indices != nil {
			acr, err := accessor(doc, *prim.Indices)
			if err != nil {
				return nil, err
			}
			mesh.Indices, err = modeler.ReadIndices(doc, acr, nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d: failed to read indices: %w", i, err)
			}
		} else {
			mesh.Indices = make([]uint32, len(positions))
			for j := range mesh.Indices {
				mesh.Indices[j] = uint32(j)
			}
		}
		for _, idx := range mesh.Indices {
			if int(idx) >= len(positions) {
				return nil, fmt.Errorf("primitive %d: index %d out of range", i, idx)
			}
		}

		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			acr, err := accessor(doc, normIdx)
			if err != nil {
				return nil, err
			}
			normals, err := modeler.ReadNormal(doc, acr, nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d: failed to read normals: %w", i, err)
			}
			if len(normals) == len(positions) {
				mesh.Normals = make([]mgl32.Vec3, len(normals))
				for j, n := range normals {
					mesh.Normals[j] = safeNormalize(normalMatrix.Mul3x1(mgl32.Vec3{n[0], n[1], n[2]}))
				}
			}
		}
		if mesh.Normals == nil {
			mesh.Normals = SmoothNormals(mesh.Positions, mesh.Indices)
		}

		if err := applyTexture(doc, textures, prim, mesh); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}

		out = append(out, mesh)
	}
	return out, nil
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

func material(doc *gltf.Document, prim *gltf.Primitive) *gltf.PBRMetallicRoughness {
	if prim.Material == nil || *prim.Material < 0 || *prim.Material >= len(doc.Materials) {
		return nil
	}
	return doc.Materials[*prim.Material].PBRMetallicRoughness
}

func baseColor(doc *gltf.Document, prim *gltf.Primitive) mgl32.Vec4 {
	color := mgl32.Vec4{1, 1, 1, 1}
	pbr := material(doc, prim)
	if pbr == nil || pbr.BaseColorFactor == nil {
		return color
	}
	f := pbr.BaseColorFactor
	return mgl32.Vec4{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
}

// SmoothNormals averages the face normals around each vertex
func SmoothNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		// area-weighted: the cross product length is twice the triangle area
		face := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = safeNormalize(normals[i])
	}
	return normals
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}
