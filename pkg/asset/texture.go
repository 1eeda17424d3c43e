package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/leterax/moonview/pkg/scene"
)

// textureCache decodes each glTF image once so primitives sharing a material
// share the same pixels
type textureCache struct {
	doc    *gltf.Document
	images map[int]*image.RGBA
}

func newTextureCache(doc *gltf.Document) *textureCache {
	return &textureCache{
		doc:    doc,
		images: make(map[int]*image.RGBA),
	}
}

// applyTexture attaches the primitive's base color texture and its coordinates.
// A primitive without a texture, or without matching coordinates, stays untextured.
func applyTexture(doc *gltf.Document, textures *textureCache, prim *gltf.Primitive, mesh *scene.Mesh) error {
	pbr := material(doc, prim)
	if pbr == nil || pbr.BaseColorTexture == nil {
		return nil
	}
	info := pbr.BaseColorTexture

	uvIdx, ok := prim.Attributes[fmt.Sprintf("TEXCOORD_%d", info.TexCoord)]
	if !ok {
		return nil
	}
	acr, err := accessor(doc, uvIdx)
	if err != nil {
		return err
	}
	uvs, err := modeler.ReadTextureCoord(doc, acr, nil)
	if err != nil {
		return fmt.Errorf("failed to read texture coordinates: %w", err)
	}
	if len(uvs) != len(mesh.Positions) {
		return nil
	}

	img, err := textures.get(info.Index)
	if err != nil || img == nil {
		return err
	}

	mesh.UVs = make([]mgl32.Vec2, len(uvs))
	for j, uv := range uvs {
		mesh.UVs[j] = mgl32.Vec2{uv[0], uv[1]}
	}
	mesh.Texture = img
	return nil
}

// get returns the decoded image behind a texture, or nil when the image lives
// outside the document
func (c *textureCache) get(textureIdx int) (*image.RGBA, error) {
	if textureIdx < 0 || textureIdx >= len(c.doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", textureIdx)
	}
	src := c.doc.Textures[textureIdx].Source
	if src == nil {
		return nil, nil
	}
	if *src < 0 || *src >= len(c.doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", *src)
	}
	if img, ok := c.images[*src]; ok {
		return img, nil
	}

	data, err := imageData(c.doc, c.doc.Images[*src])
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", *src, err)
	}
	var img *image.RGBA
	if data != nil {
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("image %d: failed to decode: %w", *src, err)
		}
		img = toRGBA(decoded)
	}
	c.images[*src] = img
	return img, nil
}

func imageData(doc *gltf.Document, img *gltf.Image) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		if *img.BufferView < 0 || *img.BufferView >= len(doc.BufferViews) {
			return nil, fmt.Errorf("buffer view index %d out of range", *img.BufferView)
		}
		return modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
	case img.IsEmbeddedResource():
		return img.MarshalData()
	default:
		return nil, nil
	}
}

// toRGBA copies an image into tightly packed RGBA rows starting at the origin
func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
