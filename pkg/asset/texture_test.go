package asset

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moonGrey = color.RGBA{R: 120, G: 118, B: 110, A: 255}

func pngPixel(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// texturedGLB builds two triangle primitives sharing one textured material.
// addImage stores the texture's image, or nothing to leave the texture dangling.
func texturedGLB(t *testing.T, addImage func(doc *gltf.Document)) []byte {
	t.Helper()

	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0", Generator: "moonview test"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Nodes:  []*gltf.Node{{Name: "moon", Mesh: gltf.Index(0)}},
	}
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	if addImage != nil {
		addImage(doc)
	}

	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	doc.Materials = []*gltf.Material{{
		Name: "regolith",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
		},
	}}
	attrs := map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: uv}
	doc.Meshes = []*gltf.Mesh{{
		Name: "moon",
		Primitives: []*gltf.Primitive{
			{Material: gltf.Index(0), Attributes: attrs},
			{Material: gltf.Index(0), Attributes: attrs},
		},
	}}
	return encodeGLB(t, doc)
}

func bufferViewImage(t *testing.T, data []byte) func(doc *gltf.Document) {
	return func(doc *gltf.Document) {
		_, err := modeler.WriteImage(doc, "surface", "image/png", bytes.NewReader(data))
		require.NoError(t, err)
	}
}

func uriImage(uri string) func(doc *gltf.Document) {
	return func(doc *gltf.Document) {
		doc.Images = append(doc.Images, &gltf.Image{URI: uri})
	}
}

func encodeGLB(t *testing.T, doc *gltf.Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))
	return buf.Bytes()
}

func TestDecodeEmbeddedTexture(t *testing.T) {
	glb := texturedGLB(t, bufferViewImage(t, pngPixel(t, moonGrey)))
	model, err := Decode(bytes.NewReader(glb), "moon")
	require.NoError(t, err)
	require.Len(t, model.Meshes, 2)

	mesh := model.Meshes[0]
	require.True(t, mesh.Textured())
	assert.Equal(t, []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}}, mesh.UVs)
	assert.Equal(t, image.Rect(0, 0, 1, 1), mesh.Texture.Bounds())
	assert.Equal(t, moonGrey, mesh.Texture.RGBAAt(0, 0))

	// texture only, so the factor stays white
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, mesh.Color)

	// both primitives use the same decoded pixels
	assert.Same(t, model.Meshes[0].Texture, model.Meshes[1].Texture)
}

func TestDecodeDataURITexture(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngPixel(t, moonGrey))
	model, err := Decode(bytes.NewReader(texturedGLB(t, uriImage(uri))), "moon")
	require.NoError(t, err)

	for _, mesh := range model.Meshes {
		require.True(t, mesh.Textured())
		assert.Equal(t, moonGrey, mesh.Texture.RGBAAt(0, 0))
	}
}

func TestDecodeExternalTextureIsSkipped(t *testing.T) {
	model, err := Decode(bytes.NewReader(texturedGLB(t, uriImage("moon_color.png"))), "moon")
	require.NoError(t, err)
	require.Len(t, model.Meshes, 2)

	for _, mesh := range model.Meshes {
		assert.False(t, mesh.Textured())
		assert.Nil(t, mesh.UVs)
	}
}

func TestDecodeTextureErrors(t *testing.T) {
	tests := []struct {
		name     string
		addImage func(doc *gltf.Document)
		want     string
	}{
		{
			name:     "corrupt image",
			addImage: bufferViewImage(t, []byte("not a png")),
			want:     "failed to decode",
		},
		{
			name: "missing image",
			want: "image index 0 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(texturedGLB(t, tt.addImage)), "moon")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
