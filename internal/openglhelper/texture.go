package openglhelper

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture represents an OpenGL 2D texture holding RGBA8 pixels
type Texture struct {
	ID     uint32
	Width  int32
	Height int32
}

// NewTexture uploads an RGBA image with mipmaps and repeat wrapping.
// Rows are uploaded top first, so glTF texture coordinates map directly.
func NewTexture(img *image.RGBA) *Texture {
	var textureID uint32
	gl.GenTextures(1, &textureID)

	b := img.Bounds()
	texture := &Texture{
		ID:     textureID,
		Width:  int32(b.Dx()),
		Height: int32(b.Dy()),
	}

	texture.Bind(0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows of odd widths are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, texture.Width, texture.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return texture
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Delete releases the texture and frees its resources.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}
