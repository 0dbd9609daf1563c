package software

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite/render"
)

// Texture is a CPU texture.
type Texture struct {
	width, height int
	format        gputypes.TextureFormat
	framebuffer   bool
	pix           []byte
}

func newTexture(width, height int, format gputypes.TextureFormat, framebuffer bool) *Texture {
	return &Texture{
		width:       width,
		height:      height,
		format:      format,
		framebuffer: framebuffer,
		pix:         make([]byte, width*height*render.BytesPerPixel(format)),
	}
}

// Width implements render.Texture.
func (t *Texture) Width() int { return t.width }

// Height implements render.Texture.
func (t *Texture) Height() int { return t.height }

// Format implements render.Texture.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// IsFramebuffer implements render.Texture.
func (t *Texture) IsFramebuffer() bool { return t.framebuffer }

// SetData implements render.Texture.
func (t *Texture) SetData(data []byte) error {
	if len(data) != len(t.pix) {
		return fmt.Errorf("%w: texture holds %d bytes, got %d", render.ErrDataSize, len(t.pix), len(data))
	}
	copy(t.pix, data)
	return nil
}

// texel returns the texel at (x, y) as straight RGBA in 0..1. Missing
// channels read as 0 and missing alpha as 1.
func (t *Texture) texel(x, y int) [4]float32 {
	bpp := render.BytesPerPixel(t.format)
	p := t.pix[(y*t.width+x)*bpp:]
	switch t.format {
	case gputypes.TextureFormatR8Unorm:
		return [4]float32{unorm(p[0]), 0, 0, 1}
	case gputypes.TextureFormatRG8Unorm:
		return [4]float32{unorm(p[0]), unorm(p[1]), 0, 1}
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return [4]float32{unorm(p[2]), unorm(p[1]), unorm(p[0]), unorm(p[3])}
	default:
		return [4]float32{unorm(p[0]), unorm(p[1]), unorm(p[2]), unorm(p[3])}
	}
}

// Target is a CPU framebuffer with one RGBA8 color attachment.
type Target struct {
	width, height int
	back          bool
	color         *Texture
}

func newTarget(width, height int, back bool) *Target {
	return &Target{
		width:  width,
		height: height,
		back:   back,
		color:  newTexture(width, height, gputypes.TextureFormatRGBA8Unorm, true),
	}
}

// Width implements render.Target.
func (t *Target) Width() int { return t.width }

// Height implements render.Target.
func (t *Target) Height() int { return t.height }

// Textures implements render.Target. The back buffer has no attachments
// visible to materials.
func (t *Target) Textures() []render.Texture {
	if t.back {
		return nil
	}
	return []render.Texture{t.color}
}

// Image returns the color attachment as an image sharing its pixels.
func (t *Target) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    t.color.pix,
		Stride: t.width * 4,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
}

func unorm(b byte) float32 { return float32(b) / 255 }
