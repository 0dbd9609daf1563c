package recording

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite/render"
)

// memTexture is a headless texture holding its last upload.
type memTexture struct {
	width, height int
	format        gputypes.TextureFormat
	framebuffer   bool
	data          []byte
}

func (t *memTexture) Width() int                     { return t.width }
func (t *memTexture) Height() int                    { return t.height }
func (t *memTexture) Format() gputypes.TextureFormat { return t.format }
func (t *memTexture) IsFramebuffer() bool            { return t.framebuffer }

func (t *memTexture) SetData(data []byte) error {
	want := t.width * t.height * render.BytesPerPixel(t.format)
	if len(data) != want {
		return fmt.Errorf("%w: texture holds %d bytes, got %d", render.ErrDataSize, want, len(data))
	}
	t.data = append(t.data[:0], data...)
	return nil
}

// memTarget is a headless render target with one color attachment.
type memTarget struct {
	width, height int
	textures      []render.Texture
}

func newMemTarget(width, height int) *memTarget {
	return &memTarget{
		width:  width,
		height: height,
		textures: []render.Texture{&memTexture{
			width:       width,
			height:      height,
			format:      gputypes.TextureFormatRGBA8Unorm,
			framebuffer: true,
		}},
	}
}

func (t *memTarget) Width() int                 { return t.width }
func (t *memTarget) Height() int                { return t.height }
func (t *memTarget) Textures() []render.Texture { return t.textures }
