package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
)

// fakeBackend records what it is asked to do.
type fakeBackend struct {
	back    *fakeTarget
	calls   []DrawCall
	clears  []sprite.Color
	shaders []ShaderData
}

type fakeTexture struct {
	w, h   int
	format gputypes.TextureFormat
	data   []byte
	fb     bool
}

func (t *fakeTexture) Width() int                     { return t.w }
func (t *fakeTexture) Height() int                    { return t.h }
func (t *fakeTexture) Format() gputypes.TextureFormat { return t.format }
func (t *fakeTexture) IsFramebuffer() bool            { return t.fb }
func (t *fakeTexture) SetData(data []byte) error {
	if len(data) != t.w*t.h*BytesPerPixel(t.format) {
		return ErrDataSize
	}
	t.data = append(t.data[:0], data...)
	return nil
}

type fakeTarget struct {
	w, h int
	tex  []Texture
}

func (t *fakeTarget) Width() int          { return t.w }
func (t *fakeTarget) Height() int         { return t.h }
func (t *fakeTarget) Textures() []Texture { return t.tex }

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{back: &fakeTarget{w: w, h: h}}
}

func (b *fakeBackend) CreateTexture(w, h int, f gputypes.TextureFormat) (Texture, error) {
	return &fakeTexture{w: w, h: h, format: f}, nil
}

func (b *fakeBackend) CreateTarget(w, h int) (Target, error) {
	tex := &fakeTexture{w: w, h: h, format: gputypes.TextureFormatRGBA8Unorm, fb: true}
	return &fakeTarget{w: w, h: h, tex: []Texture{tex}}, nil
}

func (b *fakeBackend) CreateMesh() (Mesh, error) { return &MeshData{}, nil }

func (b *fakeBackend) CreateShader(d ShaderData) (Shader, error) {
	b.shaders = append(b.shaders, d)
	return &CompiledShader{Data: d}, nil
}

func (b *fakeBackend) BackBuffer() Target { return b.back }

func (b *fakeBackend) Render(call *DrawCall) error {
	b.calls = append(b.calls, *call)
	return nil
}

func (b *fakeBackend) Clear(_ Target, c sprite.Color, _ float32, _ uint8) error {
	b.clears = append(b.clears, c)
	return nil
}

var _ Backend = (*fakeBackend)(nil)
