package software

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// Name is the registry name of the backend.
const Name = "software"

// ErrForeignResource is returned when a draw call refers to a resource
// created by another backend.
var ErrForeignResource = errors.New("software: resource not created by this backend")

func init() {
	render.Register(Name, func(opts render.BackendOptions) (render.Backend, error) {
		if opts.Width <= 0 || opts.Height <= 0 {
			return nil, fmt.Errorf("%w: back buffer %dx%d", render.ErrInvalidSize, opts.Width, opts.Height)
		}
		return New(opts.Width, opts.Height), nil
	})
}

// Backend renders on the CPU.
type Backend struct {
	back *Target
}

var _ render.CapableRenderer = (*Backend)(nil)

// New returns a Backend with a back buffer of the given size.
func New(width, height int) *Backend {
	return &Backend{back: newTarget(width, height, true)}
}

// Name implements render.Renderer.
func (b *Backend) Name() string { return Name }

// Capabilities implements render.CapableRenderer. Every mesh is drawn with
// the batch shader, sampling texture slot 0.
func (b *Backend) Capabilities() render.Capabilities {
	return render.Capabilities{}
}

// CreateTexture implements render.Backend.
func (b *Backend) CreateTexture(width, height int, format gputypes.TextureFormat) (render.Texture, error) {
	if render.BytesPerPixel(format) == 0 || format == gputypes.TextureFormatDepth24PlusStencil8 {
		return nil, fmt.Errorf("software: unsupported texture format %v", format)
	}
	return newTexture(width, height, format, false), nil
}

// CreateTarget implements render.Backend.
func (b *Backend) CreateTarget(width, height int) (render.Target, error) {
	return newTarget(width, height, false), nil
}

// CreateMesh implements render.Backend.
func (b *Backend) CreateMesh() (render.Mesh, error) {
	return &render.MeshData{}, nil
}

// CreateShader implements render.Backend. The source is kept for
// inspection only.
func (b *Backend) CreateShader(data render.ShaderData) (render.Shader, error) {
	return &render.CompiledShader{Data: data}, nil
}

// BackBuffer implements render.Backend.
func (b *Backend) BackBuffer() render.Target { return b.back }

// Screen returns the back buffer with its concrete type.
func (b *Backend) Screen() *Target { return b.back }

// Clear implements render.Backend. Depth and stencil are ignored.
func (b *Backend) Clear(target render.Target, col sprite.Color, depth float32, stencil uint8) error {
	t, ok := target.(*Target)
	if !ok || t == nil {
		return ErrForeignResource
	}
	pix := t.color.pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = col.R, col.G, col.B, col.A
	}
	return nil
}
