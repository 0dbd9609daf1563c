package wgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sprite/render"
)

// Texture is a HAL texture with one view.
type Texture struct {
	backend       *Backend
	width, height int
	format        gputypes.TextureFormat
	framebuffer   bool

	texture hal.Texture
	view    hal.TextureView
}

func (b *Backend) newTexture(width, height int, format gputypes.TextureFormat, framebuffer bool) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", render.ErrInvalidSize, width, height)
	}
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if framebuffer {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "sprite_texture",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "sprite_texture_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}
	return &Texture{
		backend:     b,
		width:       width,
		height:      height,
		format:      format,
		framebuffer: framebuffer,
		texture:     tex,
		view:        view,
	}, nil
}

// Width implements render.Texture.
func (t *Texture) Width() int { return t.width }

// Height implements render.Texture.
func (t *Texture) Height() int { return t.height }

// Format implements render.Texture.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// IsFramebuffer implements render.Texture.
func (t *Texture) IsFramebuffer() bool { return t.framebuffer }

// View returns the texture view.
func (t *Texture) View() hal.TextureView { return t.view }

// SetData implements render.Texture.
func (t *Texture) SetData(data []byte) error {
	bpp := render.BytesPerPixel(t.format)
	if want := t.width * t.height * bpp; len(data) != want {
		return fmt.Errorf("%w: texture holds %d bytes, got %d", render.ErrDataSize, want, len(data))
	}
	err := t.backend.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.texture, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{BytesPerRow: uint32(t.width * bpp), RowsPerImage: uint32(t.height)},
		&hal.Extent3D{Width: uint32(t.width), Height: uint32(t.height), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture: %w", err)
	}
	return nil
}

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t.view != nil {
		t.backend.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.backend.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// Target renders into one RGBA8 color texture.
type Target struct {
	back  bool
	color *Texture
}

func (b *Backend) newTarget(width, height int, back bool) (*Target, error) {
	color, err := b.newTexture(width, height, gputypes.TextureFormatRGBA8Unorm, true)
	if err != nil {
		return nil, err
	}
	return &Target{back: back, color: color}, nil
}

// Width implements render.Target.
func (t *Target) Width() int { return t.color.width }

// Height implements render.Target.
func (t *Target) Height() int { return t.color.height }

// Textures implements render.Target. The back buffer returns nil.
func (t *Target) Textures() []render.Texture {
	if t.back {
		return nil
	}
	return []render.Texture{t.color}
}

// Destroy releases the color texture.
func (t *Target) Destroy() { t.color.Destroy() }

// Mesh stages geometry on the CPU and uploads it to HAL buffers before
// the next draw.
type Mesh struct {
	render.MeshData

	backend *Backend
	dirty   bool

	vertices  hal.Buffer
	indices   hal.Buffer
	instances hal.Buffer

	vertexCap, indexCap, instanceCap uint64
}

// IndexData implements render.Mesh.
func (m *Mesh) IndexData(indices []uint32) error {
	m.dirty = true
	return m.MeshData.IndexData(indices)
}

// VertexData implements render.Mesh.
func (m *Mesh) VertexData(layout gputypes.VertexBufferLayout, data []byte, count int) error {
	m.dirty = true
	return m.MeshData.VertexData(layout, data, count)
}

// InstanceData implements render.Mesh.
func (m *Mesh) InstanceData(layout gputypes.VertexBufferLayout, data []byte, count int) error {
	m.dirty = true
	return m.MeshData.InstanceData(layout, data, count)
}

// upload writes staged data, growing buffers as needed.
func (m *Mesh) upload() error {
	if !m.dirty {
		return nil
	}
	idx := make([]byte, 4*len(m.Indices))
	for i, v := range m.Indices {
		binary.LittleEndian.PutUint32(idx[4*i:], v)
	}
	var err error
	if m.vertices, m.vertexCap, err = m.write("sprite_vertices", m.vertices, m.vertexCap, m.VertexBytes, gputypes.BufferUsageVertex); err != nil {
		return err
	}
	if m.indices, m.indexCap, err = m.write("sprite_indices", m.indices, m.indexCap, idx, gputypes.BufferUsageIndex); err != nil {
		return err
	}
	if m.instances, m.instanceCap, err = m.write("sprite_instances", m.instances, m.instanceCap, m.InstanceBytes, gputypes.BufferUsageVertex); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func (m *Mesh) write(label string, buf hal.Buffer, capacity uint64, data []byte, usage gputypes.BufferUsage) (hal.Buffer, uint64, error) {
	if len(data) == 0 {
		return buf, capacity, nil
	}
	dev := m.backend.device
	if buf == nil || uint64(len(data)) > capacity {
		if buf != nil {
			dev.DestroyBuffer(buf)
		}
		capacity = alignBuffer(uint64(len(data)) * 2)
		var err error
		buf, err = dev.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  capacity,
			Usage: usage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("wgpu: create %s: %w", label, err)
		}
	}
	if err := m.backend.queue.WriteBuffer(buf, 0, padBuffer(data)); err != nil {
		return buf, capacity, fmt.Errorf("wgpu: write %s: %w", label, err)
	}
	return buf, capacity, nil
}

// Destroy releases the mesh buffers.
func (m *Mesh) Destroy() {
	for _, buf := range []hal.Buffer{m.vertices, m.indices, m.instances} {
		if buf != nil {
			m.backend.device.DestroyBuffer(buf)
		}
	}
	m.vertices, m.indices, m.instances = nil, nil, nil
	m.vertexCap, m.indexCap, m.instanceCap = 0, 0, 0
}

// alignBuffer rounds n up to the 4-byte copy alignment.
func alignBuffer(n uint64) uint64 {
	return (n + 3) &^ 3
}

func padBuffer(data []byte) []byte {
	if n := alignBuffer(uint64(len(data))); n != uint64(len(data)) {
		out := make([]byte, n)
		copy(out, data)
		return out
	}
	return data
}
