package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/batch"
	"github.com/gogpu/sprite/render"
)

func openNoop(t *testing.T) hal.OpenDevice {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("EnumerateAdapters() returned no adapters")
	}
	od, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return od
}

func newTestBackend(t *testing.T, w, h int) *Backend {
	t.Helper()
	od := openNoop(t)
	b, err := New(od.Device, od.Queue, w, h)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(b.Destroy)
	return b
}

// provider mimics a host application sharing its device.
type provider struct {
	od hal.OpenDevice
}

func (p provider) Device() gpucontext.Device             { return p.od.Device }
func (p provider) Queue() gpucontext.Queue               { return p.od.Queue }
func (p provider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (p provider) Adapter() gpucontext.Adapter           { return nil }
func (p provider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }
func (p provider) HalDevice() any                        { return p.od.Device }
func (p provider) HalQueue() any                         { return p.od.Queue }

// plainProvider does not expose HAL objects.
type plainProvider struct {
	gpucontext.DeviceProvider
}

func TestNew(t *testing.T) {
	b := newTestBackend(t, 64, 32)
	back := b.BackBuffer()
	if back.Width() != 64 || back.Height() != 32 {
		t.Errorf("BackBuffer() size = %dx%d, want 64x32", back.Width(), back.Height())
	}
	if back.Textures() != nil {
		t.Errorf("BackBuffer().Textures() = %v, want nil", back.Textures())
	}
	if b.BackBufferView() == nil {
		t.Error("BackBufferView() = nil")
	}
	if b.Name() != Name {
		t.Errorf("Name() = %q, want %q", b.Name(), Name)
	}
	if caps := render.CapabilitiesOf(b); !caps.IsGPU || !caps.CustomShaders || caps.TextureArrays {
		t.Errorf("CapabilitiesOf() = %+v", caps)
	}

	od := openNoop(t)
	if _, err := New(od.Device, od.Queue, 0, 10); !errors.Is(err, render.ErrInvalidSize) {
		t.Errorf("New(0x10) error = %v, want ErrInvalidSize", err)
	}
	if _, err := New(nil, od.Queue, 10, 10); !errors.Is(err, ErrNoDevice) {
		t.Errorf("New(nil device) error = %v, want ErrNoDevice", err)
	}
}

func TestRegistry(t *testing.T) {
	od := openNoop(t)
	b, err := render.NewBackend(Name, render.BackendOptions{Width: 8, Height: 8, Device: provider{od}})
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.(*Backend).Destroy()

	if _, err := render.NewBackend(Name, render.BackendOptions{Width: 8, Height: 8}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewBackend(no device) error = %v, want ErrNoDevice", err)
	}
	if _, err := NewFromProvider(plainProvider{provider{od}}, 8, 8); !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewFromProvider(plain) error = %v, want ErrNoDevice", err)
	}
}

func TestCreateTexture(t *testing.T) {
	b := newTestBackend(t, 8, 8)

	tex, err := b.CreateTexture(4, 2, gputypes.TextureFormatR8Unorm)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := tex.SetData(make([]byte, 8)); err != nil {
		t.Errorf("SetData(8 bytes) error = %v", err)
	}
	if err := tex.SetData(make([]byte, 9)); !errors.Is(err, render.ErrDataSize) {
		t.Errorf("SetData(9 bytes) error = %v, want ErrDataSize", err)
	}
	if tex.IsFramebuffer() {
		t.Error("IsFramebuffer() = true for a plain texture")
	}

	if _, err := b.CreateTexture(4, 4, gputypes.TextureFormatRGBA16Float); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CreateTexture(RGBA16Float) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := b.CreateTexture(0, 4, gputypes.TextureFormatRGBA8Unorm); !errors.Is(err, render.ErrInvalidSize) {
		t.Errorf("CreateTexture(0x4) error = %v, want ErrInvalidSize", err)
	}

	target, err := b.CreateTarget(16, 16)
	if err != nil {
		t.Fatalf("CreateTarget() error = %v", err)
	}
	attachments := target.Textures()
	if len(attachments) != 1 || !attachments[0].IsFramebuffer() {
		t.Errorf("Textures() = %v, want one framebuffer attachment", attachments)
	}
}

func TestCreateShader(t *testing.T) {
	b := newTestBackend(t, 8, 8)

	s, err := b.CreateShader(render.BatchShaderData())
	if err != nil {
		t.Fatalf("CreateShader(batch) error = %v", err)
	}
	if got := len(s.Uniforms()); got != 3 {
		t.Errorf("Uniforms() = %d entries, want 3", got)
	}
	s.(*Shader).Destroy()

	if _, err := b.CreateShader(render.ShaderData{}); !errors.Is(err, render.ErrInvalidShader) {
		t.Errorf("CreateShader(empty) error = %v, want ErrInvalidShader", err)
	}

	arrays := render.BatchShaderData()
	arrays.Uniforms[1].ArrayLength = 4
	if _, err := b.CreateShader(arrays); !errors.Is(err, render.ErrInvalidShader) {
		t.Errorf("CreateShader(texture array) error = %v, want ErrInvalidShader", err)
	}
}

func TestRenderBatch(t *testing.T) {
	b := newTestBackend(t, 64, 64)
	ctx := render.NewContext(b, true)
	if err := ctx.Clear(nil, sprite.Color{A: 255}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	tex, err := render.NewTexture(ctx, 2, 2, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}

	bt := batch.New()
	bt.Rect(sprite.R(0, 0, 10, 10), sprite.Color{R: 255, A: 255})
	bt.PushScissor(sprite.R(8, 8, 16, 16))
	bt.Tex(tex, sprite.V2(4, 4), sprite.Color{R: 255, G: 255, B: 255, A: 255})
	bt.PopScissor()
	bt.Circle(sprite.V2(32, 32), 8, 16, sprite.Color{B: 255, A: 255})

	for frame := range 3 {
		if err := bt.RenderDefault(ctx, nil); err != nil {
			t.Fatalf("frame %d: RenderDefault() error = %v", frame, err)
		}
	}
	if got := len(b.pipelines); got != 1 {
		t.Errorf("pipelines = %d, want 1 shared by every draw", got)
	}
	if got := len(b.samplers); got != 1 {
		t.Errorf("samplers = %d, want 1", got)
	}

	// The noop queue completes every submission at once, so the next
	// call releases everything retired so far.
	if err := ctx.Clear(nil, sprite.Color{}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := len(b.retired); got != 0 {
		t.Errorf("retired = %d after completion, want 0", got)
	}
}

func TestRenderForeignResources(t *testing.T) {
	b := newTestBackend(t, 8, 8)
	shader, err := b.CreateShader(render.BatchShaderData())
	if err != nil {
		t.Fatalf("CreateShader() error = %v", err)
	}
	mesh, err := b.CreateMesh()
	if err != nil {
		t.Fatalf("CreateMesh() error = %v", err)
	}
	mat := render.NewMaterial(shader)

	tests := []struct {
		name string
		call render.DrawCall
	}{
		{"cpu mesh", render.DrawCall{Target: b.BackBuffer(), Mesh: &render.MeshData{}, Material: mat}},
		{"cpu shader", render.DrawCall{Target: b.BackBuffer(), Mesh: mesh,
			Material: render.NewMaterial(&render.CompiledShader{Data: render.BatchShaderData()})}},
		{"nil target", render.DrawCall{Mesh: mesh, Material: mat}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Render(&tt.call); !errors.Is(err, ErrForeignResource) {
				t.Errorf("Render() error = %v, want ErrForeignResource", err)
			}
		})
	}
}

func TestMeshUpload(t *testing.T) {
	b := newTestBackend(t, 8, 8)
	m, err := b.CreateMesh()
	if err != nil {
		t.Fatalf("CreateMesh() error = %v", err)
	}
	mesh := m.(*Mesh)
	defer mesh.Destroy()

	if err := mesh.VertexData(render.BatchVertexLayout(), make([]byte, 4*render.BatchVertexSize), 4); err != nil {
		t.Fatalf("VertexData() error = %v", err)
	}
	if err := mesh.IndexData([]uint32{0, 1, 2}); err != nil {
		t.Fatalf("IndexData() error = %v", err)
	}
	if err := mesh.upload(); err != nil {
		t.Fatalf("upload() error = %v", err)
	}
	if mesh.vertexCap != 2*4*render.BatchVertexSize {
		t.Errorf("vertexCap = %d, want %d", mesh.vertexCap, 2*4*render.BatchVertexSize)
	}
	if mesh.indexCap != 24 {
		t.Errorf("indexCap = %d, want 24", mesh.indexCap)
	}
	first := mesh.vertices

	// Smaller data reuses the buffer.
	if err := mesh.VertexData(render.BatchVertexLayout(), make([]byte, 2*render.BatchVertexSize), 2); err != nil {
		t.Fatalf("VertexData() error = %v", err)
	}
	if err := mesh.upload(); err != nil {
		t.Fatalf("upload() error = %v", err)
	}
	if mesh.vertices != first {
		t.Error("upload() reallocated a buffer that was large enough")
	}
	if mesh.dirty {
		t.Error("dirty = true after upload")
	}
}

func TestPixelRect(t *testing.T) {
	tests := []struct {
		r          sprite.Rect
		x, y, w, h uint32
	}{
		{sprite.R(0, 0, 10, 20), 0, 0, 10, 20},
		{sprite.R(1.5, 2.25, 3, 3), 1, 2, 4, 4},
		{sprite.R(4, 4, 0, 0), 4, 4, 0, 0},
	}
	for _, tt := range tests {
		x, y, w, h := pixelRect(tt.r)
		if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
			t.Errorf("pixelRect(%v) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
				tt.r, x, y, w, h, tt.x, tt.y, tt.w, tt.h)
		}
	}
}

func TestUniformSize(t *testing.T) {
	tests := []struct {
		u    render.UniformInfo
		want uint64
	}{
		{render.UniformInfo{Type: render.UniformFloat}, 16},
		{render.UniformInfo{Type: render.UniformFloat3}, 16},
		{render.UniformInfo{Type: render.UniformMat3x2}, 32},
		{render.UniformInfo{Type: render.UniformMat4x4}, 64},
		{render.UniformInfo{Type: render.UniformFloat4, ArrayLength: 3}, 48},
	}
	for _, tt := range tests {
		if got := uniformSize(tt.u); got != tt.want {
			t.Errorf("uniformSize(%v) = %d, want %d", tt.u.Type, got, tt.want)
		}
	}
}
