package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// Name is the registry name of the backend.
const Name = "wgpu"

var (
	// ErrNoDevice is returned when no HAL device is available.
	ErrNoDevice = errors.New("wgpu: no device")

	// ErrForeignResource is returned when a draw call refers to a resource
	// created by another backend.
	ErrForeignResource = errors.New("wgpu: resource not created by this backend")

	// ErrUnsupportedFormat is returned for texture formats the engine
	// cannot upload.
	ErrUnsupportedFormat = errors.New("wgpu: unsupported texture format")
)

func init() {
	render.Register(Name, func(opts render.BackendOptions) (render.Backend, error) {
		if opts.Device == nil {
			return nil, ErrNoDevice
		}
		return NewFromProvider(opts.Device, opts.Width, opts.Height)
	})
}

// halProvider is implemented by device providers that expose their HAL
// device and queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Backend renders through a HAL device.
//
// A Backend is not safe for concurrent use by multiple goroutines.
type Backend struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	back      *Target
	white     *Texture
	samplers  map[render.TextureSampler]hal.Sampler
	pipelines map[pipelineKey]hal.RenderPipeline

	// retired holds per-draw resources waiting for their submission.
	retired []retired
}

type retired struct {
	submission uint64
	buffers    []hal.Buffer
	group      hal.BindGroup
}

var _ render.CapableRenderer = (*Backend)(nil)

// New returns a Backend drawing with device and queue. The back buffer is
// width x height.
func New(device hal.Device, queue hal.Queue, width, height int) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: back buffer %dx%d", render.ErrInvalidSize, width, height)
	}
	b := &Backend{
		device:    device,
		queue:     queue,
		samplers:  make(map[render.TextureSampler]hal.Sampler),
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
	}

	back, err := b.newTarget(width, height, true)
	if err != nil {
		return nil, err
	}
	b.back = back

	white, err := b.newTexture(1, 1, gputypes.TextureFormatRGBA8Unorm, false)
	if err != nil {
		b.Destroy()
		return nil, err
	}
	if err := white.SetData([]byte{255, 255, 255, 255}); err != nil {
		b.Destroy()
		return nil, err
	}
	b.white = white

	sprite.Logger().Debug("wgpu: backend ready", "width", width, "height", height)
	return b, nil
}

// NewFromProvider returns a Backend using the device shared by a host
// application. provider must expose HalDevice() and HalQueue().
func NewFromProvider(provider render.DeviceHandle, width, height int) (*Backend, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoDevice)
	}
	return New(device, queue, width, height)
}

// Name implements render.Renderer.
func (b *Backend) Name() string { return Name }

// Capabilities implements render.CapableRenderer. Texture and sampler
// uniforms are limited to one element each.
func (b *Backend) Capabilities() render.Capabilities {
	return render.Capabilities{
		IsGPU:          true,
		CustomShaders:  true,
		MaxTextureSize: int(gputypes.DefaultLimits().MaxTextureDimension2D),
	}
}

// Device returns the HAL device.
func (b *Backend) Device() hal.Device { return b.device }

// BackBuffer implements render.Backend.
func (b *Backend) BackBuffer() render.Target { return b.back }

// BackBufferView returns the view of the back buffer color texture.
func (b *Backend) BackBufferView() hal.TextureView { return b.back.color.view }

// CreateTexture implements render.Backend.
func (b *Backend) CreateTexture(width, height int, format gputypes.TextureFormat) (render.Texture, error) {
	if render.BytesPerPixel(format) == 0 || format == gputypes.TextureFormatDepth24PlusStencil8 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return b.newTexture(width, height, format, false)
}

// CreateTarget implements render.Backend.
func (b *Backend) CreateTarget(width, height int) (render.Target, error) {
	return b.newTarget(width, height, false)
}

// CreateMesh implements render.Backend.
func (b *Backend) CreateMesh() (render.Mesh, error) {
	return &Mesh{backend: b}, nil
}

// Destroy waits for the device to go idle and releases every resource
// the backend owns. Textures, meshes and shaders handed out earlier must
// be destroyed by their owners first.
func (b *Backend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.device.WaitIdle(); err != nil {
		sprite.Logger().Warn("wgpu: wait idle", "err", err)
	}
	for _, r := range b.retired {
		b.release(r)
	}
	b.retired = nil
	for k, p := range b.pipelines {
		b.device.DestroyRenderPipeline(p)
		delete(b.pipelines, k)
	}
	for k, s := range b.samplers {
		b.device.DestroySampler(s)
		delete(b.samplers, k)
	}
	if b.white != nil {
		b.white.Destroy()
		b.white = nil
	}
	if b.back != nil {
		b.back.Destroy()
		b.back = nil
	}
}

// collect releases retired resources whose submission has completed.
// The caller must hold b.mu.
func (b *Backend) collect() {
	done := b.queue.PollCompleted()
	kept := b.retired[:0]
	for _, r := range b.retired {
		if r.submission <= done {
			b.release(r)
			continue
		}
		kept = append(kept, r)
	}
	b.retired = kept
}

func (b *Backend) release(r retired) {
	if r.group != nil {
		b.device.DestroyBindGroup(r.group)
	}
	for _, buf := range r.buffers {
		b.device.DestroyBuffer(buf)
	}
}

// sampler returns the cached HAL sampler for s.
func (b *Backend) sampler(s render.TextureSampler) (hal.Sampler, error) {
	s = s.Normalized()
	if smp, ok := b.samplers[s]; ok {
		return smp, nil
	}
	smp, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "sprite_sampler",
		AddressModeU: s.WrapX,
		AddressModeV: s.WrapY,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    s.Filter,
		MinFilter:    s.Filter,
		MipmapFilter: gputypes.FilterModeNearest,
		Anisotropy:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	b.samplers[s] = smp
	return smp, nil
}
