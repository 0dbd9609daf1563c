package recording

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

func init() {
	render.Register("recording", func(opts render.BackendOptions) (render.Backend, error) {
		if opts.Width <= 0 || opts.Height <= 0 {
			return nil, fmt.Errorf("%w: back buffer %dx%d", render.ErrInvalidSize, opts.Width, opts.Height)
		}
		return NewHeadless(opts.Width, opts.Height), nil
	})
}

// Recorder is a render.Backend that records every call made to it.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	inner     render.Backend
	back      render.Target
	commands  []Command
	resources *ResourcePool
}

var _ render.Backend = (*Recorder)(nil)

// New returns a Recorder forwarding to inner.
func New(inner render.Backend) *Recorder {
	return &Recorder{
		inner:     inner,
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
	}
}

// NewHeadless returns a Recorder with in-memory resources and a back
// buffer of the given size.
func NewHeadless(width, height int) *Recorder {
	r := New(nil)
	r.back = &memTarget{width: width, height: height}
	return r
}

// Inner returns the wrapped backend, or nil when headless.
func (r *Recorder) Inner() render.Backend { return r.inner }

// CreateTexture implements render.Backend.
func (r *Recorder) CreateTexture(width, height int, format gputypes.TextureFormat) (render.Texture, error) {
	var tex render.Texture
	if r.inner != nil {
		t, err := r.inner.CreateTexture(width, height, format)
		if err != nil {
			return nil, err
		}
		tex = t
	} else {
		tex = &memTexture{width: width, height: height, format: format}
	}
	r.commands = append(r.commands, CreateTextureCmd{Width: width, Height: height, Format: format, Texture: tex})
	return tex, nil
}

// CreateTarget implements render.Backend.
func (r *Recorder) CreateTarget(width, height int) (render.Target, error) {
	var target render.Target
	if r.inner != nil {
		t, err := r.inner.CreateTarget(width, height)
		if err != nil {
			return nil, err
		}
		target = t
	} else {
		target = newMemTarget(width, height)
	}
	r.commands = append(r.commands, CreateTargetCmd{Width: width, Height: height, Target: target})
	return target, nil
}

// CreateMesh implements render.Backend.
func (r *Recorder) CreateMesh() (render.Mesh, error) {
	var mesh render.Mesh
	if r.inner != nil {
		m, err := r.inner.CreateMesh()
		if err != nil {
			return nil, err
		}
		mesh = m
	} else {
		mesh = &render.MeshData{}
	}
	r.commands = append(r.commands, CreateMeshCmd{Mesh: mesh})
	return mesh, nil
}

// CreateShader implements render.Backend.
func (r *Recorder) CreateShader(data render.ShaderData) (render.Shader, error) {
	var shader render.Shader
	if r.inner != nil {
		s, err := r.inner.CreateShader(data)
		if err != nil {
			return nil, err
		}
		shader = s
	} else {
		shader = &render.CompiledShader{Data: data}
	}
	r.commands = append(r.commands, CreateShaderCmd{Label: data.Label, Shader: shader})
	return shader, nil
}

// BackBuffer implements render.Backend.
func (r *Recorder) BackBuffer() render.Target {
	if r.inner != nil {
		return r.inner.BackBuffer()
	}
	return r.back
}

// Render implements render.Backend. The call is recorded even when the
// wrapped backend fails.
func (r *Recorder) Render(call *render.DrawCall) error {
	r.commands = append(r.commands, RenderCmd{
		Call:     *call,
		Material: r.resources.AddMaterial(call.Material),
	})
	if r.inner != nil {
		return r.inner.Render(call)
	}
	return nil
}

// Clear implements render.Backend.
func (r *Recorder) Clear(target render.Target, col sprite.Color, depth float32, stencil uint8) error {
	r.commands = append(r.commands, ClearCmd{Target: target, Color: col, Depth: depth, Stencil: stencil})
	if r.inner != nil {
		return r.inner.Clear(target, col, depth, stencil)
	}
	return nil
}

// Commands returns the commands recorded so far. The slice is owned by
// the Recorder.
func (r *Recorder) Commands() []Command { return r.commands }

// DrawCalls returns the recorded draw calls in order.
func (r *Recorder) DrawCalls() []RenderCmd { return drawCalls(r.commands) }

// Material returns the material snapshot for ref.
func (r *Recorder) Material(ref MaterialRef) *render.Material {
	return r.resources.GetMaterial(ref)
}

// Reset drops every recorded command and snapshot.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.resources.Clear()
}

// Finish returns the commands recorded since the last Reset or Finish as
// an immutable Recording and resets the Recorder.
func (r *Recorder) Finish() *Recording {
	rec := &Recording{
		commands:  make([]Command, len(r.commands)),
		resources: r.resources.Clone(),
	}
	copy(rec.commands, r.commands)
	r.Reset()
	return rec
}

// Recording is an immutable sequence of recorded commands.
type Recording struct {
	commands  []Command
	resources *ResourcePool
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the pool holding material snapshots.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// DrawCalls returns the recorded draw calls in order.
func (r *Recording) DrawCalls() []RenderCmd { return drawCalls(r.commands) }

// Material returns the material snapshot for ref.
func (r *Recording) Material(ref MaterialRef) *render.Material {
	return r.resources.GetMaterial(ref)
}

// Count returns the number of commands of type t.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

func drawCalls(commands []Command) []RenderCmd {
	var out []RenderCmd
	for _, c := range commands {
		if rc, ok := c.(RenderCmd); ok {
			out = append(out, rc)
		}
	}
	return out
}
