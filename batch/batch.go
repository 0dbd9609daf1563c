package batch

import (
	"fmt"
	"sort"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// DrawBatch is a contiguous run of triangles in the shared index buffer
// drawn with one material, texture, sampler and scissor.
type DrawBatch struct {
	// Layer orders batches; lower layers are painted first.
	Layer int

	// Offset and Elements are measured in triangles.
	Offset   int
	Elements int

	// Material is nil for the Batch's default material.
	Material *render.Material
	Texture  render.Texture
	Sampler  render.TextureSampler

	// Scissor is sprite.NoScissor when unclipped.
	Scissor sprite.Rect

	// FlipVertically is set when Texture is a framebuffer and the Batch
	// flips framebuffers.
	FlipVertically bool
}

// IndexStart returns the first index of the batch.
func (d DrawBatch) IndexStart() int { return d.Offset * 3 }

// IndexCount returns the number of indices in the batch.
func (d DrawBatch) IndexCount() int { return d.Elements * 3 }

type batchKey struct {
	layer    int
	material *render.Material
	texture  render.Texture
	sampler  render.TextureSampler
	scissor  sprite.Rect
	flip     bool
}

func (d DrawBatch) key() batchKey {
	return batchKey{
		layer:    d.Layer,
		material: d.Material,
		texture:  d.Texture,
		sampler:  d.Sampler,
		scissor:  d.Scissor,
		flip:     d.FlipVertically,
	}
}

func (d *DrawBatch) setKey(k batchKey) {
	d.Layer = k.layer
	d.Material = k.material
	d.Texture = k.texture
	d.Sampler = k.sampler
	d.Scissor = k.scissor
	d.FlipVertically = k.flip
}

// Batch accumulates primitives into sorted, merged DrawBatches.
type Batch struct {
	opts options

	vertices []Vertex
	indices  []uint32
	batches  []DrawBatch

	// current is the open batch; it always ends at the end of indices.
	current DrawBatch

	// insert is where the last closed batch went in batches.
	insert int

	state    batchKey
	matrix   sprite.Mat3x2
	texMult  uint8
	texWash  uint8
	matrices stack[sprite.Mat3x2]
	scissors stack[sprite.Rect]
	material stack[*render.Material]
	layers   stack[int]

	mesh            render.Mesh
	defaultMaterial *render.Material
	vertexBytes     []byte
}

// New returns an empty Batch.
func New(opts ...Option) *Batch {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Batch{
		opts:     o,
		matrices: newStack[sprite.Mat3x2](),
		scissors: newStack[sprite.Rect](),
		material: newStack[*render.Material](),
		layers:   newStack[int](),
	}
	b.reset()
	return b
}

func (b *Batch) reset() {
	b.matrix = sprite.Identity()
	b.texMult, b.texWash = 255, 0
	b.state = batchKey{
		sampler: b.opts.sampler,
		scissor: sprite.NoScissor,
	}
	b.matrices.clear()
	b.scissors.clear()
	b.material.clear()
	b.layers.clear()
	b.current = DrawBatch{}
	b.current.setKey(b.state)
	b.insert = 0
}

// Clear drops all geometry, batches and state. The GPU mesh is kept for
// the next frame.
func (b *Batch) Clear() {
	if n := b.matrices.len() + b.scissors.len() + b.material.len() + b.layers.len(); n > 0 {
		sprite.DevWarn(b.opts.dev, "batch: clear with unbalanced stacks",
			"matrix", b.matrices.len(), "scissor", b.scissors.len(),
			"material", b.material.len(), "layer", b.layers.len())
	}
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.batches = b.batches[:0]
	b.reset()
}

func (b *Batch) popFailed(which string) error {
	sprite.DevWarn(b.opts.dev, "batch: pop on empty stack", "stack", which)
	return fmt.Errorf("%w: %s", ErrStackEmpty, which)
}

// PushMatrix makes m the current transform and returns the previous one.
// Unless absolute, m is applied before the current transform.
func (b *Batch) PushMatrix(m sprite.Mat3x2, absolute bool) sprite.Mat3x2 {
	prev := b.matrix
	b.matrices.push(prev)
	if absolute {
		b.matrix = m
	} else {
		b.matrix = prev.Multiply(m)
	}
	return prev
}

// PopMatrix restores the transform saved by the matching PushMatrix and
// returns the one that was current.
func (b *Batch) PopMatrix() (sprite.Mat3x2, error) {
	prev, ok := b.matrices.pop()
	if !ok {
		return b.matrix, b.popFailed("matrix")
	}
	was := b.matrix
	b.matrix = prev
	return was, nil
}

// PeekMatrix returns the current transform.
func (b *Batch) PeekMatrix() sprite.Mat3x2 { return b.matrix }

// PushScissor narrows the scissor to its intersection with r and returns
// the result. The first push sets r as-is.
func (b *Batch) PushScissor(r sprite.Rect) sprite.Rect {
	prev := b.state.scissor
	b.scissors.push(prev)
	if prev.IsSet() {
		r = prev.Intersect(r)
	}
	b.state.scissor = r
	return r
}

// PopScissor restores the previous scissor and returns the one that was
// current.
func (b *Batch) PopScissor() (sprite.Rect, error) {
	prev, ok := b.scissors.pop()
	if !ok {
		return b.state.scissor, b.popFailed("scissor")
	}
	was := b.state.scissor
	b.state.scissor = prev
	return was, nil
}

// PeekScissor returns the current scissor, or sprite.NoScissor.
func (b *Batch) PeekScissor() sprite.Rect { return b.state.scissor }

// PushMaterial makes m the material for following primitives. A nil m
// selects the default material.
func (b *Batch) PushMaterial(m *render.Material) {
	b.material.push(b.state.material)
	b.state.material = m
}

// PopMaterial restores the previous material and returns the one that was
// current.
func (b *Batch) PopMaterial() (*render.Material, error) {
	prev, ok := b.material.pop()
	if !ok {
		return b.state.material, b.popFailed("material")
	}
	was := b.state.material
	b.state.material = prev
	return was, nil
}

// PeekMaterial returns the current material; nil is the default.
func (b *Batch) PeekMaterial() *render.Material { return b.state.material }

// PushLayer sets the layer of following primitives and returns the
// previous layer.
func (b *Batch) PushLayer(layer int) int {
	prev := b.state.layer
	b.layers.push(prev)
	b.state.layer = layer
	return prev
}

// PopLayer restores the previous layer and returns the one that was
// current.
func (b *Batch) PopLayer() (int, error) {
	prev, ok := b.layers.pop()
	if !ok {
		return b.state.layer, b.popFailed("layer")
	}
	was := b.state.layer
	b.state.layer = prev
	return was, nil
}

// PeekLayer returns the current layer.
func (b *Batch) PeekLayer() int { return b.state.layer }

// SetTexture sets the texture for following primitives. Shapes keep
// whatever texture is current and ignore it.
func (b *Batch) SetTexture(tex render.Texture) {
	b.state.texture = tex
	b.state.flip = b.opts.flipFramebuffers && tex != nil && tex.IsFramebuffer()
}

// SetSampler sets the sampler for following primitives.
func (b *Batch) SetSampler(s render.TextureSampler) {
	b.state.sampler = s
}

// SetTextureWeights sets the multiply and wash weights written for
// textured vertices. (255, 0) draws the texture tinted by the color;
// (0, 255) draws the color through the texture's alpha.
func (b *Batch) SetTextureWeights(mult, wash uint8) {
	b.texMult, b.texWash = mult, wash
}

// VertexCount returns the number of vertices emitted since Clear.
func (b *Batch) VertexCount() int { return len(b.vertices) }

// IndexCount returns the number of indices emitted since Clear.
func (b *Batch) IndexCount() int { return len(b.indices) }

// Triangles returns the number of triangles emitted since Clear.
func (b *Batch) Triangles() int { return len(b.indices) / 3 }

// Vertices returns the emitted vertices. The slice is reused after Clear.
func (b *Batch) Vertices() []Vertex { return b.vertices }

// Indices returns the emitted indices. The slice is reused after Clear.
func (b *Batch) Indices() []uint32 { return b.indices }

// Batches returns the merged batches in paint order.
func (b *Batch) Batches() []DrawBatch {
	b.flush()
	out := make([]DrawBatch, len(b.batches))
	copy(out, b.batches)
	return out
}

// prepare makes the open batch match the current state, closing it first
// if it already holds triangles under another key.
func (b *Batch) prepare() {
	if b.current.Elements > 0 && b.current.key() != b.state {
		b.flush()
	}
	if b.current.Elements == 0 {
		b.current.setKey(b.state)
		b.current.Offset = len(b.indices) / 3
	}
}

// flush closes the open batch into the sorted list, after the last batch
// with a layer less than or equal to its own, merging with that batch
// when the key matches and the triangles are contiguous.
func (b *Batch) flush() {
	cur := b.current
	b.current = DrawBatch{Offset: len(b.indices) / 3}
	b.current.setKey(b.state)
	if cur.Elements == 0 {
		return
	}

	i := b.insert
	if !b.fits(i, cur.Layer) {
		i = sort.Search(len(b.batches), func(i int) bool {
			return b.batches[i].Layer > cur.Layer
		})
	}
	if i > 0 {
		prev := &b.batches[i-1]
		if prev.key() == cur.key() && prev.Offset+prev.Elements == cur.Offset {
			prev.Elements += cur.Elements
			b.insert = i
			return
		}
	}
	b.batches = append(b.batches, DrawBatch{})
	copy(b.batches[i+1:], b.batches[i:])
	b.batches[i] = cur
	b.insert = i + 1
}

// fits reports whether a batch on layer belongs at index i of the sorted
// list. Consecutive flushes on one layer usually land where the last one did.
func (b *Batch) fits(i, layer int) bool {
	if i < 0 || i > len(b.batches) {
		return false
	}
	if i > 0 && b.batches[i-1].Layer > layer {
		return false
	}
	return i == len(b.batches) || b.batches[i].Layer > layer
}

func (b *Batch) vertex(pos, tex sprite.Vec2, col sprite.Color, mult, wash, fill uint8) Vertex {
	return Vertex{
		Pos:   b.matrix.Apply(pos),
		Tex:   tex,
		Color: col,
		Mult:  mult,
		Wash:  wash,
		Fill:  fill,
	}
}

// pushTriangle appends one solid triangle.
func (b *Batch) pushTriangle(p0, p1, p2 sprite.Vec2, c0, c1, c2 sprite.Color) {
	b.prepare()
	base := uint32(len(b.vertices))
	b.vertices = append(b.vertices,
		b.vertex(p0, sprite.Vec2{}, c0, 0, 0, 255),
		b.vertex(p1, sprite.Vec2{}, c1, 0, 0, 255),
		b.vertex(p2, sprite.Vec2{}, c2, 0, 0, 255),
	)
	b.indices = append(b.indices, base, base+1, base+2)
	b.current.Elements++
}

// pushQuad appends a solid quad as triangles (0,1,2) and (0,2,3).
func (b *Batch) pushQuad(p0, p1, p2, p3 sprite.Vec2, c0, c1, c2, c3 sprite.Color) {
	b.prepare()
	base := uint32(len(b.vertices))
	b.vertices = append(b.vertices,
		b.vertex(p0, sprite.Vec2{}, c0, 0, 0, 255),
		b.vertex(p1, sprite.Vec2{}, c1, 0, 0, 255),
		b.vertex(p2, sprite.Vec2{}, c2, 0, 0, 255),
		b.vertex(p3, sprite.Vec2{}, c3, 0, 0, 255),
	)
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	b.current.Elements += 2
}

// pushTexQuad appends a textured quad using the texture weights.
func (b *Batch) pushTexQuad(pos, tex [4]sprite.Vec2, col sprite.Color) {
	b.prepare()
	base := uint32(len(b.vertices))
	for i := range pos {
		v := b.vertex(pos[i], tex[i], col, b.texMult, b.texWash, 0)
		if b.opts.integerize {
			v.Pos = v.Pos.Round()
		}
		if b.current.FlipVertically {
			v.Tex.Y = 1 - v.Tex.Y
		}
		b.vertices = append(b.vertices, v)
	}
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	b.current.Elements += 2
}
