package software

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/internal/parallel"
	"github.com/gogpu/sprite/render"
)

// shaded is a vertex after projection, in target pixels.
type shaded struct {
	x, y    float32
	u, v    float32
	color   [4]float32
	weights [3]float32
}

// Render implements render.Backend.
func (b *Backend) Render(call *render.DrawCall) error {
	t, ok := call.Target.(*Target)
	if !ok || t == nil {
		return ErrForeignResource
	}
	mesh, ok := call.Mesh.(*render.MeshData)
	if !ok {
		return ErrForeignResource
	}

	mat := call.Material
	proj := sprite.Identity4()
	if vals := mat.Value(render.UniformMatrix); len(vals) == 16 {
		for c := range 4 {
			copy(proj.Cols[c][:], vals[c*4:c*4+4])
		}
	}
	var tex *Texture
	if tt, ok := mat.TextureAt(0).(*Texture); ok {
		tex = tt
	}
	smp := newSampler(tex, mat.SamplerAt(0).Normalized())

	vp := call.Viewport
	if !call.HasViewport {
		vp = render.Bounds(t)
	}
	clip := vp.Intersect(render.Bounds(t))
	if call.HasScissor {
		clip = clip.Intersect(call.Scissor)
	}
	if clip.Empty() {
		return nil
	}

	stride := int(mesh.VertexLayout.ArrayStride)
	if stride == 0 {
		stride = render.BatchVertexSize
	}
	vertex := func(i uint32) (shaded, bool) {
		off := int(i) * stride
		if int(i) >= mesh.Vertices || off+render.BatchVertexSize > len(mesh.VertexBytes) {
			return shaded{}, false
		}
		return decodeVertex(mesh.VertexBytes[off:], proj, vp), true
	}

	end := min(call.IndexStart+call.IndexCount, len(mesh.Indices))
	tris := make([][3]shaded, 0, max(end-call.IndexStart, 0)/3)
	for i := call.IndexStart; i+2 < end; i += 3 {
		v0, ok0 := vertex(mesh.Indices[i])
		v1, ok1 := vertex(mesh.Indices[i+1])
		v2, ok2 := vertex(mesh.Indices[i+2])
		if ok0 && ok1 && ok2 {
			tris = append(tris, [3]shaded{v0, v1, v2})
		}
	}

	// Bands own disjoint rows, so each band can draw every triangle in
	// submission order without coordinating with the others.
	bands := bandsOf(clip, len(tris))
	parallel.Shared().ForEach(len(bands), func(i int) {
		for _, tri := range tris {
			t.fillTriangle(bands[i], tri[0], tri[1], tri[2], smp)
		}
	})
	return nil
}

// Draw calls below this many triangles, or narrower than two bands, are
// rasterised on the calling goroutine.
const (
	bandHeight  = 32
	minParallel = 64
)

// bandsOf splits clip into horizontal strips of at most bandHeight rows.
func bandsOf(clip sprite.Rect, triangles int) []sprite.Rect {
	if triangles < minParallel || clip.H <= bandHeight {
		return []sprite.Rect{clip}
	}
	// Inner band edges sit on whole rows so no row is shaded twice.
	var bands []sprite.Rect
	top := clip.Top()
	for top < clip.Bottom() {
		bottom := min(float32(math.Floor(float64(top)))+bandHeight, clip.Bottom())
		bands = append(bands, sprite.R(clip.X, top, clip.W, bottom-top))
		top = bottom
	}
	return bands
}

func decodeVertex(p []byte, proj sprite.Mat4x4, vp sprite.Rect) shaded {
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(p[off:]))
	}
	ndc := proj.Project(sprite.V2(f(0), f(4)))
	return shaded{
		x:       vp.X + (ndc.X+1)/2*vp.W,
		y:       vp.Y + (1-ndc.Y)/2*vp.H,
		u:       f(8),
		v:       f(12),
		color:   [4]float32{unorm(p[16]), unorm(p[17]), unorm(p[18]), unorm(p[19])},
		weights: [3]float32{unorm(p[20]), unorm(p[21]), unorm(p[22])},
	}
}

// fillTriangle shades every pixel whose center lies inside the triangle,
// for either winding. Centers exactly on an edge follow the top-left rule,
// so triangles sharing an edge never both cover a pixel.
func (t *Target) fillTriangle(clip sprite.Rect, a, b, c shaded, smp sampler) {
	area := edge(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}
	tl0, tl1, tl2 := topLeft(b, c), topLeft(c, a), topLeft(a, b)

	minX := max(int(math.Floor(float64(min(a.x, b.x, c.x)))), int(clip.Left()))
	maxX := min(int(math.Ceil(float64(max(a.x, b.x, c.x)))), int(math.Ceil(float64(clip.Right()))))
	minY := max(int(math.Floor(float64(min(a.y, b.y, c.y)))), int(clip.Top()))
	maxY := min(int(math.Ceil(float64(max(a.y, b.y, c.y)))), int(math.Ceil(float64(clip.Bottom()))))

	pix := t.color.pix
	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5
			e0 := edge(b.x, b.y, c.x, c.y, px, py)
			e1 := edge(c.x, c.y, a.x, a.y, px, py)
			e2 := edge(a.x, a.y, b.x, b.y, px, py)
			if !covers(e0, tl0) || !covers(e1, tl1) || !covers(e2, tl2) {
				continue
			}
			src := fragment(smp, interpolate(a, b, c, e0/area, e1/area, e2/area))
			blend(pix[(y*t.width+x)*4:], src)
		}
	}
}

// topLeft reports whether the edge from p to q is a top or left edge of a
// triangle with positive area in y-down pixel space.
func topLeft(p, q shaded) bool {
	dx, dy := q.x-p.x, q.y-p.y
	return dy < 0 || (dy == 0 && dx > 0)
}

func covers(e float32, topLeft bool) bool {
	return e > 0 || (e == 0 && topLeft)
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func interpolate(a, b, c shaded, w0, w1, w2 float32) shaded {
	lerp := func(x, y, z float32) float32 { return x*w0 + y*w1 + z*w2 }
	out := shaded{
		u: lerp(a.u, b.u, c.u),
		v: lerp(a.v, b.v, c.v),
	}
	for i := range out.color {
		out.color[i] = lerp(a.color[i], b.color[i], c.color[i])
	}
	for i := range out.weights {
		out.weights[i] = lerp(a.weights[i], b.weights[i], c.weights[i])
	}
	return out
}

// fragment combines texture and color the way the batch shader does:
// mult*tex*col + wash*tex.a*col + fill*col.
func fragment(smp sampler, in shaded) [4]float32 {
	tex := smp.sample(in.u, in.v)
	mult, wash, fill := in.weights[0], in.weights[1], in.weights[2]
	var out [4]float32
	for i := range 3 {
		out[i] = mult*tex[i]*in.color[i] + wash*tex[3]*in.color[i] + fill*in.color[i]
	}
	out[3] = mult*tex[3]*in.color[3] + wash*tex[3]*in.color[3] + fill*in.color[3]
	return out
}

// blend writes src over the RGBA8 pixel at dst.
func blend(dst []byte, src [4]float32) {
	a := clamp01(src[3])
	for i := range 3 {
		d := unorm(dst[i])
		dst[i] = toByte(clamp01(src[i])*a + d*(1-a))
	}
	dst[3] = toByte(a + unorm(dst[3])*(1-a))
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

func toByte(v float32) byte {
	return byte(math.Round(float64(v * 255)))
}
