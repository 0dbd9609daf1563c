package batch

import (
	"math"

	"github.com/gogpu/sprite"
)

// Line draws a segment of thickness t. Zero-length segments draw nothing.
func (b *Batch) Line(from, to sprite.Vec2, t float32, col sprite.Color) {
	b.LineGradient(from, to, t, col, col)
}

// LineGradient draws a segment whose color fades from c0 to c1.
func (b *Batch) LineGradient(from, to sprite.Vec2, t float32, c0, c1 sprite.Color) {
	if from == to || t <= 0 {
		return
	}
	perp := to.Sub(from).Normal().Perp().Mul(t / 2)
	b.pushQuad(
		from.Add(perp), to.Add(perp), to.Sub(perp), from.Sub(perp),
		c0, c1, c1, c0,
	)
}

// Bezier draws a quadratic curve through ctrl as steps line segments.
func (b *Batch) Bezier(from, ctrl, to sprite.Vec2, steps int, t float32, col sprite.Color) {
	if steps <= 0 {
		return
	}
	prev := from
	for i := 1; i <= steps; i++ {
		s := float32(i) / float32(steps)
		at := from.Lerp(ctrl, s).Lerp(ctrl.Lerp(to, s), s)
		b.Line(prev, at, t, col)
		prev = at
	}
}

// Tri draws a filled triangle.
func (b *Batch) Tri(p0, p1, p2 sprite.Vec2, col sprite.Color) {
	b.pushTriangle(p0, p1, p2, col, col, col)
}

// TriColors draws a filled triangle with one color per corner.
func (b *Batch) TriColors(p0, p1, p2 sprite.Vec2, c0, c1, c2 sprite.Color) {
	b.pushTriangle(p0, p1, p2, c0, c1, c2)
}

// TriLine draws a triangle outline of thickness t centered on the edges.
// Outlines whose inner edge would pass the incenter fill the grown triangle.
func (b *Batch) TriLine(p0, p1, p2 sprite.Vec2, t float32, col sprite.Color) {
	if t <= 0 {
		return
	}
	a := p1.Sub(p2).Length()
	c := p0.Sub(p1).Length()
	d := p2.Sub(p0).Length()
	perimeter := a + c + d
	area := float32(math.Abs(float64(p1.Sub(p0).Cross(p2.Sub(p0))))) / 2
	if perimeter == 0 || area == 0 {
		return
	}

	// Scaling about the incenter offsets every edge by the same amount.
	r := 2 * area / perimeter
	center := p0.Mul(a).Add(p1.Mul(d)).Add(p2.Mul(c)).Mul(1 / perimeter)
	toward := func(p sprite.Vec2, k float32) sprite.Vec2 {
		return center.Add(p.Sub(center).Mul(k))
	}
	kOut := (r + t/2) / r
	o0, o1, o2 := toward(p0, kOut), toward(p1, kOut), toward(p2, kOut)
	if t/2 >= r {
		b.Tri(o0, o1, o2, col)
		return
	}
	kIn := (r - t/2) / r
	i0, i1, i2 := toward(p0, kIn), toward(p1, kIn), toward(p2, kIn)
	b.pushQuad(o0, o1, i1, i0, col, col, col, col)
	b.pushQuad(o1, o2, i2, i1, col, col, col, col)
	b.pushQuad(o2, o0, i0, i2, col, col, col, col)
}

// Rect draws a filled rectangle.
func (b *Batch) Rect(r sprite.Rect, col sprite.Color) {
	b.pushQuad(r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft(), col, col, col, col)
}

// RectColors draws a rectangle with one color per corner, clockwise from
// the top-left.
func (b *Batch) RectColors(r sprite.Rect, c0, c1, c2, c3 sprite.Color) {
	b.pushQuad(r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft(), c0, c1, c2, c3)
}

// RectLine draws a rectangle outline of thickness t centered on the edges
// of r. An outline thick enough to meet in the middle fills the grown
// rectangle.
func (b *Batch) RectLine(r sprite.Rect, t float32, col sprite.Color) {
	if t <= 0 {
		return
	}
	h := t / 2
	if t >= r.W || t >= r.H {
		b.Rect(sprite.R(r.X-h, r.Y-h, r.W+t, r.H+t), col)
		return
	}
	b.Rect(sprite.R(r.X-h, r.Y-h, r.W+t, t), col)
	b.Rect(sprite.R(r.X-h, r.Bottom()-h, r.W+t, t), col)
	b.Rect(sprite.R(r.X-h, r.Y+h, t, r.H-t), col)
	b.Rect(sprite.R(r.Right()-h, r.Y+h, t, r.H-t), col)
}

// RectRounded draws a filled rectangle whose corners are quarter circles
// of radius, each made of steps segments.
func (b *Batch) RectRounded(r sprite.Rect, radius float32, steps int, col sprite.Color) {
	radius = min(radius, r.W/2, r.H/2)
	if radius <= 0 || steps <= 0 {
		b.Rect(r, col)
		return
	}
	corners := [4]struct {
		center sprite.Vec2
		start  float32
	}{
		{sprite.V2(r.Right()-radius, r.Y+radius), -math.Pi / 2},
		{sprite.V2(r.Right()-radius, r.Bottom()-radius), 0},
		{sprite.V2(r.X+radius, r.Bottom()-radius), math.Pi / 2},
		{sprite.V2(r.X+radius, r.Y+radius), math.Pi},
	}
	outline := make([]sprite.Vec2, 0, 4*(steps+1))
	for _, c := range corners {
		for i := 0; i <= steps; i++ {
			a := c.start + float32(i)/float32(steps)*math.Pi/2
			outline = append(outline, c.center.Add(polar(a, radius)))
		}
	}
	center := sprite.V2(r.X+r.W/2, r.Y+r.H/2)
	for i := range outline {
		b.pushTriangle(center, outline[i], outline[(i+1)%len(outline)], col, col, col)
	}
}

// Circle draws a filled circle as a fan of steps triangles. Circles with
// radius <= 0 or fewer than 3 steps draw nothing.
func (b *Batch) Circle(center sprite.Vec2, radius float32, steps int, col sprite.Color) {
	if radius <= 0 || steps < 3 {
		return
	}
	b.SemiCircle(center, 0, 2*math.Pi, radius, steps, col)
}

// CircleLine draws a ring of thickness t centered on radius. Rings whose
// inner edge would reach the center fill a circle of radius + t/2.
func (b *Batch) CircleLine(center sprite.Vec2, radius, t float32, steps int, col sprite.Color) {
	if radius <= 0 || steps < 3 || t <= 0 {
		return
	}
	if t/2 >= radius {
		b.Circle(center, radius+t/2, steps, col)
		return
	}
	b.Arc(center, 0, 2*math.Pi, radius, t, steps, col)
}

// SemiCircle draws a filled circular sector between two angles in
// radians, measured clockwise from +X in a y-down space.
func (b *Batch) SemiCircle(center sprite.Vec2, start, end, radius float32, steps int, col sprite.Color) {
	if radius <= 0 || steps <= 0 {
		return
	}
	prev := center.Add(polar(start, radius))
	for i := 1; i <= steps; i++ {
		at := center.Add(polar(start+(end-start)*float32(i)/float32(steps), radius))
		b.pushTriangle(center, prev, at, col, col, col)
		prev = at
	}
}

// Arc draws an open ring segment of thickness t centered on radius between
// two angles in radians.
func (b *Batch) Arc(center sprite.Vec2, start, end, radius, t float32, steps int, col sprite.Color) {
	if radius <= 0 || steps <= 0 || t <= 0 {
		return
	}
	outer := radius + t/2
	inner := max(radius-t/2, 0)
	prevOut := center.Add(polar(start, outer))
	prevIn := center.Add(polar(start, inner))
	for i := 1; i <= steps; i++ {
		a := start + (end-start)*float32(i)/float32(steps)
		out := center.Add(polar(a, outer))
		in := center.Add(polar(a, inner))
		b.pushQuad(prevOut, out, in, prevIn, col, col, col, col)
		prevOut, prevIn = out, in
	}
}

// Quad draws a filled quadrilateral with corners in drawing order.
func (b *Batch) Quad(p0, p1, p2, p3 sprite.Vec2, col sprite.Color) {
	b.pushQuad(p0, p1, p2, p3, col, col, col, col)
}

// QuadLine draws the outline of a convex quadrilateral with mitered
// corners, thickness t centered on the edges.
func (b *Batch) QuadLine(p0, p1, p2, p3 sprite.Vec2, t float32, col sprite.Color) {
	if t <= 0 {
		return
	}
	corners := [4]sprite.Vec2{p0, p1, p2, p3}
	var area float32
	for i := range corners {
		area += corners[i].Cross(corners[(i+1)%4])
	}
	if area == 0 {
		return
	}

	var outer, inner [4]sprite.Vec2
	for i := range corners {
		prev := corners[(i+3)%4]
		next := corners[(i+1)%4]
		n1 := corners[i].Sub(prev).Normal().Perp()
		n2 := next.Sub(corners[i]).Normal().Perp()
		if area < 0 {
			n1, n2 = n1.Mul(-1), n2.Mul(-1)
		}
		miter := n1.Add(n2).Normal()
		cos := miter.Dot(n1)
		if cos <= 0.01 {
			cos = 0.01
		}
		offset := miter.Mul(t / 2 / cos)
		inner[i] = corners[i].Add(offset)
		outer[i] = corners[i].Sub(offset)
	}
	for i := range outer {
		j := (i + 1) % 4
		b.pushQuad(outer[i], outer[j], inner[j], inner[i], col, col, col, col)
	}
}

func polar(angle, length float32) sprite.Vec2 {
	sin, cos := math.Sincos(float64(angle))
	return sprite.V2(float32(cos)*length, float32(sin)*length)
}
