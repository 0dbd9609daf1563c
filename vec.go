package sprite

import "math"

// Vec2 is a 2D point or vector in engine space.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience constructor for Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Length returns the Euclidean length of v.
func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Normal returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normal() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float32 { return v.X*o.Y - v.Y*o.X }

// Perp returns v rotated by 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Floor rounds both components down.
func (v Vec2) Floor() Vec2 {
	return Vec2{float32(math.Floor(float64(v.X))), float32(math.Floor(float64(v.Y)))}
}

// Round rounds both components to the nearest integer.
func (v Vec2) Round() Vec2 {
	return Vec2{float32(math.Round(float64(v.X))), float32(math.Round(float64(v.Y)))}
}

// Lerp interpolates between v and o.
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
//
// A negative width or height is reserved as a sentinel meaning "unset",
// used by batches to mark "no scissor". See NoScissor.
type Rect struct {
	X, Y, W, H float32
}

// NoScissor is the sentinel rectangle for an unset scissor.
var NoScissor = Rect{X: 0, Y: 0, W: -1, H: -1}

// R is a convenience constructor for Rect.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the minimum x.
func (r Rect) Left() float32 { return r.X }

// Right returns the maximum x.
func (r Rect) Right() float32 { return r.X + r.W }

// Top returns the minimum y.
func (r Rect) Top() float32 { return r.Y }

// Bottom returns the maximum y.
func (r Rect) Bottom() float32 { return r.Y + r.H }

// TopLeft returns the corner at (Left, Top).
func (r Rect) TopLeft() Vec2 { return Vec2{r.X, r.Y} }

// TopRight returns the corner at (Right, Top).
func (r Rect) TopRight() Vec2 { return Vec2{r.Right(), r.Y} }

// BottomRight returns the corner at (Right, Bottom).
func (r Rect) BottomRight() Vec2 { return Vec2{r.Right(), r.Bottom()} }

// BottomLeft returns the corner at (Left, Bottom).
func (r Rect) BottomLeft() Vec2 { return Vec2{r.X, r.Bottom()} }

// Size returns (W, H).
func (r Rect) Size() Vec2 { return Vec2{r.W, r.H} }

// IsSet reports whether r is a real rectangle rather than the unset sentinel.
func (r Rect) IsSet() bool { return r.W >= 0 && r.H >= 0 }

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the overlap of r and o. Disjoint rectangles produce a
// rectangle with zero width or height, never a negative one, so the result
// is never mistaken for NoScissor.
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	w := min(r.Right(), o.Right()) - x
	h := min(r.Bottom(), o.Bottom()) - y
	return Rect{X: x, Y: y, W: max(w, 0), H: max(h, 0)}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Scale returns r with every component multiplied by s.
func (r Rect) Scale(s float32) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}
