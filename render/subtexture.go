package render

import "github.com/gogpu/sprite"

// Subtexture is a region of a parent Texture. It does not own the texture;
// the texture must outlive every Subtexture referring to it.
//
// Source is the packed rectangle in texture pixels. Frame is the logical
// rectangle relative to Source: trimmed sprites have a negative Frame.X/Y
// giving the offset of the packed pixels inside the untrimmed image, and a
// Frame size larger than Source.
type Subtexture struct {
	Texture Texture
	Source  sprite.Rect
	Frame   sprite.Rect
}

// NewSubtexture returns a region of tex.
func NewSubtexture(tex Texture, source, frame sprite.Rect) Subtexture {
	return Subtexture{Texture: tex, Source: source, Frame: frame}
}

// FullSubtexture covers the whole of tex.
func FullSubtexture(tex Texture) Subtexture {
	r := sprite.Rect{}
	if tex != nil {
		r = sprite.R(0, 0, float32(tex.Width()), float32(tex.Height()))
	}
	return Subtexture{Texture: tex, Source: r, Frame: r}
}

// Width returns the logical width.
func (s Subtexture) Width() float32 { return s.Frame.W }

// Height returns the logical height.
func (s Subtexture) Height() float32 { return s.Frame.H }

// DrawCoords returns the quad corners, clockwise from the top-left, in the
// subtexture's local space.
func (s Subtexture) DrawCoords() [4]sprite.Vec2 {
	x0, y0 := -s.Frame.X, -s.Frame.Y
	x1, y1 := x0+s.Source.W, y0+s.Source.H
	return [4]sprite.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// TexCoords returns normalized texture coordinates matching DrawCoords.
// Without a texture every coordinate is zero.
func (s Subtexture) TexCoords() [4]sprite.Vec2 {
	if s.Texture == nil || s.Texture.Width() == 0 || s.Texture.Height() == 0 {
		return [4]sprite.Vec2{}
	}
	uvx := 1 / float32(s.Texture.Width())
	uvy := 1 / float32(s.Texture.Height())
	u0, v0 := s.Source.X*uvx, s.Source.Y*uvy
	u1, v1 := s.Source.Right()*uvx, s.Source.Bottom()*uvy
	return [4]sprite.Vec2{{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u1, Y: v1}, {X: u0, Y: v1}}
}

// Crop returns the part of s inside clip, where clip is in the logical
// (frame) space of s.
func (s Subtexture) Crop(clip sprite.Rect) Subtexture {
	out := s
	if clip.W <= 0 || clip.H <= 0 {
		out.Source.W, out.Source.H = 0, 0
		out.Frame.W, out.Frame.H = 0, 0
		return out
	}
	out.Source = clip.Translate(s.Source.TopLeft()).Translate(s.Frame.TopLeft()).Intersect(s.Source)
	out.Frame = sprite.Rect{
		X: min(0, s.Frame.X+clip.X),
		Y: min(0, s.Frame.Y+clip.Y),
		W: clip.W,
		H: clip.H,
	}
	return out
}
