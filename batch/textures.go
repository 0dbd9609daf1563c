package batch

import (
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

var fullTexCoords = [4]sprite.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func (b *Batch) warnNilTexture(op string) {
	sprite.DevWarn(b.opts.dev, "batch: nil texture", "op", op)
}

// Tex draws the whole texture with its top-left corner at pos.
func (b *Batch) Tex(tex render.Texture, pos sprite.Vec2, col sprite.Color) {
	if tex == nil {
		b.warnNilTexture("Tex")
		return
	}
	b.SetTexture(tex)
	w, h := float32(tex.Width()), float32(tex.Height())
	b.pushTexQuad([4]sprite.Vec2{
		pos, pos.Add(sprite.V2(w, 0)), pos.Add(sprite.V2(w, h)), pos.Add(sprite.V2(0, h)),
	}, fullTexCoords, col)
}

// TexO draws the whole texture transformed about origin: scaled, rotated
// by rotation radians and placed at pos.
func (b *Batch) TexO(tex render.Texture, pos, origin, scale sprite.Vec2, rotation float32, col sprite.Color) {
	if tex == nil {
		b.warnNilTexture("TexO")
		return
	}
	b.PushMatrix(sprite.FromTransform(pos, origin, scale, rotation), false)
	b.Tex(tex, sprite.Vec2{}, col)
	b.matrix, _ = b.matrices.pop()
}

// TexC draws the clip region of the texture, transformed like TexO.
func (b *Batch) TexC(tex render.Texture, clip sprite.Rect, pos, origin, scale sprite.Vec2, rotation float32, col sprite.Color) {
	if tex == nil {
		b.warnNilTexture("TexC")
		return
	}
	b.StexO(render.FullSubtexture(tex).Crop(clip), pos, origin, scale, rotation, col)
}

// Stex draws a subtexture at pos, honouring its trimmed frame.
func (b *Batch) Stex(sub render.Subtexture, pos sprite.Vec2, col sprite.Color) {
	if sub.Texture == nil {
		b.warnNilTexture("Stex")
		return
	}
	b.SetTexture(sub.Texture)
	draw := sub.DrawCoords()
	for i := range draw {
		draw[i] = draw[i].Add(pos)
	}
	b.pushTexQuad(draw, sub.TexCoords(), col)
}

// StexO draws a subtexture transformed about origin.
func (b *Batch) StexO(sub render.Subtexture, pos, origin, scale sprite.Vec2, rotation float32, col sprite.Color) {
	if sub.Texture == nil {
		b.warnNilTexture("StexO")
		return
	}
	b.PushMatrix(sprite.FromTransform(pos, origin, scale, rotation), false)
	b.Stex(sub, sprite.Vec2{}, col)
	b.matrix, _ = b.matrices.pop()
}

// StexC draws the clip region of a subtexture, in frame coordinates,
// transformed like StexO.
func (b *Batch) StexC(sub render.Subtexture, clip sprite.Rect, pos, origin, scale sprite.Vec2, rotation float32, col sprite.Color) {
	if sub.Texture == nil {
		b.warnNilTexture("StexC")
		return
	}
	b.StexO(sub.Crop(clip), pos, origin, scale, rotation, col)
}
