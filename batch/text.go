package batch

import (
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/text"
)

// Str draws s with its first baseline at pos.Y + font.Ascent, at the
// font's own size.
func (b *Batch) Str(font *text.SpriteFont, s string, pos sprite.Vec2, col sprite.Color) {
	if font == nil {
		return
	}
	b.StrJ(font, s, pos, sprite.Vec2{}, font.Size, col)
}

// StrJ draws s at size, justified around pos. justify is a fraction of the
// text's extent: (0, 0) is top-left, (0.5, 0.5) centres the block on pos
// and (1, 1) aligns its bottom-right corner. Every line is justified
// horizontally on its own width.
//
// Codepoints missing from font are skipped. Text is NFC-normalised before
// lookup so composed characters match the baked charset.
func (b *Batch) StrJ(font *text.SpriteFont, s string, pos, justify sprite.Vec2, size float32, col sprite.Color) {
	if font == nil || s == "" || font.Size <= 0 {
		return
	}
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}

	scale := size / font.Size
	b.PushMatrix(sprite.Translate(pos.X, pos.Y).Multiply(sprite.Scale(scale, scale)), false)

	offset := sprite.V2(0, font.Ascent)
	if justify.X != 0 {
		offset.X = -font.WidthOfLine(s, 0) * justify.X
	}
	if justify.Y != 0 {
		offset.Y -= font.HeightOf(s) * justify.Y
	}

	var last rune
	for i, r := range s {
		if r == '\n' {
			offset.X = 0
			if justify.X != 0 {
				offset.X = -font.WidthOfLine(s, i+1) * justify.X
			}
			offset.Y += font.LineHeight()
			last = 0
			continue
		}
		// Missing codepoints take the fallback advance, as WidthOfLine
		// measures them, but draw nothing.
		ch := font.Character(r)
		if last != 0 {
			offset.X += font.Kerning(last, r)
		}

		if font.HasCharacter(r) && ch.Subtexture.Texture != nil && !ch.Subtexture.Source.Empty() {
			at := offset.Add(ch.Offset)
			if b.opts.integerize {
				at = at.Round()
			}
			b.SetTexture(ch.Subtexture.Texture)
			draw := ch.Subtexture.DrawCoords()
			for j := range draw {
				draw[j] = at.Add(draw[j].Mul(ch.Scale))
			}
			b.pushTexQuad(draw, ch.Subtexture.TexCoords(), col)
		}

		offset.X += ch.Advance
		last = r
	}

	b.matrix, _ = b.matrices.pop()
}
