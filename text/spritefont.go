package text

import (
	"slices"
	"strings"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// SpriteCharacter is one baked character of a SpriteFont, in pixels at the
// SpriteFont's size.
type SpriteCharacter struct {
	Codepoint  rune
	Glyph      int
	Subtexture render.Subtexture
	Advance    float32
	Offset     sprite.Vec2

	// Scale is applied to Subtexture when drawing, mapping atlas pixels to
	// pixels at the SpriteFont size.
	Scale float32
}

// Kerning is the adjustment applied between codepoint A followed by B.
type Kerning struct {
	A, B  rune
	Value float32
}

// SpriteFont is a Font baked for one size and charset. Characters are kept
// sorted by codepoint and kernings by (A, B); both are searched with binary
// search.
type SpriteFont struct {
	Name    string
	Size    float32
	Ascent  float32
	Descent float32
	LineGap float32

	characters []SpriteCharacter
	kerning    []Kerning
	textures   []render.Texture
}

// NewSpriteFont returns a SpriteFont rebuilt from font at size. A nil font
// produces an empty SpriteFont.
func NewSpriteFont(font *Font, size float32, charset Charset) *SpriteFont {
	sf := &SpriteFont{}
	_ = sf.Rebuild(font, size, charset)
	return sf
}

// Clear empties the font.
func (sf *SpriteFont) Clear() {
	sf.Name = ""
	sf.Size = 0
	sf.Ascent, sf.Descent, sf.LineGap = 0, 0, 0
	sf.characters = sf.characters[:0]
	sf.kerning = sf.kerning[:0]
	sf.textures = sf.textures[:0]
}

// Height returns Ascent - Descent.
func (sf *SpriteFont) Height() float32 { return sf.Ascent - sf.Descent }

// LineHeight returns Ascent - Descent + LineGap.
func (sf *SpriteFont) LineHeight() float32 { return sf.Ascent - sf.Descent + sf.LineGap }

// Textures returns the atlas textures characters refer to.
func (sf *SpriteFont) Textures() []render.Texture { return sf.textures }

// Characters returns the sorted character table. It must not be modified.
func (sf *SpriteFont) Characters() []SpriteCharacter { return sf.characters }

// Kernings returns the sorted kerning table. It must not be modified.
func (sf *SpriteFont) Kernings() []Kerning { return sf.kerning }

// Rebuild replaces the contents with the characters of charset from font at
// size. Codepoints the font has no glyph for are skipped. Kerning is then
// computed for every ordered pair of baked characters.
func (sf *SpriteFont) Rebuild(font *Font, size float32, charset Charset) error {
	sf.Clear()
	if font == nil {
		return ErrNilFont
	}

	scale := font.ScaleFor(size)
	atlasScale := float32(1)
	if font.Size() > 0 {
		atlasScale = size / font.Size()
	}

	sf.Name = font.Name()
	sf.Size = size
	sf.Ascent = font.ascent * scale
	sf.Descent = font.descent * scale
	sf.LineGap = font.lineGap * scale
	if tex := font.Texture(); tex != nil {
		sf.textures = append(sf.textures, tex)
	}

	for _, r := range charset {
		for cp := r.From; cp <= r.To; cp++ {
			glyph, ok := font.Glyph(cp)
			if !ok || glyph <= 0 {
				continue
			}
			ch, _ := font.Character(glyph)
			chScale := ch.Scale
			if chScale == 0 {
				chScale = 1
			}
			sf.characters = append(sf.characters, SpriteCharacter{
				Codepoint:  cp,
				Glyph:      glyph,
				Subtexture: font.Subtexture(glyph),
				Advance:    ch.Advance * scale,
				Offset:     sprite.V2(ch.OffsetX*scale, ch.OffsetY*scale),
				Scale:      chScale * atlasScale,
			})
		}
	}

	slices.SortStableFunc(sf.characters, func(a, b SpriteCharacter) int {
		return int(a.Codepoint - b.Codepoint)
	})
	sf.characters = slices.CompactFunc(sf.characters, func(a, b SpriteCharacter) bool {
		return a.Codepoint == b.Codepoint
	})

	// Both loops walk the sorted table, so pairs arrive in (A, B) order.
	for _, a := range sf.characters {
		for _, b := range sf.characters {
			if k, ok := font.Kerning(a.Glyph, b.Glyph); ok && k != 0 {
				sf.kerning = append(sf.kerning, Kerning{A: a.Codepoint, B: b.Codepoint, Value: k * scale})
			}
		}
	}

	sprite.Logger().Debug("text: sprite font rebuilt", "name", sf.Name, "size", size,
		"characters", len(sf.characters), "kernings", len(sf.kerning))
	return nil
}

// findCharacterIndex binary-searches the character table; -1 if absent.
func (sf *SpriteFont) findCharacterIndex(cp rune) int {
	lo, hi := 0, len(sf.characters)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch c := sf.characters[mid].Codepoint; {
		case c == cp:
			return mid
		case c < cp:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// findKerningIndex binary-searches the kerning table by A then B; -1 if
// absent.
func (sf *SpriteFont) findKerningIndex(a, b rune) int {
	lo, hi := 0, len(sf.kerning)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		k := sf.kerning[mid]
		switch {
		case k.A == a && k.B == b:
			return mid
		case k.A < a || (k.A == a && k.B < b):
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// Character returns the record for cp. Missing codepoints fall back to the
// first character; an empty font returns the zero record.
func (sf *SpriteFont) Character(cp rune) SpriteCharacter {
	if i := sf.findCharacterIndex(cp); i >= 0 {
		return sf.characters[i]
	}
	if len(sf.characters) > 0 {
		return sf.characters[0]
	}
	return SpriteCharacter{}
}

// HasCharacter reports whether cp was baked.
func (sf *SpriteFont) HasCharacter(cp rune) bool {
	return sf.findCharacterIndex(cp) >= 0
}

// SetCharacter inserts or replaces a character, keeping the table sorted.
func (sf *SpriteFont) SetCharacter(ch SpriteCharacter) {
	if i := sf.findCharacterIndex(ch.Codepoint); i >= 0 {
		sf.characters[i] = ch
		return
	}
	i, _ := slices.BinarySearchFunc(sf.characters, ch.Codepoint, func(c SpriteCharacter, cp rune) int {
		return int(c.Codepoint - cp)
	})
	sf.characters = slices.Insert(sf.characters, i, ch)
}

// Kerning returns the adjustment between a followed by b, or 0.
func (sf *SpriteFont) Kerning(a, b rune) float32 {
	if i := sf.findKerningIndex(a, b); i >= 0 {
		return sf.kerning[i].Value
	}
	return 0
}

// SetKerning stores the adjustment between a followed by b, keeping the
// table sorted. It does not touch the (b, a) pair.
func (sf *SpriteFont) SetKerning(a, b rune, value float32) {
	if i := sf.findKerningIndex(a, b); i >= 0 {
		sf.kerning[i].Value = value
		return
	}
	i, _ := slices.BinarySearchFunc(sf.kerning, Kerning{A: a, B: b}, func(x, y Kerning) int {
		if x.A != y.A {
			return int(x.A - y.A)
		}
		return int(x.B - y.B)
	})
	sf.kerning = slices.Insert(sf.kerning, i, Kerning{A: a, B: b, Value: value})
}

// WidthOf returns the width of the widest line of text. Advances and
// kerning accumulate per line and reset at every '\n'.
func (sf *SpriteFont) WidthOf(text string) float32 {
	var width, line float32
	var last rune
	for _, r := range text {
		if r == '\n' {
			line = 0
			last = 0
			continue
		}
		line += sf.Character(r).Advance
		if last != 0 {
			line += sf.Kerning(last, r)
		}
		width = max(width, line)
		last = r
	}
	return width
}

// WidthOfLine returns the width of the line of text that starts at byte
// offset start, up to the next '\n'. Out of range offsets measure 0.
func (sf *SpriteFont) WidthOfLine(text string, start int) float32 {
	if start < 0 || start >= len(text) {
		return 0
	}
	line := text[start:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	var width float32
	var last rune
	for _, r := range line {
		width += sf.Character(r).Advance
		if last != 0 {
			width += sf.Kerning(last, r)
		}
		last = r
	}
	return width
}

// HeightOf returns (lines * LineHeight) - LineGap, where lines is the
// number of '\n' plus one. The empty string has height 0.
func (sf *SpriteFont) HeightOf(text string) float32 {
	if text == "" {
		return 0
	}
	lh := sf.LineHeight()
	height := lh
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			height += lh
		}
	}
	return height - sf.LineGap
}
