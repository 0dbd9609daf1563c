package text

import (
	"fmt"
	"slices"
	"sort"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// Character is the metric record of one glyph, in font units.
type Character struct {
	Glyph    int
	Width    float32
	Height   float32
	Advance  float32
	OffsetX  float32
	OffsetY  float32
	Scale    float32
	HasGlyph bool
}

type glyphPair struct {
	first, second int
	value         float32
}

type pack struct {
	packed, frame sprite.Rect
}

// Font is a decoded font asset: metrics, codepoint map, kerning table and
// atlas placement of each glyph image. A Font is immutable after Make and
// safe for concurrent reads.
type Font struct {
	name    string
	texture render.Texture

	ascent, descent, lineGap float32
	scale, size              float32

	characters map[int]Character
	glyphs     map[rune]int
	kernings   []glyphPair // sorted by (first, second)
	packs      map[int]pack
}

// Make builds a Font from a description and the atlas texture its pack
// records refer to. texture may be nil for measurement-only fonts.
func Make(desc Description, texture render.Texture) (*Font, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	f := &Font{
		name:       desc.Meta.Name,
		texture:    texture,
		ascent:     desc.Meta.Ascent,
		descent:    desc.Meta.Descent,
		lineGap:    desc.Meta.LineGap,
		scale:      desc.Meta.Scale,
		size:       desc.Meta.Size,
		characters: make(map[int]Character, len(desc.Chars)),
		glyphs:     make(map[rune]int, len(desc.Glyphs)),
		packs:      make(map[int]pack, len(desc.Colors)),
	}
	if f.scale == 0 {
		f.scale = 1
	}

	for _, c := range desc.Chars {
		f.characters[c.Glyph] = Character{
			Glyph:    c.Glyph,
			Width:    c.Width,
			Height:   c.Height,
			Advance:  c.Advance,
			OffsetX:  c.OffsetX,
			OffsetY:  c.OffsetY,
			Scale:    c.Scale,
			HasGlyph: c.HasGlyph != 0,
		}
	}
	for _, g := range desc.Glyphs {
		f.glyphs[g.Codepoint] = g.Glyph
	}
	for _, p := range desc.Colors {
		f.packs[p.Glyph] = pack{
			packed: sprite.R(p.Packed.X, p.Packed.Y, p.Packed.W, p.Packed.H),
			frame:  sprite.R(p.Frame.X, p.Frame.Y, p.Frame.W, p.Frame.H),
		}
	}

	f.kernings = make([]glyphPair, 0, len(desc.Kernings))
	for _, k := range desc.Kernings {
		f.kernings = append(f.kernings, glyphPair{first: k.Glyph1, second: k.Glyph2, value: k.Kerning})
	}
	slices.SortStableFunc(f.kernings, comparePairs)
	f.kernings = dedupePairs(f.kernings)

	if f.size == 0 {
		f.size = f.LineHeight()
	}
	sprite.Logger().Debug("text: font loaded", "name", f.name,
		"chars", len(f.characters), "glyphs", len(f.glyphs), "kernings", len(f.kernings))
	return f, nil
}

func comparePairs(a, b glyphPair) int {
	if a.first != b.first {
		return a.first - b.first
	}
	return a.second - b.second
}

// dedupePairs keeps the last record of each pair, as a map would.
func dedupePairs(sorted []glyphPair) []glyphPair {
	out := sorted[:0]
	for _, k := range sorted {
		if n := len(out); n > 0 && comparePairs(out[n-1], k) == 0 {
			out[n-1] = k
			continue
		}
		out = append(out, k)
	}
	return out
}

// Name returns the family name.
func (f *Font) Name() string { return f.name }

// Texture returns the atlas texture.
func (f *Font) Texture() render.Texture { return f.texture }

// Scale returns the units-to-pixels factor at Size.
func (f *Font) Scale() float32 { return f.scale }

// Size returns the pixel size the atlas was rasterised at. Descriptions
// without one use the line height.
func (f *Font) Size() float32 { return f.size }

// Ascent returns the ascent in pixels at Size.
func (f *Font) Ascent() float32 { return f.ascent * f.scale }

// Descent returns the descent in pixels at Size. It is usually negative.
func (f *Font) Descent() float32 { return f.descent * f.scale }

// LineGap returns the line gap in pixels at Size.
func (f *Font) LineGap() float32 { return f.lineGap * f.scale }

// LineHeight returns Ascent - Descent + LineGap.
func (f *Font) LineHeight() float32 { return f.Ascent() - f.Descent() + f.LineGap() }

// ScaleFor returns the units-to-pixels factor for rendering at size.
func (f *Font) ScaleFor(size float32) float32 {
	if f.size <= 0 {
		return f.scale
	}
	return f.scale * size / f.size
}

// Character returns the metrics of glyph.
func (f *Font) Character(glyph int) (Character, bool) {
	c, ok := f.characters[glyph]
	return c, ok
}

// Kerning returns the adjustment between glyph1 followed by glyph2, in font
// units. The table is directional: Kerning(a, b) and Kerning(b, a) are
// independent.
func (f *Font) Kerning(glyph1, glyph2 int) (float32, bool) {
	i, ok := slices.BinarySearchFunc(f.kernings, glyphPair{first: glyph1, second: glyph2}, comparePairs)
	if !ok {
		return 0, false
	}
	return f.kernings[i].value, true
}

// Glyph returns the glyph for codepoint.
func (f *Font) Glyph(codepoint rune) (int, bool) {
	g, ok := f.glyphs[codepoint]
	return g, ok
}

// Subtexture returns the atlas region of glyph. Glyphs without an image get
// a zero-sized region of the atlas texture.
func (f *Font) Subtexture(glyph int) render.Subtexture {
	p, ok := f.packs[glyph]
	if !ok {
		return render.NewSubtexture(f.texture, sprite.Rect{}, sprite.Rect{})
	}
	return render.NewSubtexture(f.texture, p.packed, p.frame)
}

// Codepoints returns every mapped codepoint in ascending order.
func (f *Font) Codepoints() []rune {
	out := make([]rune, 0, len(f.glyphs))
	for cp := range f.glyphs {
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Charset returns the mapped codepoints as a minimal list of ranges.
func (f *Font) Charset() Charset {
	var cs Charset
	for _, cp := range f.Codepoints() {
		if n := len(cs); n > 0 && cs[n-1].To+1 == cp {
			cs[n-1].To = cp
			continue
		}
		cs = append(cs, CharRange{From: cp, To: cp})
	}
	return cs
}

// String returns a short description for logs.
func (f *Font) String() string {
	return fmt.Sprintf("Font(%q, %d glyphs)", f.name, len(f.glyphs))
}
