package batch

import (
	"testing"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/sprite/text"
)

// testFont has 'A' (4x4 glyph, advance 5), a blank ' ' (advance 3) and
// kerning AA = -1, at size 10 with ascent 8, descent -2 and line gap 1.
func testFont(t *testing.T) (*text.SpriteFont, render.Texture) {
	t.Helper()
	_, ctx := newHeadless(t)
	tex := newTexture(t, ctx, 16, 16)

	sf := &text.SpriteFont{Size: 10, Ascent: 8, Descent: -2, LineGap: 1}
	sf.SetCharacter(text.SpriteCharacter{
		Codepoint:  'A',
		Glyph:      1,
		Subtexture: render.NewSubtexture(tex, sprite.R(0, 0, 4, 4), sprite.R(0, 0, 4, 4)),
		Advance:    5,
		Scale:      1,
	})
	sf.SetCharacter(text.SpriteCharacter{
		Codepoint:  ' ',
		Glyph:      2,
		Subtexture: render.NewSubtexture(tex, sprite.Rect{}, sprite.Rect{}),
		Advance:    3,
		Scale:      1,
	})
	sf.SetKerning('A', 'A', -1)
	return sf, tex
}

// glyphOrigins returns the top-left vertex of every emitted quad.
func glyphOrigins(b *Batch) []sprite.Vec2 {
	var out []sprite.Vec2
	for i := 0; i < len(b.Vertices()); i += 4 {
		out = append(out, b.Vertices()[i].Pos)
	}
	return out
}

func TestStr(t *testing.T) {
	sf, tex := testFont(t)
	tests := []struct {
		name string
		s    string
		want []sprite.Vec2
	}{
		{"single", "A", []sprite.Vec2{{X: 0, Y: 8}}},
		{"kerned", "AA", []sprite.Vec2{{X: 0, Y: 8}, {X: 4, Y: 8}}},
		{"space", "A A", []sprite.Vec2{{X: 0, Y: 8}, {X: 8, Y: 8}}},
		{"newline", "A\nA", []sprite.Vec2{{X: 0, Y: 8}, {X: 0, Y: 19}}},
		{"missing advances", "AZA", []sprite.Vec2{{X: 0, Y: 8}, {X: 8, Y: 8}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.Str(sf, tt.s, sprite.Vec2{}, sprite.White)
			got := glyphOrigins(b)
			if len(got) != len(tt.want) {
				t.Fatalf("glyphs = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !near(got[i], tt.want[i]) {
					t.Errorf("glyph %d at %v, want %v", i, got[i], tt.want[i])
				}
			}
			if len(tt.want) > 0 {
				batches := b.Batches()
				if len(batches) != 1 || batches[0].Texture != tex {
					t.Errorf("batches = %+v, want one batch on the font texture", batches)
				}
			}
		})
	}
}

func TestStrJustify(t *testing.T) {
	sf, _ := testFont(t)
	b := New()

	// "AA" is 9 wide; one line is 8+2 = 10 tall.
	b.StrJ(sf, "AA", sprite.V2(100, 100), sprite.V2(1, 0.5), 10, sprite.White)
	got := glyphOrigins(b)
	want := []sprite.Vec2{{X: 91, Y: 103}, {X: 95, Y: 103}}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("glyph %d at %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStrJustifyMissingCharacter(t *testing.T) {
	sf, _ := testFont(t)
	b := New()
	// 'Z' is not baked: it advances like the fallback ' ' (3) and draws
	// nothing, so "ZA" measures and lays out as 8 wide.
	b.StrJ(sf, "ZA", sprite.Vec2{}, sprite.V2(1, 0), 10, sprite.White)
	got := glyphOrigins(b)
	if len(got) != 1 {
		t.Fatalf("glyphs = %v, want only 'A'", got)
	}
	if !near(got[0], sprite.V2(-5, 8)) {
		t.Errorf("'A' at %v, want (-5,8) so the line ends at 0", got[0])
	}
}

func TestStrJustifyPerLine(t *testing.T) {
	sf, _ := testFont(t)
	b := New()
	b.StrJ(sf, "AA\nA", sprite.Vec2{}, sprite.V2(1, 0), 10, sprite.White)
	got := glyphOrigins(b)
	if len(got) != 3 {
		t.Fatalf("glyphs = %v", got)
	}
	if !near(got[2], sprite.V2(-5, 19)) {
		t.Errorf("second line glyph at %v, want (-5,19)", got[2])
	}
}

func TestStrScaled(t *testing.T) {
	sf, _ := testFont(t)
	b := New()
	b.StrJ(sf, "A", sprite.Vec2{}, sprite.Vec2{}, 20, sprite.White)
	v := b.Vertices()
	if !near(v[0].Pos, sprite.V2(0, 16)) || !near(v[2].Pos, sprite.V2(8, 24)) {
		t.Errorf("quad = %v..%v, want (0,16)..(8,24)", v[0].Pos, v[2].Pos)
	}
}

func TestStrIntegerize(t *testing.T) {
	sf, _ := testFont(t)
	b := New(WithIntegerize(true))
	b.Str(sf, "A", sprite.V2(0.4, 0.6), sprite.White)
	if got := b.Vertices()[0].Pos; got != sprite.V2(0, 9) {
		t.Errorf("origin = %v, want (0,9)", got)
	}
}

func TestTexVariants(t *testing.T) {
	_, ctx := newHeadless(t)
	tex := newTexture(t, ctx, 8, 4)

	t.Run("tex", func(t *testing.T) {
		b := New()
		b.Tex(tex, sprite.V2(2, 3), sprite.White)
		v := b.Vertices()
		if !near(v[0].Pos, sprite.V2(2, 3)) || !near(v[2].Pos, sprite.V2(10, 7)) {
			t.Errorf("quad = %v..%v", v[0].Pos, v[2].Pos)
		}
		if v[2].Tex != sprite.V2(1, 1) {
			t.Errorf("tex coord = %v, want (1,1)", v[2].Tex)
		}
		if v[0].Mult != 255 || v[0].Wash != 0 || v[0].Fill != 0 {
			t.Errorf("weights = %d/%d/%d, want 255/0/0", v[0].Mult, v[0].Wash, v[0].Fill)
		}
	})

	t.Run("origin scale", func(t *testing.T) {
		b := New()
		b.TexO(tex, sprite.V2(10, 10), sprite.V2(4, 2), sprite.V2(2, 2), 0, sprite.White)
		v := b.Vertices()
		if !near(v[0].Pos, sprite.V2(2, 6)) || !near(v[2].Pos, sprite.V2(18, 14)) {
			t.Errorf("quad = %v..%v, want (2,6)..(18,14)", v[0].Pos, v[2].Pos)
		}
		if b.PeekMatrix() != sprite.Identity() {
			t.Error("TexO leaked its matrix")
		}
	})

	t.Run("clip", func(t *testing.T) {
		b := New()
		b.TexC(tex, sprite.R(4, 0, 4, 4), sprite.Vec2{}, sprite.Vec2{}, sprite.V2(1, 1), 0, sprite.White)
		v := b.Vertices()
		if !near(v[2].Pos, sprite.V2(4, 4)) {
			t.Errorf("clipped size = %v, want (4,4)", v[2].Pos)
		}
		if !near(v[0].Tex, sprite.V2(0.5, 0)) || !near(v[2].Tex, sprite.V2(1, 1)) {
			t.Errorf("tex coords = %v..%v, want (0.5,0)..(1,1)", v[0].Tex, v[2].Tex)
		}
	})

	t.Run("weights", func(t *testing.T) {
		b := New()
		b.SetTextureWeights(0, 255)
		b.Tex(tex, sprite.Vec2{}, sprite.White)
		if v := b.Vertices()[0]; v.Mult != 0 || v.Wash != 255 {
			t.Errorf("weights = %d/%d, want 0/255", v.Mult, v.Wash)
		}
	})

	t.Run("nil texture", func(t *testing.T) {
		b := New(WithDevMode(true))
		b.Tex(nil, sprite.Vec2{}, sprite.White)
		b.Stex(render.Subtexture{}, sprite.Vec2{}, sprite.White)
		if b.VertexCount() != 0 {
			t.Errorf("VertexCount() = %d, want 0", b.VertexCount())
		}
	})
}

func TestStexTrimmedFrame(t *testing.T) {
	_, ctx := newHeadless(t)
	tex := newTexture(t, ctx, 16, 16)
	// 4x4 pixels packed at (8,8), trimmed from a 6x6 frame at offset (1,1).
	sub := render.NewSubtexture(tex, sprite.R(8, 8, 4, 4), sprite.R(-1, -1, 6, 6))

	b := New()
	b.Stex(sub, sprite.V2(10, 10), sprite.White)
	v := b.Vertices()
	if !near(v[0].Pos, sprite.V2(11, 11)) || !near(v[2].Pos, sprite.V2(15, 15)) {
		t.Errorf("quad = %v..%v, want (11,11)..(15,15)", v[0].Pos, v[2].Pos)
	}
	if !near(v[0].Tex, sprite.V2(0.5, 0.5)) || !near(v[2].Tex, sprite.V2(0.75, 0.75)) {
		t.Errorf("tex = %v..%v", v[0].Tex, v[2].Tex)
	}
}

func TestFlipFramebuffers(t *testing.T) {
	_, ctx := newHeadless(t)
	target, err := render.NewTarget(ctx, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	fb := target.Textures()[0]

	b := New(WithFlipFramebuffers(true))
	b.Tex(fb, sprite.Vec2{}, sprite.White)
	if got := b.Vertices()[0].Tex; got != sprite.V2(0, 1) {
		t.Errorf("flipped tex coord = %v, want (0,1)", got)
	}
	if !b.Batches()[0].FlipVertically {
		t.Error("batch FlipVertically = false")
	}

	b = New()
	b.Tex(fb, sprite.Vec2{}, sprite.White)
	if got := b.Vertices()[0].Tex; got != sprite.V2(0, 0) {
		t.Errorf("unflipped tex coord = %v, want (0,0)", got)
	}
}
