package bake

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/sprite/text"
)

// bakeKerning computes kerning for every ordered pair of baked glyphs.
func bakeKerning(ttf []byte, f *opentype.Font, glyphs []*bakedGlyph, opts Options) ([]text.KerningRecord, error) {
	switch opts.Kerning {
	case KerningNone:
		return nil, nil
	case KerningShaping:
		return shapedKerning(ttf, glyphs, opts.Size)
	}

	ppem := fixed.Int26_6(opts.Size * 64)
	var buf sfnt.Buffer
	var out []text.KerningRecord
	for _, a := range glyphs {
		for _, b := range glyphs {
			k, err := f.Kern(&buf, a.index, b.index, ppem, font.HintingNone)
			if errors.Is(err, sfnt.ErrNotFound) {
				if opts.Kerning == KerningAuto {
					return shapedKerning(ttf, glyphs, opts.Size)
				}
				return nil, nil
			}
			if err != nil {
				return nil, fmt.Errorf("bake: kern table: %w", err)
			}
			if k != 0 {
				out = append(out, text.KerningRecord{
					Glyph1:  int(a.index),
					Glyph2:  int(b.index),
					Kerning: fixedToFloat(k),
				})
			}
		}
	}
	return out, nil
}

// pairShaper measures pair adjustments by shaping runs with HarfBuzz.
type pairShaper struct {
	face   *gotext.Face
	shaper shaping.HarfbuzzShaper
	size   fixed.Int26_6
}

func (s *pairShaper) shape(runes []rune) []shaping.Glyph {
	out := s.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.face,
		Size:      s.size,
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	return out.Glyphs
}

// shapedKerning derives kerning from the difference between the first
// glyph's advance when shaped alone and when shaped before its partner.
// Pairs that shape into ligatures are skipped.
func shapedKerning(ttf []byte, glyphs []*bakedGlyph, size float64) ([]text.KerningRecord, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("bake: parse font for shaping: %w", err)
	}
	s := &pairShaper{face: face, size: fixed.Int26_6(size * 64)}

	solo := make([]fixed.Int26_6, len(glyphs))
	for i, g := range glyphs {
		if out := s.shape(g.runes[:1]); len(out) == 1 {
			solo[i] = out[0].Advance
		}
	}

	var out []text.KerningRecord
	for i, a := range glyphs {
		for _, b := range glyphs {
			pair := s.shape([]rune{a.runes[0], b.runes[0]})
			if len(pair) != 2 {
				continue
			}
			if k := pair[0].Advance - solo[i]; k != 0 {
				out = append(out, text.KerningRecord{
					Glyph1:  int(a.index),
					Glyph2:  int(b.index),
					Kerning: fixedToFloat(k),
				})
			}
		}
	}
	return out, nil
}
