// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bake rasterises a TrueType or OpenType font into a glyph atlas
// and the matching text.Description.
//
// Metrics are written in pixels at Options.Size with Meta.Scale = 1, so a
// text.SpriteFont built at that size draws the atlas 1:1.
package bake

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/internal/atlas"
	"github.com/gogpu/sprite/text"
)

var (
	// ErrEmptyCharset is returned when no requested codepoint has a glyph.
	ErrEmptyCharset = errors.New("bake: no glyphs in charset")

	// ErrInvalidSize is returned for a non-positive font size.
	ErrInvalidSize = errors.New("bake: invalid font size")
)

const (
	defaultAtlasSize = 256
	maxAtlasSize     = 4096
)

// KerningSource selects where pair kerning comes from.
type KerningSource uint8

const (
	// KerningAuto reads the kern table and falls back to shaping when the
	// font has none.
	KerningAuto KerningSource = iota
	// KerningTable reads only the legacy kern table.
	KerningTable
	// KerningShaping derives kerning by shaping glyph pairs with HarfBuzz,
	// which honours GPOS pair adjustments.
	KerningShaping
	// KerningNone bakes no kerning.
	KerningNone
)

var kerningNames = [...]string{"auto", "table", "shaping", "none"}

// String returns the lower-case name of k.
func (k KerningSource) String() string {
	if int(k) < len(kerningNames) {
		return kerningNames[k]
	}
	return fmt.Sprintf("KerningSource(%d)", k)
}

// ParseKerningSource is the inverse of KerningSource.String.
func ParseKerningSource(s string) (KerningSource, error) {
	for i, name := range kerningNames {
		if s == name {
			return KerningSource(i), nil
		}
	}
	return KerningAuto, fmt.Errorf("bake: unknown kerning source %q", s)
}

// Options configures a bake.
type Options struct {
	// Size is the pixel size to rasterise at.
	Size float64

	// Charset selects the codepoints to bake. Empty means text.ASCII.
	Charset text.Charset

	// Padding is the number of empty pixels kept around each glyph.
	Padding int

	// AtlasSize is the initial square atlas size; it doubles until every
	// glyph fits. Zero means 256.
	AtlasSize int

	// Kerning selects the kerning source.
	Kerning KerningSource

	// Name overrides the family name read from the font.
	Name string
}

// Result is a baked font.
type Result struct {
	Description text.Description
	Atlas       *image.NRGBA
}

type bakedGlyph struct {
	index sfnt.GlyphIndex
	runes []rune
	mask  *image.Alpha
	rec   text.CharRecord
}

// Bake rasterises ttf according to opts.
func Bake(ttf []byte, opts Options) (*Result, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, opts.Size)
	}
	if len(opts.Charset) == 0 {
		opts.Charset = text.ASCII
	}
	if opts.AtlasSize <= 0 {
		opts.AtlasSize = defaultAtlasSize
	}
	opts.Padding = max(opts.Padding, 1)

	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("bake: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("bake: create face: %w", err)
	}
	defer face.Close()

	glyphs, err := rasterise(f, face, opts.Charset)
	if err != nil {
		return nil, err
	}

	img, packs, err := packAtlas(glyphs, opts.AtlasSize, opts.Padding)
	if err != nil {
		return nil, err
	}

	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	desc := text.Description{
		Meta: text.Meta{
			Ascent:  ascent,
			Descent: -descent,
			LineGap: max(fixedToFloat(m.Height)-ascent-descent, 0),
			Name:    opts.Name,
			Scale:   1,
			Size:    float32(opts.Size),
		},
		Colors: packs,
	}
	if desc.Meta.Name == "" {
		var buf sfnt.Buffer
		desc.Meta.Name, _ = f.Name(&buf, sfnt.NameIDFamily)
	}
	for _, g := range glyphs {
		desc.Chars = append(desc.Chars, g.rec)
		for _, r := range g.runes {
			desc.Glyphs = append(desc.Glyphs, text.GlyphRecord{Glyph: int(g.index), Codepoint: r})
		}
	}
	slices.SortFunc(desc.Glyphs, func(a, b text.GlyphRecord) int { return int(a.Codepoint - b.Codepoint) })

	desc.Kernings, err = bakeKerning(ttf, f, glyphs, opts)
	if err != nil {
		return nil, err
	}

	sprite.Logger().Debug("bake: font baked", "name", desc.Meta.Name, "size", opts.Size,
		"glyphs", len(desc.Chars), "kernings", len(desc.Kernings),
		"atlas", img.Bounds().Size())
	return &Result{Description: desc, Atlas: img}, nil
}

// rasterise renders every glyph of charset once, merging codepoints that
// share a glyph.
func rasterise(f *opentype.Font, face font.Face, charset text.Charset) ([]*bakedGlyph, error) {
	var buf sfnt.Buffer
	byIndex := make(map[sfnt.GlyphIndex]*bakedGlyph)
	var out []*bakedGlyph

	for _, cr := range charset {
		for r := cr.From; r <= cr.To; r++ {
			gi, err := f.GlyphIndex(&buf, r)
			if err != nil || gi == 0 {
				continue
			}
			if g, ok := byIndex[gi]; ok {
				if !slices.Contains(g.runes, r) {
					g.runes = append(g.runes, r)
				}
				continue
			}

			dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
			if !ok {
				continue
			}
			g := &bakedGlyph{
				index: gi,
				runes: []rune{r},
				rec: text.CharRecord{
					Glyph:   int(gi),
					Width:   float32(dr.Dx()),
					Height:  float32(dr.Dy()),
					Advance: fixedToFloat(advance),
					OffsetX: float32(dr.Min.X),
					OffsetY: float32(dr.Min.Y),
					Scale:   1,
				},
			}
			if !dr.Empty() && mask != nil {
				// The face reuses its mask buffer between calls.
				g.mask = image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
				for y := 0; y < dr.Dy(); y++ {
					for x := 0; x < dr.Dx(); x++ {
						_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
						g.mask.SetAlpha(x, y, color.Alpha{A: uint8(a >> 8)})
					}
				}
				g.rec.HasGlyph = 1
			}
			byIndex[gi] = g
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyCharset
	}
	return out, nil
}

// packAtlas places every glyph image, doubling the atlas until they fit.
// The atlas is white with the glyph coverage in alpha, so vertex colors
// tint it directly.
func packAtlas(glyphs []*bakedGlyph, size, padding int) (*image.NRGBA, []text.PackRecord, error) {
	order := make([]*bakedGlyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.mask != nil {
			order = append(order, g)
		}
	}
	slices.SortStableFunc(order, func(a, b *bakedGlyph) int {
		return b.mask.Rect.Dy() - a.mask.Rect.Dy()
	})

	for ; size <= maxAtlasSize; size *= 2 {
		p, err := atlas.NewPacker(size, size, padding)
		if err != nil {
			return nil, nil, fmt.Errorf("bake: %w", err)
		}
		regions := make([]atlas.Region, len(order))
		fits := true
		for i, g := range order {
			r, err := p.Pack(g.mask.Rect.Dx(), g.mask.Rect.Dy())
			if errors.Is(err, atlas.ErrAtlasFull) {
				fits = false
				break
			}
			if err != nil {
				return nil, nil, fmt.Errorf("bake: %w", err)
			}
			regions[i] = r
		}
		if !fits {
			continue
		}

		img := image.NewNRGBA(image.Rect(0, 0, size, size))
		packs := make([]text.PackRecord, len(order))
		for i, g := range order {
			r := regions[i]
			for y := 0; y < r.Height; y++ {
				for x := 0; x < r.Width; x++ {
					a := g.mask.AlphaAt(x, y).A
					img.SetNRGBA(r.X+x, r.Y+y, color.NRGBA{R: 255, G: 255, B: 255, A: a})
				}
			}
			w, h := float32(r.Width), float32(r.Height)
			packs[i] = text.PackRecord{
				Glyph:  int(g.index),
				Packed: text.XYWH{X: float32(r.X), Y: float32(r.Y), W: w, H: h},
				Frame:  text.XYWH{W: w, H: h},
			}
		}
		slices.SortFunc(packs, func(a, b text.PackRecord) int { return a.Glyph - b.Glyph })
		return img, packs, nil
	}
	return nil, nil, fmt.Errorf("bake: %w: glyphs do not fit in %dx%d", atlas.ErrAtlasFull, maxAtlasSize, maxAtlasSize)
}

func fixedToFloat(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
