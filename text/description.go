package text

import (
	"encoding/json"
	"fmt"
	"io"
)

// Description is the on-disk record of a baked font. It is produced by the
// baker (see text/bake) and consumed by Make.
//
// Metrics are in font units; Meta.Scale converts them to pixels at
// Meta.Size, the size the atlas was rasterised at.
type Description struct {
	Kernings []KerningRecord `json:"kernings"`
	Meta     Meta            `json:"meta"`
	Chars    []CharRecord    `json:"chars"`
	Glyphs   []GlyphRecord   `json:"glyphs"`
	Colors   []PackRecord    `json:"colors"`
}

// Meta holds font-wide metrics.
type Meta struct {
	Ascent  float32 `json:"ascent"`
	Descent float32 `json:"descent"`
	LineGap float32 `json:"line_gap"`
	Name    string  `json:"name"`
	Scale   float32 `json:"scale"`
	Size    float32 `json:"size,omitempty"`
}

// KerningRecord is the horizontal adjustment between two glyphs.
type KerningRecord struct {
	Glyph1  int     `json:"glyph1"`
	Glyph2  int     `json:"glyph2"`
	Kerning float32 `json:"kerning"`
}

// CharRecord holds the metrics of one glyph.
type CharRecord struct {
	Glyph    int     `json:"glyph"`
	Width    float32 `json:"width"`
	Height   float32 `json:"height"`
	Advance  float32 `json:"advance"`
	HasGlyph int     `json:"has_glyph"`
	OffsetX  float32 `json:"offset_x"`
	OffsetY  float32 `json:"offset_y"`
	Scale    float32 `json:"scale"`
}

// GlyphRecord maps a codepoint to a glyph.
type GlyphRecord struct {
	Glyph     int  `json:"glyph"`
	Codepoint rune `json:"codepoint"`
}

// XYWH is a rectangle in the description format.
type XYWH struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// PackRecord places a glyph image in the atlas. Packed is the rectangle in
// atlas pixels; Frame is the logical rectangle relative to it.
type PackRecord struct {
	Glyph  int  `json:"glyph"`
	Frame  XYWH `json:"frame"`
	Packed XYWH `json:"packed"`
}

// ParseDescription decodes a JSON font description.
func ParseDescription(r io.Reader) (Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Description{}, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}
	if err := d.Validate(); err != nil {
		return Description{}, err
	}
	return d, nil
}

// WriteTo encodes d as indented JSON.
func (d Description) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("text: encode description: %w", err)
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// Validate checks references between the tables.
func (d Description) Validate() error {
	if d.Meta.Scale < 0 || d.Meta.Size < 0 {
		return fmt.Errorf("%w: negative scale or size", ErrInvalidDescription)
	}
	chars := make(map[int]struct{}, len(d.Chars))
	for _, c := range d.Chars {
		chars[c.Glyph] = struct{}{}
	}
	for _, g := range d.Glyphs {
		if _, ok := chars[g.Glyph]; !ok {
			return fmt.Errorf("%w: codepoint %U maps to glyph %d with no metrics",
				ErrInvalidDescription, g.Codepoint, g.Glyph)
		}
	}
	return nil
}
