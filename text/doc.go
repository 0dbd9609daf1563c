// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package text implements bitmap fonts for the batch engine.
//
// A Font is the decoded form of a baked font asset: per-glyph metrics, a
// codepoint to glyph map, a glyph-pair kerning table and the atlas regions
// of every glyph image. It answers four queries: Character, Kerning, Glyph
// and Subtexture.
//
// A SpriteFont is a Font specialised for one render size and charset.
// Rebuild copies the requested characters into a codepoint-sorted table and
// computes kerning for every ordered pair of them; afterwards lookups are
// binary searches and the font is read-only until the next Rebuild.
//
//	desc, err := text.ParseDescription(f)
//	font, err := text.Make(desc, atlasTexture)
//	sf := text.NewSpriteFont(font, 32, text.ASCII)
//
//	w := sf.WidthOf("Hello\nWorld")
//	h := sf.HeightOf("Hello\nWorld")
//
// Wrap splits text into lines that fit a pixel width, breaking at a
// reduced set of UAX #14 opportunities.
//
// Missing glyphs and kerning pairs are not errors: lookups fall back to the
// first character and to zero kerning respectively.
//
// SpriteFont is not safe for concurrent use. Do not Rebuild while a batch
// is drawing with it.
package text
