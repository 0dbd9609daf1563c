// Command fontbake rasterises a font into a glyph atlas PNG and the JSON
// description text.Make loads.
//
// Usage:
//
//	fontbake -font DejaVuSans.ttf -size 32 -charset ascii,0x400-0x4ff -out assets/fonts
package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/gogpu/sprite/internal/fontsource"
	"github.com/gogpu/sprite/text"
	"github.com/gogpu/sprite/text/bake"
)

func main() {
	var (
		fontRef = flag.String("font", fontsource.Default, "font file path, system font file name, or goregular")
		size    = flag.Float64("size", 32, "pixel size")
		charset = flag.String("charset", "ascii", "codepoints: ascii, latin1 or ranges like 32-126,0x400-0x4ff")
		padding = flag.Int("padding", 1, "empty pixels around each glyph")
		atlas   = flag.Int("atlas", 256, "initial atlas size")
		kerning = flag.String("kerning", "auto", "kerning source: auto, table, shaping or none")
		name    = flag.String("name", "", "output base name (default: font file name and size)")
		out     = flag.String("out", ".", "output directory")
	)
	flag.Parse()

	data, path, err := fontsource.Load(*fontRef)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	cs, err := text.ParseCharset(*charset)
	if err != nil {
		log.Fatalf("Invalid charset: %v", err)
	}
	ks, err := bake.ParseKerningSource(*kerning)
	if err != nil {
		log.Fatalf("Invalid kerning: %v", err)
	}

	res, err := bake.Bake(data, bake.Options{
		Size:      *size,
		Charset:   cs,
		Padding:   *padding,
		AtlasSize: *atlas,
		Kerning:   ks,
	})
	if err != nil {
		log.Fatalf("Failed to bake %s: %v", *fontRef, err)
	}

	base := *name
	if base == "" {
		base = fontsource.Name(path) + "-" + formatSize(*size)
	}
	jsonPath, pngPath, err := res.WriteFiles(*out, base)
	if err != nil {
		log.Fatalf("Failed to write: %v", err)
	}

	d := res.Description
	log.Printf("Baked %q: %d codepoints, %d glyphs, %d kerning pairs, atlas %dx%d",
		d.Meta.Name, len(d.Glyphs), len(d.Chars), len(d.Kernings), res.Atlas.Bounds().Dx(), res.Atlas.Bounds().Dy())
	log.Printf("Wrote %s and %s", jsonPath, pngPath)
}

func formatSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}
