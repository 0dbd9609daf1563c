// Command spritedemo renders a frame of shapes, sprites and text with the
// software backend and saves it as a PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"strings"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/backend"
	"github.com/gogpu/sprite/backend/software"
	"github.com/gogpu/sprite/batch"
	"github.com/gogpu/sprite/internal/fontsource"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/sprite/text"
	"github.com/gogpu/sprite/text/bake"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		fontRef    = flag.String("font", fontsource.Default, "font file path, system font file name, or goregular")
		size       = flag.Float64("size", 24, "font size in pixels")
		output     = flag.String("output", "spritedemo.png", "output file")
	)
	flag.Parse()

	cfg := sprite.DefaultConfig()
	cfg.Width, cfg.Height = 640, 360
	if *configPath != "" {
		var err error
		if cfg, err = sprite.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Without a host device this resolves to the software backend.
	be, err := backend.Default(render.BackendOptions{Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}
	screen, ok := be.(*software.Backend)
	if !ok {
		log.Fatalf("Failed to create backend: %T cannot be read back", be)
	}
	ctx := render.NewContext(be, cfg.Dev)

	font, err := loadFont(ctx, *fontRef, *size)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	sheet, err := render.NewTextureFromImage(ctx, checker(32, 8))
	if err != nil {
		log.Fatalf("Failed to create texture: %v", err)
	}

	b := batch.New(batch.FromConfig(cfg)...)

	// Caption rendered once into an off-screen target, then drawn as a sprite.
	caption, err := renderCaption(ctx, b, font, "off-screen target")
	if err != nil {
		log.Fatalf("Failed to render caption: %v", err)
	}

	if err := ctx.Clear(nil, cfg.Clear()); err != nil {
		log.Fatalf("Failed to clear: %v", err)
	}
	w, h := float32(cfg.Width), float32(cfg.Height)
	drawBackground(b, w, h)
	drawShapes(b)
	drawSprites(b, sheet, caption)
	drawText(b, font, w, h)

	if err := b.RenderDefault(ctx, nil); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, screen.Screen().Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %d triangles)", *output, cfg.Width, cfg.Height, b.Triangles())
}

func loadFont(ctx *render.Context, ref string, size float64) (*text.SpriteFont, error) {
	data, _, err := fontsource.Load(ref)
	if err != nil {
		return nil, err
	}
	res, err := bake.Bake(data, bake.Options{Size: size, Charset: text.ASCII})
	if err != nil {
		return nil, err
	}
	f, err := res.Load(ctx)
	if err != nil {
		return nil, err
	}
	return text.NewSpriteFont(f, float32(size), text.ASCII), nil
}

func renderCaption(ctx *render.Context, b *batch.Batch, font *text.SpriteFont, s string) (render.Texture, error) {
	target, err := render.NewTarget(ctx, 256, 48)
	if err != nil {
		return nil, err
	}
	if err := ctx.Clear(target, sprite.Color{R: 40, G: 40, B: 60, A: 255}); err != nil {
		return nil, err
	}
	b.RectLine(sprite.R(1, 1, 254, 46), 2, sprite.Hex("#f9e2af"))
	b.StrJ(font, s, sprite.V2(128, 24), sprite.V2(0.5, 0.5), font.Size, sprite.RGB(255, 255, 255))
	if err := b.RenderDefault(ctx, target); err != nil {
		return nil, err
	}
	b.Clear()
	return target.Textures()[0], nil
}

func drawBackground(b *batch.Batch, w, h float32) {
	b.PushLayer(-1)
	b.RectColors(sprite.R(0, 0, w, h),
		sprite.Hex("#1e1e2e"), sprite.Hex("#1e1e2e"),
		sprite.Hex("#313244"), sprite.Hex("#313244"))
	b.PopLayer()
}

func drawShapes(b *batch.Batch) {
	b.Circle(sprite.V2(80, 80), 40, 32, sprite.Hex("#f38ba8"))
	b.CircleLine(sprite.V2(80, 80), 48, 4, 32, sprite.Hex("#fab387"))
	b.RectRounded(sprite.R(150, 40, 100, 80), 16, 6, sprite.Hex("#a6e3a1"))
	b.TriColors(sprite.V2(300, 120), sprite.V2(350, 40), sprite.V2(400, 120),
		sprite.Hex("#89b4fa"), sprite.Hex("#cba6f7"), sprite.Hex("#94e2d5"))
	b.TriLine(sprite.V2(300, 120), sprite.V2(350, 40), sprite.V2(400, 120), 3, sprite.RGB(255, 255, 255))
	b.Bezier(sprite.V2(420, 120), sprite.V2(480, 0), sprite.V2(560, 120), 24, 3, sprite.Hex("#f9e2af"))
	b.Arc(sprite.V2(600, 80), 0, math.Pi, 30, 6, 16, sprite.Hex("#eba0ac"))

	// Rotating fan clipped to a window.
	b.PushScissor(sprite.R(20, 150, 160, 120))
	b.PushMatrix(sprite.FromTransform(sprite.V2(100, 210), sprite.V2(0, 0), sprite.V2(1, 1), 0.3), false)
	for i := range 6 {
		a := float32(i) * math.Pi / 3
		b.SemiCircle(sprite.V2(0, 0), a, a+math.Pi/6, 90, 8, sprite.Hex("#74c7ec").WithAlpha(0.7))
	}
	b.PopMatrix()
	b.PopScissor()
}

func drawSprites(b *batch.Batch, sheet, caption render.Texture) {
	b.SetSampler(render.NearestSampler())
	b.Tex(sheet, sprite.V2(210, 160), sprite.RGB(255, 255, 255))
	b.TexO(sheet, sprite.V2(300, 200), sprite.V2(16, 16), sprite.V2(2, 2), math.Pi/8, sprite.Hex("#f5c2e7"))
	b.Stex(render.NewSubtexture(sheet, sprite.R(0, 0, 16, 16), sprite.R(0, 0, 16, 16)), sprite.V2(360, 160), sprite.RGB(255, 255, 255))

	b.SetSampler(render.DefaultSampler())
	b.PushLayer(1)
	b.Tex(caption, sprite.V2(370, 230), sprite.RGB(255, 255, 255))
	b.PopLayer()
}

func drawText(b *batch.Batch, font *text.SpriteFont, w, h float32) {
	b.Str(font, "sprite: batch, backends and baked fonts", sprite.V2(20, h-140), sprite.RGB(255, 255, 255))
	lines := font.Wrap("Text wraps at word boundaries and is centred line by line.", w/2, text.WrapWordChar)
	b.StrJ(font, strings.Join(lines, "\n"), sprite.V2(w/2, h-8), sprite.V2(0.5, 1), font.Size, sprite.Hex("#bac2de"))
}

// checker returns a size x size image of cell x cell squares.
func checker(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			c := color.NRGBA{R: 230, G: 230, B: 230, A: 255}
			if (x/cell+y/cell)%2 == 1 {
				c = color.NRGBA{R: 90, G: 90, B: 110, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
