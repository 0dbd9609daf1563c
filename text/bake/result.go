package bake

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gogpu/sprite/render"
	"github.com/gogpu/sprite/text"
)

// Load uploads the atlas through ctx and builds a text.Font over it.
func (r *Result) Load(ctx *render.Context) (*text.Font, error) {
	tex, err := render.NewTextureFromImage(ctx, r.Atlas)
	if err != nil {
		return nil, fmt.Errorf("bake: upload atlas: %w", err)
	}
	return text.Make(r.Description, tex)
}

// WriteFiles writes name.json and name.png into dir and returns their paths.
func (r *Result) WriteFiles(dir, name string) (jsonPath, pngPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	jsonPath = filepath.Join(dir, name+".json")
	pngPath = filepath.Join(dir, name+".png")

	jf, err := os.Create(jsonPath)
	if err != nil {
		return "", "", err
	}
	if _, err := r.Description.WriteTo(jf); err != nil {
		jf.Close()
		return "", "", fmt.Errorf("bake: write description: %w", err)
	}
	if err := jf.Close(); err != nil {
		return "", "", err
	}

	pf, err := os.Create(pngPath)
	if err != nil {
		return "", "", err
	}
	if err := png.Encode(pf, r.Atlas); err != nil {
		pf.Close()
		return "", "", fmt.Errorf("bake: encode atlas: %w", err)
	}
	return jsonPath, pngPath, pf.Close()
}
