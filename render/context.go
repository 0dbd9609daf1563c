// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
)

// Context carries the backend and the development flag through the engine.
// It replaces any notion of a global "current renderer".
type Context struct {
	// Backend executes resource creation and draw calls.
	Backend Backend

	// Dev enables development-mode warnings for recoverable misuse.
	Dev bool
}

// NewContext returns a Context for backend.
func NewContext(backend Backend, dev bool) *Context {
	return &Context{Backend: backend, Dev: dev}
}

func (c *Context) backend() (Backend, error) {
	if c == nil || c.Backend == nil {
		return nil, ErrNilBackend
	}
	return c.Backend, nil
}

// BackBuffer returns the backend's default target, or nil without a backend.
func (c *Context) BackBuffer() Target {
	b, err := c.backend()
	if err != nil {
		return nil
	}
	return b.BackBuffer()
}

// Clear fills target with col. A nil target clears the back buffer.
func (c *Context) Clear(target Target, col sprite.Color) error {
	b, err := c.backend()
	if err != nil {
		return err
	}
	if target == nil {
		target = b.BackBuffer()
	}
	return b.Clear(target, col, 1, 0)
}

// NewTexture requests a texture from the backend.
func NewTexture(ctx *Context, width, height int, format gputypes.TextureFormat) (Texture, error) {
	b, err := ctx.backend()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}
	tex, err := b.CreateTexture(width, height, format)
	if err != nil {
		return nil, fmt.Errorf("render: create texture: %w", err)
	}
	sprite.Logger().Debug("render: texture created", "width", width, "height", height, "format", format)
	return tex, nil
}

// NewTextureFromImage uploads a decoded image as an RGBA8 texture.
func NewTextureFromImage(ctx *Context, img image.Image) (Texture, error) {
	bounds := img.Bounds()
	tex, err := NewTexture(ctx, bounds.Dx(), bounds.Dy(), gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	if err := tex.SetData(imagePixels(img)); err != nil {
		return nil, fmt.Errorf("render: upload image: %w", err)
	}
	return tex, nil
}

// imagePixels returns tightly packed non-premultiplied RGBA bytes.
func imagePixels(img image.Image) []byte {
	bounds := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == bounds.Dx()*4 && nrgba.Rect.Min == (image.Point{}) {
		return nrgba.Pix
	}
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst.Pix
}

// NewTarget requests an off-screen render target from the backend.
func NewTarget(ctx *Context, width, height int) (Target, error) {
	b, err := ctx.backend()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidSize, width, height)
	}
	t, err := b.CreateTarget(width, height)
	if err != nil {
		return nil, fmt.Errorf("render: create target: %w", err)
	}
	return t, nil
}

// NewMesh requests an empty mesh from the backend.
func NewMesh(ctx *Context) (Mesh, error) {
	b, err := ctx.backend()
	if err != nil {
		return nil, err
	}
	m, err := b.CreateMesh()
	if err != nil {
		return nil, fmt.Errorf("render: create mesh: %w", err)
	}
	return m, nil
}

// NewShader validates data and asks the backend to compile it.
func NewShader(ctx *Context, data ShaderData) (Shader, error) {
	b, err := ctx.backend()
	if err != nil {
		return nil, err
	}
	if data.Vertex == "" || data.Fragment == "" {
		return nil, ErrInvalidShader
	}
	s, err := b.CreateShader(data)
	if err != nil {
		return nil, fmt.Errorf("render: create shader: %w", err)
	}
	return s, nil
}
