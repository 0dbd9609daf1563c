// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/sprite"

// Target is where draw calls write pixels: an off-screen framebuffer with
// color attachments, or a backend's back buffer.
type Target interface {
	// Width returns the width in pixels.
	Width() int

	// Height returns the height in pixels.
	Height() int

	// Textures returns the color attachments. The back buffer returns nil.
	Textures() []Texture
}

// Bounds returns the full rectangle of t, or an empty rect for nil.
func Bounds(t Target) sprite.Rect {
	if t == nil {
		return sprite.Rect{}
	}
	return sprite.R(0, 0, float32(t.Width()), float32(t.Height()))
}

// IsBackBuffer reports whether t is the back buffer of ctx's backend.
func IsBackBuffer(ctx *Context, t Target) bool {
	if t == nil {
		return true
	}
	return t == ctx.BackBuffer()
}
