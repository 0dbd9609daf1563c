// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// Texture is a 2D image resource owned by a backend.
type Texture interface {
	// Width returns the width in pixels.
	Width() int

	// Height returns the height in pixels.
	Height() int

	// Format returns the pixel format.
	Format() gputypes.TextureFormat

	// SetData replaces the full contents. len(data) must equal
	// Width*Height*BytesPerPixel(Format).
	SetData(data []byte) error

	// IsFramebuffer reports whether the texture is an attachment of a Target.
	IsFramebuffer() bool
}

// BytesPerPixel returns the size of one texel for the formats the engine
// uploads from the CPU, or 0 for formats it does not handle.
func BytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRG8Unorm:
		return 2
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatDepth24PlusStencil8:
		return 4
	default:
		return 0
	}
}

// TextureSampler selects filtering and wrapping. It is comparable and used
// as part of batch keys.
type TextureSampler struct {
	Filter gputypes.FilterMode
	WrapX  gputypes.AddressMode
	WrapY  gputypes.AddressMode
}

// DefaultSampler returns linear filtering with edge clamping.
func DefaultSampler() TextureSampler {
	return TextureSampler{
		Filter: gputypes.FilterModeLinear,
		WrapX:  gputypes.AddressModeClampToEdge,
		WrapY:  gputypes.AddressModeClampToEdge,
	}
}

// NearestSampler returns nearest filtering with edge clamping, for pixel art.
func NearestSampler() TextureSampler {
	return TextureSampler{
		Filter: gputypes.FilterModeNearest,
		WrapX:  gputypes.AddressModeClampToEdge,
		WrapY:  gputypes.AddressModeClampToEdge,
	}
}

// Normalized replaces undefined fields with the DefaultSampler values.
func (s TextureSampler) Normalized() TextureSampler {
	d := DefaultSampler()
	if s.Filter == gputypes.FilterModeUndefined {
		s.Filter = d.Filter
	}
	if s.WrapX == gputypes.AddressModeUndefined {
		s.WrapX = d.WrapX
	}
	if s.WrapY == gputypes.AddressModeUndefined {
		s.WrapY = d.WrapY
	}
	return s
}
