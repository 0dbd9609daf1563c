// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sprite is the core of a small 2D rendering engine.
//
// The root package holds the value types shared by every layer: vectors,
// rectangles, affine and projection matrices, packed colors, application
// configuration and the package logger.
//
// The engine itself is split across sub-packages:
//
//   - render: backend-neutral GPU resources (textures, targets, meshes,
//     shaders, materials) and the DrawCall contract a backend executes
//   - batch: an immediate-mode batcher that turns shapes, sprites and text
//     into a minimal, layer-sorted list of draw calls
//   - text: bitmap fonts (Font) and size-specific baked fonts (SpriteFont)
//     with kerning and multi-line measurement
//   - text/bake: turns a TrueType/OpenType file into a Font description and
//     atlas image
//   - backend/software and backend/wgpu: Backend implementations
//
// A frame looks like:
//
//	ctx := render.NewContext(backend, cfg.Dev)
//	b := batch.New(batch.WithDevMode(cfg.Dev))
//
//	b.Rect(sprite.R(10, 10, 100, 50), sprite.Red)
//	b.Str(font, "hello", sprite.V2(10, 80), sprite.White)
//
//	if err := b.RenderDefault(ctx, nil); err != nil {
//	    return err
//	}
//	b.Clear()
//
// # Logging
//
// Nothing is logged by default. Call SetLogger to receive diagnostics;
// development-mode warnings additionally require the dev flag.
package sprite
