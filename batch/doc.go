// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package batch collects immediate-mode drawing calls into a small number
// of indexed draw calls.
//
// A Batch owns one growable vertex and index buffer. Every primitive
// (Rect, Line, Circle, Tex, Stex, Str and friends) is transformed on the
// CPU by the current matrix and appended to that buffer. Consecutive
// primitives sharing the same key (layer, material, texture, sampler,
// scissor) extend the same DrawBatch; a change of key opens a new one.
//
// Batches are kept sorted by layer. A primitive drawn on a lower layer
// than earlier ones is spliced in after the last batch whose layer is less
// than or equal to its own, so Render paints layers in ascending order and
// equal layers in submission order.
//
// Typical frame:
//
//	b := batch.New()
//	b.Rect(sprite.R(10, 10, 100, 50), sprite.Red)
//	b.PushLayer(-1)
//	b.Tex(background, sprite.Vec2{}, sprite.White)
//	b.PopLayer()
//	if err := b.RenderDefault(ctx, nil); err != nil {
//		return err
//	}
//	b.Clear()
//
// A Batch is not safe for concurrent use.
package batch
