// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software is a CPU backend for render.
//
// It rasterises batch geometry into in-memory RGBA framebuffers. Every
// shader is executed as the built-in batch shader: vertices are read with
// render.BatchVertexLayout, projected by the material's u_matrix, and
// shaded with the multiply/wash/fill weights against texture slot 0 and
// sampler slot 0. Blending is straight-alpha source-over.
//
// Large draw calls are split into horizontal bands rasterised in parallel.
// Each band draws the triangles in submission order, so the result matches
// a single pass.
//
// The backend registers itself with render as "software":
//
//	import _ "github.com/gogpu/sprite/backend/software"
//
//	b, err := render.NewBackend("software", render.BackendOptions{Width: 640, Height: 480})
package software
