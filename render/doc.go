// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render is the backend-neutral GPU layer of the engine.
//
// The core never creates graphics API objects itself. It asks a Backend for
// resources and hands it DrawCalls to execute:
//
//   - Texture: a 2D image on the device, optionally owned by a Target
//   - Target: an off-screen framebuffer, or the back buffer
//   - Mesh: vertex, index and instance buffers
//   - Shader: a compiled program plus the uniforms it exposes
//   - Material: a Shader with bound textures, samplers and uniform values
//   - DrawCall: one indexed draw, validated and clamped by Perform
//
// # Backends
//
// Backends register themselves by name, following the database/sql driver
// pattern:
//
//	import _ "github.com/gogpu/sprite/backend/software"
//
//	backend, err := render.NewBackend("software", render.BackendOptions{Width: 640, Height: 480})
//
// A Context threads the backend and the development flag through every call
// instead of relying on a global application object.
//
// # Batch shader contract
//
// Shaders used by the batcher expose three uniforms with fixed names:
// UniformTexture, UniformSampler and UniformMatrix. BatchShaderData returns
// the built-in WGSL program satisfying that contract.
package render
