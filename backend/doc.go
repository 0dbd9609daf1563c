// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects a render backend by availability.
//
// Importing it registers every built-in backend with the render registry:
//
//	import "github.com/gogpu/sprite/backend"
//
//	b, err := backend.Default(render.BackendOptions{Width: 800, Height: 600, Device: host})
//
// Default tries the backends in Priority order and returns the first one
// that can be created with the given options. The wgpu backend needs a
// host device, so without one the software backend is chosen.
package backend
