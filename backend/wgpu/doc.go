// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu is the GPU backend for render, built on the gogpu/wgpu
// hardware abstraction layer.
//
// The backend does not open a device itself. The host hands over its
// device and queue, either directly with New or through a
// gpucontext.DeviceProvider that also exposes the HAL objects:
//
//	b, err := wgpu.NewFromProvider(provider, 1280, 720)
//
// or through the registry, passing the provider in BackendOptions.Device:
//
//	import _ "github.com/gogpu/sprite/backend/wgpu"
//
//	b, err := render.NewBackend("wgpu", render.BackendOptions{
//		Width: 1280, Height: 720, Device: provider,
//	})
//
// WGSL programs are compiled to SPIR-V with naga. Every draw call is
// encoded into its own render pass and submitted immediately; transient
// uniform buffers and bind groups are released once the queue reports the
// submission complete.
//
// The back buffer is an off-screen RGBA8 texture of the requested size.
// Hosts present it with BackBufferView.
package wgpu
