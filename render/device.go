// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
)

// DeviceHandle provides GPU device access from the host application.
//
// The engine RECEIVES the device from the host, it does not create one.
// GPU backends built on a host device accept a DeviceHandle through
// BackendOptions.
type DeviceHandle = gpucontext.DeviceProvider

// Backend creates device resources and executes draw calls. It is the only
// component that talks to a graphics API.
//
// Implementations are not required to be safe for concurrent use; the
// engine drives a backend from a single goroutine per frame.
type Backend interface {
	// CreateTexture allocates a width x height texture in the given format.
	CreateTexture(width, height int, format gputypes.TextureFormat) (Texture, error)

	// CreateTarget allocates an off-screen render target with one RGBA8
	// color attachment.
	CreateTarget(width, height int) (Target, error)

	// CreateMesh allocates an empty mesh.
	CreateMesh() (Mesh, error)

	// CreateShader compiles a shader program.
	CreateShader(data ShaderData) (Shader, error)

	// BackBuffer returns the default target.
	BackBuffer() Target

	// Render executes a draw call. Perform validates and clamps the call
	// before handing it over, so backends may trust its ranges.
	Render(call *DrawCall) error

	// Clear fills target's color attachments with c. depth and stencil are
	// applied where the target has such attachments.
	Clear(target Target, c sprite.Color, depth float32, stencil uint8) error
}

// BackendOptions configures a backend created through the registry.
type BackendOptions struct {
	// Width and Height are the back buffer size.
	Width, Height int

	// Device is the host GPU device. CPU backends ignore it.
	Device DeviceHandle
}
