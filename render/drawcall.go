// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/sprite"
)

// DrawCall is one indexed draw. It is assembled per draw, consumed by
// Perform and not retained.
type DrawCall struct {
	// Target receives the pixels. Nil means the back buffer.
	Target Target

	// Mesh supplies vertices and indices.
	Mesh Mesh

	// Material supplies the shader and its bindings.
	Material *Material

	// HasViewport selects Viewport; otherwise the full target is used.
	HasViewport bool
	Viewport    sprite.Rect

	// HasScissor enables the scissor test with Scissor.
	HasScissor bool
	Scissor    sprite.Rect

	// IndexStart and IndexCount select the index range to draw.
	IndexStart int
	IndexCount int

	// InstanceCount is the number of instances; 0 draws without instancing.
	InstanceCount int
}

// Perform validates the call and hands a clamped copy to ctx.Backend.
//
// Recoverable problems never fail the frame:
//   - a nil Target falls back to the back buffer
//   - an index range past the end of the mesh is trimmed, and a start past
//     the end makes the call a no-op
//   - InstanceCount is clamped to the mesh's instances
//   - Viewport and Scissor are intersected with the target bounds
//
// Each of these logs a warning when ctx.Dev is set. Errors come only from
// a missing backend or from the backend itself.
func (c *DrawCall) Perform(ctx *Context) error {
	b, err := ctx.backend()
	if err != nil {
		return err
	}
	dev := ctx.Dev
	pass := *c

	if pass.Mesh == nil {
		sprite.DevWarn(dev, "render: draw call has no mesh; skipping")
		return nil
	}
	if pass.Material == nil || pass.Material.Shader() == nil {
		sprite.DevWarn(dev, "render: draw call has no material; skipping")
		return nil
	}

	if pass.Target == nil {
		pass.Target = b.BackBuffer()
		sprite.DevWarn(dev, "render: trying to draw with an invalid target; falling back to the back buffer")
	}

	indices := pass.Mesh.IndexCount()
	if pass.IndexStart < 0 {
		pass.IndexStart = 0
	}
	if pass.IndexStart+pass.IndexCount > indices {
		sprite.DevWarn(dev, "render: trying to draw more indices than exist in the index buffer; trimming",
			"start", pass.IndexStart, "count", pass.IndexCount, "available", indices)
		if pass.IndexStart >= indices {
			return nil
		}
		pass.IndexCount = indices - pass.IndexStart
	}
	if pass.IndexCount <= 0 {
		return nil
	}

	if instances := pass.Mesh.InstanceCount(); pass.InstanceCount > instances {
		sprite.DevWarn(dev, "render: trying to draw more instances than exist in the instance buffer; trimming",
			"count", pass.InstanceCount, "available", instances)
		pass.InstanceCount = instances
	}

	bounds := Bounds(pass.Target)
	if !pass.HasViewport {
		pass.Viewport = bounds
		pass.HasViewport = true
	} else {
		pass.Viewport = pass.Viewport.Intersect(bounds)
	}
	if pass.HasScissor {
		pass.Scissor = pass.Scissor.Intersect(bounds)
	}

	return b.Render(&pass)
}
