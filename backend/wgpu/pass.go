// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// Render implements render.Backend. The call is recorded into its own
// render pass and submitted.
func (b *Backend) Render(call *render.DrawCall) error {
	target, ok := call.Target.(*Target)
	if !ok || target == nil {
		return ErrForeignResource
	}
	mesh, ok := call.Mesh.(*Mesh)
	if !ok || mesh.backend != b {
		return ErrForeignResource
	}
	shader, ok := call.Material.Shader().(*Shader)
	if !ok || shader.backend != b {
		return ErrForeignResource
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.collect()

	if err := mesh.upload(); err != nil {
		return err
	}
	if mesh.indices == nil || mesh.vertices == nil {
		return nil
	}
	pipeline, err := b.pipeline(shader, mesh)
	if err != nil {
		return err
	}
	group, buffers, err := b.bindGroup(shader, call.Material)
	if err != nil {
		return err
	}
	res := retired{buffers: buffers, group: group}

	vp := call.Viewport
	if !call.HasViewport {
		vp = render.Bounds(target)
	}
	clip := vp.Intersect(render.Bounds(target))
	if call.HasScissor {
		clip = clip.Intersect(call.Scissor)
	}
	x, y, w, h := pixelRect(clip)
	if w == 0 || h == 0 {
		b.release(res)
		return nil
	}

	submission, err := b.encode(target, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(pipeline)
		rp.SetBindGroup(0, group, nil)
		rp.SetVertexBuffer(0, mesh.vertices, 0)
		if mesh.instances != nil && mesh.Instances > 0 {
			rp.SetVertexBuffer(1, mesh.instances, 0)
		}
		rp.SetIndexBuffer(mesh.indices, gputypes.IndexFormatUint32, 0)
		rp.SetViewport(vp.X, vp.Y, vp.W, vp.H, 0, 1)
		rp.SetScissorRect(x, y, w, h)

		instances := uint32(max(call.InstanceCount, 1))
		rp.DrawIndexed(uint32(call.IndexCount), instances, uint32(call.IndexStart), 0, 0)
	}, gputypes.LoadOpLoad, gputypes.Color{})
	if err != nil {
		b.release(res)
		return err
	}
	res.submission = submission
	b.retired = append(b.retired, res)
	return nil
}

// Clear implements render.Backend. Depth and stencil are ignored; targets
// have no such attachments.
func (b *Backend) Clear(target render.Target, c sprite.Color, depth float32, stencil uint8) error {
	t, ok := target.(*Target)
	if !ok || t == nil {
		return ErrForeignResource
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.collect()

	value := gputypes.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
	_, err := b.encode(t, func(hal.RenderPassEncoder) {}, gputypes.LoadOpClear, value)
	return err
}

// encode records one render pass into target and submits it.
func (b *Backend) encode(target *Target, draw func(hal.RenderPassEncoder), load gputypes.LoadOp, value gputypes.Color) (uint64, error) {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "sprite_encoder"})
	if err != nil {
		return 0, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sprite_pass"); err != nil {
		return 0, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "sprite_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target.color.view,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: value,
		}},
	})
	draw(rp)
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return 0, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmd)

	submission, err := b.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		return 0, fmt.Errorf("wgpu: submit: %w", err)
	}
	return submission, nil
}

// bindGroup builds bind group 0 for mat. Value uniforms get one transient
// buffer each; the caller releases them once the submission completes.
func (b *Backend) bindGroup(s *Shader, mat *render.Material) (hal.BindGroup, []hal.Buffer, error) {
	var (
		entries  []gputypes.BindGroupEntry
		buffers  []hal.Buffer
		textures int
		samplers int
	)
	fail := func(err error) (hal.BindGroup, []hal.Buffer, error) {
		b.release(retired{buffers: buffers})
		return nil, nil, err
	}

	for _, u := range s.data.Uniforms {
		switch u.Type {
		case render.UniformTexture2D:
			tex := b.white
			if t, ok := mat.TextureAt(textures).(*Texture); ok && t.view != nil {
				tex = t
			}
			textures++
			entries = append(entries, gputypes.BindGroupEntry{
				Binding:  u.Binding,
				Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()},
			})
		case render.UniformSampler2D:
			smp, err := b.sampler(mat.SamplerAt(samplers))
			if err != nil {
				return fail(err)
			}
			samplers++
			entries = append(entries, gputypes.BindGroupEntry{
				Binding:  u.Binding,
				Resource: gputypes.SamplerBinding{Sampler: smp.NativeHandle()},
			})
		default:
			size := uniformSize(u)
			buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
				Label: u.Name,
				Size:  size,
				Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
			})
			if err != nil {
				return fail(fmt.Errorf("wgpu: create uniform %q: %w", u.Name, err))
			}
			buffers = append(buffers, buf)
			if err := b.queue.WriteBuffer(buf, 0, floatBytes(mat.Value(u.Name), size)); err != nil {
				return fail(fmt.Errorf("wgpu: write uniform %q: %w", u.Name, err))
			}
			entries = append(entries, gputypes.BindGroupEntry{
				Binding:  u.Binding,
				Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Size: size},
			})
		}
	}

	group, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   s.data.Label + "_bind",
		Layout:  s.layout,
		Entries: entries,
	})
	if err != nil {
		return fail(fmt.Errorf("wgpu: create bind group: %w", err))
	}
	return group, buffers, nil
}

func floatBytes(values []float32, size uint64) []byte {
	out := make([]byte, size)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// pixelRect converts r to whole pixels covering it.
func pixelRect(r sprite.Rect) (x, y, w, h uint32) {
	left := math.Floor(float64(r.Left()))
	top := math.Floor(float64(r.Top()))
	right := math.Ceil(float64(r.Right()))
	bottom := math.Ceil(float64(r.Bottom()))
	return uint32(max(left, 0)), uint32(max(top, 0)), uint32(max(right-left, 0)), uint32(max(bottom-top, 0))
}
