// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sprite/render"
)

// Shader is a compiled program with its bind group layout. All uniforms
// live in bind group 0 at the binding their UniformInfo names.
type Shader struct {
	backend *Backend
	data    render.ShaderData

	vertex   hal.ShaderModule
	fragment hal.ShaderModule
	layout   hal.BindGroupLayout
	pipe     hal.PipelineLayout
}

var _ render.Shader = (*Shader)(nil)

// Uniforms implements render.Shader.
func (s *Shader) Uniforms() []render.UniformInfo { return s.data.Uniforms }

// CreateShader implements render.Backend. Vertex and fragment sources are
// WGSL; identical sources share one module.
func (b *Backend) CreateShader(data render.ShaderData) (render.Shader, error) {
	if data.Vertex == "" || data.Fragment == "" {
		return nil, render.ErrInvalidShader
	}
	for _, u := range data.Uniforms {
		if (u.Type == render.UniformTexture2D || u.Type == render.UniformSampler2D) && u.Length() > 1 {
			return nil, fmt.Errorf("%w: %q: arrays of %v are not supported", render.ErrInvalidShader, u.Name, u.Type)
		}
	}

	s := &Shader{backend: b, data: data}
	var err error
	if s.vertex, err = b.compile(data.Label+"_vs", data.Vertex); err != nil {
		return nil, err
	}
	s.fragment = s.vertex
	if data.Fragment != data.Vertex {
		if s.fragment, err = b.compile(data.Label+"_fs", data.Fragment); err != nil {
			s.Destroy()
			return nil, err
		}
	}

	s.layout, err = b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   data.Label + "_layout",
		Entries: layoutEntries(data.Uniforms),
	})
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	s.pipe, err = b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            data.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.layout},
	})
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	return s, nil
}

// compile translates WGSL to SPIR-V and creates a shader module.
func (b *Backend) compile(label, wgsl string) (hal.ShaderModule, error) {
	spirv, err := compileSPIRV(wgsl)
	if err != nil {
		return nil, fmt.Errorf("wgpu: %s: %w", label, err)
	}
	module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module %s: %w", label, err)
	}
	return module, nil
}

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	code, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}

func layoutEntries(uniforms []render.UniformInfo) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(uniforms))
	for _, u := range uniforms {
		e := gputypes.BindGroupLayoutEntry{Binding: u.Binding}
		switch u.Type {
		case render.UniformTexture2D:
			e.Visibility = gputypes.ShaderStageFragment
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case render.UniformSampler2D:
			e.Visibility = gputypes.ShaderStageFragment
			e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		default:
			e.Visibility = gputypes.ShaderStageVertex | gputypes.ShaderStageFragment
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		}
		entries = append(entries, e)
	}
	return entries
}

// uniformSize returns the byte size of a value uniform's buffer, rounded
// up to the 16-byte uniform alignment.
func uniformSize(u render.UniformInfo) uint64 {
	n := uint64(u.Type.Floats()*u.Length()) * 4
	return (n + 15) &^ 15
}

// Destroy releases the shader's pipelines, layouts and modules.
func (s *Shader) Destroy() {
	b := s.backend
	b.mu.Lock()
	for k, p := range b.pipelines {
		if k.shader == s {
			b.device.DestroyRenderPipeline(p)
			delete(b.pipelines, k)
		}
	}
	b.mu.Unlock()

	if s.pipe != nil {
		b.device.DestroyPipelineLayout(s.pipe)
		s.pipe = nil
	}
	if s.layout != nil {
		b.device.DestroyBindGroupLayout(s.layout)
		s.layout = nil
	}
	if s.fragment != nil && s.fragment != s.vertex {
		b.device.DestroyShaderModule(s.fragment)
	}
	if s.vertex != nil {
		b.device.DestroyShaderModule(s.vertex)
	}
	s.vertex, s.fragment = nil, nil
}

// pipelineKey identifies a render pipeline by program and vertex input.
type pipelineKey struct {
	shader    *Shader
	vertex    string
	instanced string
}

func layoutKey(l gputypes.VertexBufferLayout) string {
	if l.ArrayStride == 0 {
		return ""
	}
	return fmt.Sprint(l.ArrayStride, l.StepMode, l.Attributes)
}

// pipeline returns the cached pipeline drawing mesh with s. The caller
// must hold b.mu.
func (b *Backend) pipeline(s *Shader, mesh *Mesh) (hal.RenderPipeline, error) {
	key := pipelineKey{
		shader:    s,
		vertex:    layoutKey(mesh.VertexLayout),
		instanced: layoutKey(mesh.InstanceLayout),
	}
	if p, ok := b.pipelines[key]; ok {
		return p, nil
	}

	buffers := []gputypes.VertexBufferLayout{mesh.VertexLayout}
	if key.instanced != "" {
		inst := mesh.InstanceLayout
		inst.StepMode = gputypes.VertexStepModeInstance
		buffers = append(buffers, inst)
	}
	blend := gputypes.BlendStateAlpha()
	p, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  s.data.Label + "_pipeline",
		Layout: s.pipe,
		Vertex: hal.VertexState{
			Module:     s.vertex,
			EntryPoint: entry(s.data.VertexEntry, "vs_main"),
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     s.fragment,
			EntryPoint: entry(s.data.FragmentEntry, "fs_main"),
			Targets: []gputypes.ColorTargetState{{
				Format:    gputypes.TextureFormatRGBA8Unorm,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create pipeline: %w", err)
	}
	b.pipelines[key] = p
	return p, nil
}

func entry(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
