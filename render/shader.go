package render

import (
	_ "embed"

	"github.com/gogpu/gputypes"
)

// Uniform names every batch-compatible shader exposes.
const (
	UniformTexture = "u_texture"
	UniformSampler = "u_texture_sampler"
	UniformMatrix  = "u_matrix"
)

//go:embed shaders/batch.wgsl
var batchShaderWGSL string

// UniformType is the kind of value a uniform holds.
type UniformType uint8

const (
	UniformNone UniformType = iota
	UniformFloat
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformMat3x2
	UniformMat4x4
	UniformTexture2D
	UniformSampler2D
)

// String returns the uniform type name.
func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "Float"
	case UniformFloat2:
		return "Float2"
	case UniformFloat3:
		return "Float3"
	case UniformFloat4:
		return "Float4"
	case UniformMat3x2:
		return "Mat3x2"
	case UniformMat4x4:
		return "Mat4x4"
	case UniformTexture2D:
		return "Texture2D"
	case UniformSampler2D:
		return "Sampler2D"
	default:
		return "None"
	}
}

// Floats returns the number of float32 values one element occupies, or 0
// for textures and samplers.
func (t UniformType) Floats() int {
	switch t {
	case UniformFloat:
		return 1
	case UniformFloat2:
		return 2
	case UniformFloat3:
		return 3
	case UniformFloat4:
		return 4
	case UniformMat3x2:
		return 6
	case UniformMat4x4:
		return 16
	default:
		return 0
	}
}

// UniformInfo describes one shader uniform.
type UniformInfo struct {
	// Name is the identifier used in the shader source.
	Name string

	// Type is the value kind.
	Type UniformType

	// Binding is the binding index within bind group 0.
	Binding uint32

	// ArrayLength is the number of elements; 0 is treated as 1.
	ArrayLength int
}

// Length returns ArrayLength, treating 0 as 1.
func (u UniformInfo) Length() int {
	return max(u.ArrayLength, 1)
}

// ShaderData is the source of a shader program. For WGSL, Vertex and
// Fragment may hold the same module.
type ShaderData struct {
	Label string

	Vertex        string
	Fragment      string
	VertexEntry   string
	FragmentEntry string
	Uniforms      []UniformInfo
}

// BatchShaderData returns the built-in batch program. Its uniforms are
// UniformMatrix, UniformTexture and UniformSampler.
func BatchShaderData() ShaderData {
	return ShaderData{
		Label:         "sprite.batch",
		Vertex:        batchShaderWGSL,
		Fragment:      batchShaderWGSL,
		VertexEntry:   "vs_main",
		FragmentEntry: "fs_main",
		Uniforms: []UniformInfo{
			{Name: UniformMatrix, Type: UniformMat4x4, Binding: 0},
			{Name: UniformTexture, Type: UniformTexture2D, Binding: 1},
			{Name: UniformSampler, Type: UniformSampler2D, Binding: 2},
		},
	}
}

// Shader is a compiled program.
type Shader interface {
	// Uniforms returns the uniforms the program declares, in binding order.
	Uniforms() []UniformInfo
}

// CompiledShader is a Shader that only carries its ShaderData. Backends
// that interpret the batch contract directly return it from CreateShader.
type CompiledShader struct {
	Data ShaderData
}

// Uniforms implements Shader.
func (s *CompiledShader) Uniforms() []UniformInfo { return s.Data.Uniforms }

var _ Shader = (*CompiledShader)(nil)

// BatchVertexSize is the byte stride of one batch vertex.
const BatchVertexSize = 24

// BatchVertexLayout describes the vertex buffer the batch shader reads:
//
//	location 0: position  float32x2  offset 0
//	location 1: texcoord  float32x2  offset 8
//	location 2: color     unorm8x4   offset 16
//	location 3: mult, wash, fill, pad  unorm8x4  offset 20
func BatchVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: BatchVertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: gputypes.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
			{Format: gputypes.VertexFormatUnorm8x4, Offset: 20, ShaderLocation: 3},
		},
	}
}
