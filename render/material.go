package render

import (
	"fmt"
	"slices"

	"github.com/gogpu/sprite"
)

// Material binds textures, samplers and uniform values to a Shader.
//
// Texture and sampler slots are numbered across all texture (respectively
// sampler) uniforms in declaration order, counting array elements. Float
// values are stored tightly packed in declaration order.
type Material struct {
	shader   Shader
	textures []Texture
	samplers []TextureSampler
	data     []float32
}

// NewMaterial creates a material for shader with every slot empty and
// every value zero.
func NewMaterial(shader Shader) *Material {
	m := &Material{shader: shader}
	if shader == nil {
		return m
	}
	var textures, samplers, floats int
	for _, u := range shader.Uniforms() {
		switch u.Type {
		case UniformTexture2D:
			textures += u.Length()
		case UniformSampler2D:
			samplers += u.Length()
		default:
			floats += u.Type.Floats() * u.Length()
		}
	}
	m.textures = make([]Texture, textures)
	m.samplers = make([]TextureSampler, samplers)
	m.data = make([]float32, floats)
	return m
}

// Shader returns the material's shader.
func (m *Material) Shader() Shader { return m.shader }

// find locates a uniform by name and returns it together with the slot or
// float offset of its first element.
func (m *Material) find(name string) (UniformInfo, int, bool) {
	if m.shader == nil {
		return UniformInfo{}, 0, false
	}
	var textures, samplers, floats int
	for _, u := range m.shader.Uniforms() {
		var offset int
		switch u.Type {
		case UniformTexture2D:
			offset = textures
			textures += u.Length()
		case UniformSampler2D:
			offset = samplers
			samplers += u.Length()
		default:
			offset = floats
			floats += u.Type.Floats() * u.Length()
		}
		if u.Name == name {
			return u, offset, true
		}
	}
	return UniformInfo{}, 0, false
}

// HasValue reports whether the shader declares a uniform called name.
func (m *Material) HasValue(name string) bool {
	_, _, ok := m.find(name)
	return ok
}

// SetTexture binds tex to element index of the texture uniform name.
func (m *Material) SetTexture(name string, tex Texture, index int) error {
	_, slot, err := m.lookup(name, UniformTexture2D, index)
	if err != nil {
		return err
	}
	m.textures[slot+index] = tex
	return nil
}

// SetTextureAt binds tex to an absolute texture slot.
func (m *Material) SetTextureAt(slot int, tex Texture) error {
	if slot < 0 || slot >= len(m.textures) {
		return fmt.Errorf("%w: texture slot %d", ErrUniformNotFound, slot)
	}
	m.textures[slot] = tex
	return nil
}

// Texture returns the texture bound to element index of uniform name.
func (m *Material) Texture(name string, index int) Texture {
	_, slot, err := m.lookup(name, UniformTexture2D, index)
	if err != nil {
		return nil
	}
	return m.textures[slot+index]
}

// TextureAt returns the texture in an absolute slot, or nil.
func (m *Material) TextureAt(slot int) Texture {
	if slot < 0 || slot >= len(m.textures) {
		return nil
	}
	return m.textures[slot]
}

// Textures returns all texture slots. The slice is owned by the material.
func (m *Material) Textures() []Texture { return m.textures }

// SetSampler sets element index of the sampler uniform name.
func (m *Material) SetSampler(name string, s TextureSampler, index int) error {
	_, slot, err := m.lookup(name, UniformSampler2D, index)
	if err != nil {
		return err
	}
	m.samplers[slot+index] = s
	return nil
}

// SetSamplerAt sets an absolute sampler slot.
func (m *Material) SetSamplerAt(slot int, s TextureSampler) error {
	if slot < 0 || slot >= len(m.samplers) {
		return fmt.Errorf("%w: sampler slot %d", ErrUniformNotFound, slot)
	}
	m.samplers[slot] = s
	return nil
}

// SamplerAt returns the sampler in an absolute slot.
func (m *Material) SamplerAt(slot int) TextureSampler {
	if slot < 0 || slot >= len(m.samplers) {
		return TextureSampler{}
	}
	return m.samplers[slot]
}

// Samplers returns all sampler slots. The slice is owned by the material.
func (m *Material) Samplers() []TextureSampler { return m.samplers }

// SetValue copies values into the float uniform name. Fewer values than the
// uniform holds leave the remainder untouched.
func (m *Material) SetValue(name string, values []float32) error {
	u, offset, ok := m.find(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUniformNotFound, name)
	}
	size := u.Type.Floats() * u.Length()
	if size == 0 {
		return fmt.Errorf("%w: %q is %v", ErrUniformType, name, u.Type)
	}
	if len(values) > size {
		return fmt.Errorf("%w: %q holds %d floats, got %d", ErrDataSize, name, size, len(values))
	}
	copy(m.data[offset:offset+size], values)
	return nil
}

// SetMatrix stores m in the Mat4x4 uniform name.
func (m *Material) SetMatrix(name string, mat sprite.Mat4x4) error {
	f := mat.Floats()
	return m.SetValue(name, f[:])
}

// Value returns the floats of uniform name, or nil.
func (m *Material) Value(name string) []float32 {
	u, offset, ok := m.find(name)
	if !ok || u.Type.Floats() == 0 {
		return nil
	}
	return m.data[offset : offset+u.Type.Floats()*u.Length()]
}

// Data returns all float values packed in declaration order.
func (m *Material) Data() []float32 { return m.data }

// Clone returns a material with the same shader and a copy of every
// binding and value.
func (m *Material) Clone() *Material {
	return &Material{
		shader:   m.shader,
		textures: slices.Clone(m.textures),
		samplers: slices.Clone(m.samplers),
		data:     slices.Clone(m.data),
	}
}

// Equal reports whether o has the same shader, bindings and values.
func (m *Material) Equal(o *Material) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	return m.shader == o.shader &&
		slices.Equal(m.textures, o.textures) &&
		slices.Equal(m.samplers, o.samplers) &&
		slices.Equal(m.data, o.data)
}

func (m *Material) lookup(name string, want UniformType, index int) (UniformInfo, int, error) {
	u, slot, ok := m.find(name)
	if !ok {
		return UniformInfo{}, 0, fmt.Errorf("%w: %q", ErrUniformNotFound, name)
	}
	if u.Type != want {
		return UniformInfo{}, 0, fmt.Errorf("%w: %q is %v, not %v", ErrUniformType, name, u.Type, want)
	}
	if index < 0 || index >= u.Length() {
		return UniformInfo{}, 0, fmt.Errorf("%w: %q index %d", ErrUniformNotFound, name, index)
	}
	return u, slot, nil
}
