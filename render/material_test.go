package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
)

func testShader() *CompiledShader {
	return &CompiledShader{Data: ShaderData{
		Vertex:   "v",
		Fragment: "f",
		Uniforms: []UniformInfo{
			{Name: "u_tint", Type: UniformFloat4},
			{Name: "u_textures", Type: UniformTexture2D, ArrayLength: 2},
			{Name: "u_matrix", Type: UniformMat4x4},
			{Name: "u_mask", Type: UniformTexture2D},
			{Name: "u_sampler", Type: UniformSampler2D},
		},
	}}
}

func TestMaterialSlots(t *testing.T) {
	m := NewMaterial(testShader())
	if got := len(m.Textures()); got != 3 {
		t.Errorf("len(Textures()) = %d, want 3", got)
	}
	if got := len(m.Samplers()); got != 1 {
		t.Errorf("len(Samplers()) = %d, want 1", got)
	}
	if got := len(m.Data()); got != 20 {
		t.Errorf("len(Data()) = %d, want 20", got)
	}

	a := &fakeTexture{w: 1, h: 1}
	b := &fakeTexture{w: 2, h: 2}
	if err := m.SetTexture("u_textures", b, 1); err != nil {
		t.Fatalf("SetTexture() error = %v", err)
	}
	if err := m.SetTexture("u_mask", a, 0); err != nil {
		t.Fatalf("SetTexture() error = %v", err)
	}
	if m.TextureAt(1) != b || m.TextureAt(2) != a {
		t.Errorf("texture slots = %v, want [nil b a]", m.Textures())
	}
	if m.Texture("u_textures", 1) != b {
		t.Error("Texture(u_textures, 1) did not return the bound texture")
	}
}

func TestMaterialValues(t *testing.T) {
	m := NewMaterial(testShader())
	if err := m.SetValue("u_tint", []float32{1, 2, 3, 4}); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	if err := m.SetMatrix("u_matrix", sprite.Identity4()); err != nil {
		t.Fatalf("SetMatrix() error = %v", err)
	}
	if got := m.Value("u_tint"); len(got) != 4 || got[3] != 4 {
		t.Errorf("Value(u_tint) = %v", got)
	}
	if got := m.Data()[4]; got != 1 {
		t.Errorf("matrix[0] packed at 4 = %v, want 1", got)
	}

	tests := []struct {
		name string
		err  error
		call func() error
	}{
		{"unknown", ErrUniformNotFound, func() error { return m.SetValue("nope", []float32{1}) }},
		{"too long", ErrDataSize, func() error { return m.SetValue("u_tint", make([]float32, 5)) }},
		{"texture as value", ErrUniformType, func() error { return m.SetValue("u_mask", []float32{1}) }},
		{"value as texture", ErrUniformType, func() error { return m.SetTexture("u_tint", nil, 0) }},
		{"index out of range", ErrUniformNotFound, func() error { return m.SetTexture("u_mask", nil, 1) }},
		{"bad slot", ErrUniformNotFound, func() error { return m.SetTextureAt(3, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestMaterialSampler(t *testing.T) {
	m := NewMaterial(testShader())
	s := NearestSampler()
	if err := m.SetSampler("u_sampler", s, 0); err != nil {
		t.Fatal(err)
	}
	if m.SamplerAt(0) != s {
		t.Errorf("SamplerAt(0) = %v, want %v", m.SamplerAt(0), s)
	}
	if !m.HasValue("u_sampler") || m.HasValue("u_other") {
		t.Error("HasValue() wrong")
	}
}

func TestSamplerNormalized(t *testing.T) {
	got := TextureSampler{Filter: gputypes.FilterModeNearest}.Normalized()
	want := TextureSampler{
		Filter: gputypes.FilterModeNearest,
		WrapX:  gputypes.AddressModeClampToEdge,
		WrapY:  gputypes.AddressModeClampToEdge,
	}
	if got != want {
		t.Errorf("Normalized() = %v, want %v", got, want)
	}
}

func TestMaterialClone(t *testing.T) {
	m := NewMaterial(testShader())
	tex := &fakeTexture{w: 4, h: 4}
	if err := m.SetTexture("u_mask", tex, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.SetValue("u_tint", []float32{1, 1, 1, 1}); err != nil {
		t.Fatal(err)
	}

	c := m.Clone()
	if !c.Equal(m) {
		t.Fatal("Clone().Equal(original) = false, want true")
	}
	if err := m.SetValue("u_tint", []float32{0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if c.Equal(m) {
		t.Error("clone changed with the original")
	}
	if got := c.Value("u_tint")[0]; got != 1 {
		t.Errorf("clone u_tint[0] = %v, want 1", got)
	}
	if c.Texture("u_mask", 0) != tex {
		t.Error("clone lost the texture binding")
	}
}
