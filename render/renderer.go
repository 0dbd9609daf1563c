package render

// Renderer is implemented by backends that can report what they are.
type Renderer interface {
	Backend

	// Name returns a short backend identifier, e.g. "software".
	Name() string
}

// Capabilities describes the features a backend supports.
type Capabilities struct {
	// IsGPU indicates the backend draws on a GPU device.
	IsGPU bool

	// TextureArrays indicates shaders may declare texture and sampler
	// uniforms with more than one element.
	TextureArrays bool

	// CustomShaders indicates ShaderData sources are compiled and run.
	// Backends without it draw every mesh with the batch shader.
	CustomShaders bool

	// MaxTextureSize is the largest texture dimension (0 = unlimited).
	MaxTextureSize int
}

// CapableRenderer is an optional interface for backends that can report
// their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the backend's capabilities.
	Capabilities() Capabilities
}

// CapabilitiesOf returns the capabilities of backend, or the zero value
// when it does not report any.
func CapabilitiesOf(backend Backend) Capabilities {
	if c, ok := backend.(CapableRenderer); ok {
		return c.Capabilities()
	}
	return Capabilities{}
}
