package render

import "errors"

var (
	// ErrNilBackend is returned when a Context has no Backend.
	ErrNilBackend = errors.New("render: nil backend")

	// ErrInvalidSize is returned when a resource is requested with a
	// non-positive size.
	ErrInvalidSize = errors.New("render: invalid size")

	// ErrInvalidShader is returned when ShaderData is missing source code.
	ErrInvalidShader = errors.New("render: invalid shader data")

	// ErrUniformNotFound is returned when a Material is asked for a uniform
	// its shader does not declare.
	ErrUniformNotFound = errors.New("render: uniform not found")

	// ErrUniformType is returned when a value is assigned to a uniform of
	// another kind, for example a texture to a float uniform.
	ErrUniformType = errors.New("render: uniform type mismatch")

	// ErrDataSize is returned when uploaded data does not match the size of
	// the destination resource.
	ErrDataSize = errors.New("render: data size mismatch")
)
