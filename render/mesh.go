package render

import "github.com/gogpu/gputypes"

// Mesh holds the vertex, index and instance buffers a DrawCall draws from.
// Indices are always 32-bit.
type Mesh interface {
	// IndexData replaces the index buffer.
	IndexData(indices []uint32) error

	// VertexData replaces the vertex buffer with count vertices laid out
	// according to layout.
	VertexData(layout gputypes.VertexBufferLayout, data []byte, count int) error

	// InstanceData replaces the instance buffer.
	InstanceData(layout gputypes.VertexBufferLayout, data []byte, count int) error

	// IndexCount returns the number of indices uploaded.
	IndexCount() int

	// VertexCount returns the number of vertices uploaded.
	VertexCount() int

	// InstanceCount returns the number of instances uploaded.
	InstanceCount() int
}

// MeshData is a CPU copy of mesh contents. Backends without device memory
// embed it to implement Mesh; GPU backends use it to stage uploads.
type MeshData struct {
	Indices []uint32

	VertexLayout gputypes.VertexBufferLayout
	VertexBytes  []byte
	Vertices     int

	InstanceLayout gputypes.VertexBufferLayout
	InstanceBytes  []byte
	Instances      int
}

// IndexData implements Mesh.
func (m *MeshData) IndexData(indices []uint32) error {
	m.Indices = append(m.Indices[:0], indices...)
	return nil
}

// VertexData implements Mesh.
func (m *MeshData) VertexData(layout gputypes.VertexBufferLayout, data []byte, count int) error {
	if err := checkLayout(layout, data, count); err != nil {
		return err
	}
	m.VertexLayout = layout
	m.VertexBytes = append(m.VertexBytes[:0], data...)
	m.Vertices = count
	return nil
}

// InstanceData implements Mesh.
func (m *MeshData) InstanceData(layout gputypes.VertexBufferLayout, data []byte, count int) error {
	if err := checkLayout(layout, data, count); err != nil {
		return err
	}
	m.InstanceLayout = layout
	m.InstanceBytes = append(m.InstanceBytes[:0], data...)
	m.Instances = count
	return nil
}

// IndexCount implements Mesh.
func (m *MeshData) IndexCount() int { return len(m.Indices) }

// VertexCount implements Mesh.
func (m *MeshData) VertexCount() int { return m.Vertices }

// InstanceCount implements Mesh.
func (m *MeshData) InstanceCount() int { return m.Instances }

var _ Mesh = (*MeshData)(nil)

func checkLayout(layout gputypes.VertexBufferLayout, data []byte, count int) error {
	if count < 0 || uint64(len(data)) != layout.ArrayStride*uint64(count) {
		return ErrDataSize
	}
	return nil
}
