package recording

import "github.com/gogpu/sprite/render"

// ResourcePool stores the material snapshots referenced by RenderCmds.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	materials []*render.Material
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		materials: make([]*render.Material, 0, 16),
	}
}

// AddMaterial snapshots m and returns its reference. A material unchanged
// since the previous snapshot shares that snapshot's reference.
func (p *ResourcePool) AddMaterial(m *render.Material) MaterialRef {
	if m == nil {
		return MaterialRef(InvalidRef)
	}
	if n := len(p.materials); n > 0 && p.materials[n-1].Equal(m) {
		// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
		return MaterialRef(uint32(n - 1))
	}
	p.materials = append(p.materials, m.Clone())
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return MaterialRef(uint32(len(p.materials) - 1))
}

// GetMaterial returns the snapshot for ref, or nil.
func (p *ResourcePool) GetMaterial(ref MaterialRef) *render.Material {
	if int(ref) >= len(p.materials) {
		return nil
	}
	return p.materials[ref]
}

// MaterialCount returns the number of snapshots in the pool.
func (p *ResourcePool) MaterialCount() int {
	return len(p.materials)
}

// Clear removes all resources from the pool.
func (p *ResourcePool) Clear() {
	p.materials = p.materials[:0]
}

// Clone returns a copy of the pool. Snapshots are immutable and shared.
func (p *ResourcePool) Clone() *ResourcePool {
	clone := &ResourcePool{materials: make([]*render.Material, len(p.materials))}
	copy(clone.materials, p.materials)
	return clone
}
