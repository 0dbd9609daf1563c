package sprite

import "math"

// Mat3x2 is a 2D affine transformation:
//
//	| a  b  c |
//	| d  e  f |
//
// which maps
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Mat3x2 struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Mat3x2 {
	return Mat3x2{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Mat3x2 {
	return Mat3x2{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Mat3x2 {
	return Mat3x2{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Mat3x2 {
	sin, cos := math.Sincos(float64(angle))
	return Mat3x2{
		A: float32(cos), B: float32(-sin),
		D: float32(sin), E: float32(cos),
	}
}

// FromTransform builds the matrix used to place sprites: translate by
// -origin, scale, rotate, then translate to pos.
func FromTransform(pos, origin, scale Vec2, rotation float32) Mat3x2 {
	m := Identity()
	if origin.X != 0 || origin.Y != 0 {
		m = Translate(-origin.X, -origin.Y)
	}
	if scale.X != 1 || scale.Y != 1 {
		m = Scale(scale.X, scale.Y).Multiply(m)
	}
	if rotation != 0 {
		m = Rotate(rotation).Multiply(m)
	}
	if pos.X != 0 || pos.Y != 0 {
		m = Translate(pos.X, pos.Y).Multiply(m)
	}
	return m
}

// Multiply returns m * other, which applies other first and then m.
func (m Mat3x2) Multiply(other Mat3x2) Mat3x2 {
	return Mat3x2{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms a point.
func (m Mat3x2) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Invert returns the inverse matrix, or the identity when m is singular.
func (m Mat3x2) Invert() Mat3x2 {
	det := m.A*m.E - m.B*m.D
	if math.Abs(float64(det)) < 1e-10 {
		return Identity()
	}
	inv := 1 / det
	return Mat3x2{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Mat3x2) IsIdentity() bool {
	return m == Identity()
}

// Mat4x4 is a column-major 4x4 matrix, laid out the way WGSL and GLSL
// expect mat4x4 uniforms. Cols[i] is column i.
type Mat4x4 struct {
	Cols [4][4]float32
}

// Identity4 returns the 4x4 identity.
func Identity4() Mat4x4 {
	var m Mat4x4
	for i := range 4 {
		m.Cols[i][i] = 1
	}
	return m
}

// OrthoOffCenter creates an orthographic projection mapping the given
// bounds to clip space.
func OrthoOffCenter(left, right, bottom, top, near, far float32) Mat4x4 {
	m := Identity4()
	m.Cols[0][0] = 2 / (right - left)
	m.Cols[1][1] = 2 / (top - bottom)
	m.Cols[2][2] = 1 / (near - far)
	m.Cols[3][0] = (left + right) / (left - right)
	m.Cols[3][1] = (top + bottom) / (bottom - top)
	m.Cols[3][2] = near / (near - far)
	return m
}

// Ortho creates the projection for a width x height pixel space with the
// origin in the top-left corner and y growing downward.
func Ortho(width, height float32) Mat4x4 {
	return OrthoOffCenter(0, width, height, 0, 0.01, 1000)
}

// Multiply returns m * other.
func (m Mat4x4) Multiply(other Mat4x4) Mat4x4 {
	var out Mat4x4
	for c := range 4 {
		for r := range 4 {
			var sum float32
			for k := range 4 {
				sum += m.Cols[k][r] * other.Cols[c][k]
			}
			out.Cols[c][r] = sum
		}
	}
	return out
}

// Project transforms p (z=0, w=1) and returns clip-space x and y after the
// perspective divide.
func (m Mat4x4) Project(p Vec2) Vec2 {
	x := m.Cols[0][0]*p.X + m.Cols[1][0]*p.Y + m.Cols[3][0]
	y := m.Cols[0][1]*p.X + m.Cols[1][1]*p.Y + m.Cols[3][1]
	w := m.Cols[0][3]*p.X + m.Cols[1][3]*p.Y + m.Cols[3][3]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Vec2{x, y}
}

// Floats returns the matrix as 16 floats in column-major order.
func (m Mat4x4) Floats() [16]float32 {
	var out [16]float32
	for c := range 4 {
		copy(out[c*4:], m.Cols[c][:])
	}
	return out
}
