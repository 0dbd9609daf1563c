package batch

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// Vertex is one batch vertex. Mult, Wash and Fill select how the fragment
// combines the sampled texel t with Color c:
//
//	out = Mult*t*c + Wash*t.a*c + Fill*c
//
// with each weight mapped from 0..255 to 0..1. Textured primitives use
// the Batch's texture weights (255, 0, 0 by default); solid shapes use
// (0, 0, 255). The weights are summed, not exclusive.
type Vertex struct {
	Pos   sprite.Vec2
	Tex   sprite.Vec2
	Color sprite.Color
	Mult  uint8
	Wash  uint8
	Fill  uint8
	Pad   uint8
}

// encodeVertices serializes vertices in render.BatchVertexLayout order.
func encodeVertices(dst []byte, vertices []Vertex) []byte {
	n := len(vertices) * render.BatchVertexSize
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range vertices {
		buf := dst[i*render.BatchVertexSize:]
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Pos.X))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Pos.Y))
		binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Tex.X))
		binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Tex.Y))
		buf[16], buf[17], buf[18], buf[19] = v.Color.R, v.Color.G, v.Color.B, v.Color.A
		buf[20], buf[21], buf[22], buf[23] = v.Mult, v.Wash, v.Fill, v.Pad
	}
	return dst
}
