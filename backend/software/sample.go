package software

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite/render"
)

// sampler reads a texture with normalized coordinates. A nil texture
// samples opaque white.
type sampler struct {
	tex *Texture
	cfg render.TextureSampler
}

func newSampler(tex *Texture, cfg render.TextureSampler) sampler {
	return sampler{tex: tex, cfg: cfg}
}

func (s sampler) sample(u, v float32) [4]float32 {
	if s.tex == nil || s.tex.width == 0 || s.tex.height == 0 {
		return [4]float32{1, 1, 1, 1}
	}
	x := u*float32(s.tex.width) - 0.5
	y := v*float32(s.tex.height) - 0.5
	if s.cfg.Filter != gputypes.FilterModeLinear {
		return s.texel(int(math.Floor(float64(x+0.5))), int(math.Floor(float64(y+0.5))))
	}

	x0 := float32(math.Floor(float64(x)))
	y0 := float32(math.Floor(float64(y)))
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)
	t00 := s.texel(ix, iy)
	t10 := s.texel(ix+1, iy)
	t01 := s.texel(ix, iy+1)
	t11 := s.texel(ix+1, iy+1)
	var out [4]float32
	for i := range out {
		top := t00[i] + (t10[i]-t00[i])*fx
		bottom := t01[i] + (t11[i]-t01[i])*fx
		out[i] = top + (bottom-top)*fy
	}
	return out
}

func (s sampler) texel(x, y int) [4]float32 {
	x = wrap(x, s.tex.width, s.cfg.WrapX)
	y = wrap(y, s.tex.height, s.cfg.WrapY)
	return s.tex.texel(x, y)
}

// wrap maps i into [0, n) according to mode.
func wrap(i, n int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case gputypes.AddressModeMirrorRepeat:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		return min(max(i, 0), n-1)
	}
}
