package batch

import (
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// FromConfig returns the options described by an application config.
func FromConfig(cfg sprite.Config) []Option {
	sampler := render.DefaultSampler()
	if cfg.Batch.Filter == "nearest" {
		sampler = render.NearestSampler()
	}
	return []Option{
		WithDefaultSampler(sampler),
		WithIntegerize(cfg.Batch.Integerize),
		WithDevMode(cfg.Dev),
	}
}
