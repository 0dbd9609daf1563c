package batch

import "github.com/gogpu/sprite/render"

// Option configures a Batch during creation.
//
// Example:
//
//	b := batch.New(
//		batch.WithDefaultSampler(render.NearestSampler()),
//		batch.WithIntegerize(true),
//	)
type Option func(*options)

type options struct {
	sampler          render.TextureSampler
	material         *render.Material
	integerize       bool
	dev              bool
	flipFramebuffers bool
}

func defaultOptions() options {
	return options{
		sampler: render.DefaultSampler(),
	}
}

// WithDefaultSampler sets the sampler used until SetSampler is called.
func WithDefaultSampler(s render.TextureSampler) Option {
	return func(o *options) {
		o.sampler = s
	}
}

// WithDefaultMaterial sets the material used when the material stack is
// empty. Without it the Batch compiles the built-in batch shader on first
// Render.
func WithDefaultMaterial(m *render.Material) Option {
	return func(o *options) {
		o.material = m
	}
}

// WithIntegerize snaps textured quads and glyphs to whole pixels.
func WithIntegerize(on bool) Option {
	return func(o *options) {
		o.integerize = on
	}
}

// WithDevMode enables diagnostic warnings for misuse such as unbalanced
// stacks.
func WithDevMode(on bool) Option {
	return func(o *options) {
		o.dev = on
	}
}

// WithFlipFramebuffers flips texture coordinates vertically when sampling
// a texture that is a render target attachment.
func WithFlipFramebuffers(on bool) Option {
	return func(o *options) {
		o.flipFramebuffers = on
	}
}
