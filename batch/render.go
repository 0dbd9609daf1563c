package batch

import (
	"fmt"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// Render uploads the emitted geometry and performs one draw call per
// batch, in layer order, onto target (nil is the back buffer).
//
// Vertices are already transformed by the batch matrices, so matrix is
// written unchanged to the u_matrix uniform of every material. The batch
// texture and sampler go to u_texture and u_texture_sampler, or to slot 0
// when a material's shader names them differently.
func (b *Batch) Render(ctx *render.Context, target render.Target, matrix sprite.Mat4x4) error {
	b.flush()
	if len(b.batches) == 0 {
		return nil
	}

	if b.mesh == nil {
		m, err := render.NewMesh(ctx)
		if err != nil {
			return fmt.Errorf("batch: %w", err)
		}
		b.mesh = m
	}
	b.vertexBytes = encodeVertices(b.vertexBytes, b.vertices)
	if err := b.mesh.VertexData(render.BatchVertexLayout(), b.vertexBytes, len(b.vertices)); err != nil {
		return fmt.Errorf("batch: upload vertices: %w", err)
	}
	if err := b.mesh.IndexData(b.indices); err != nil {
		return fmt.Errorf("batch: upload indices: %w", err)
	}

	for _, db := range b.batches {
		mat, err := b.materialFor(ctx, db)
		if err != nil {
			return err
		}
		b.bind(mat, db, matrix)

		pass := render.DrawCall{
			Target:     target,
			Mesh:       b.mesh,
			Material:   mat,
			HasScissor: db.Scissor.IsSet(),
			Scissor:    db.Scissor,
			IndexStart: db.IndexStart(),
			IndexCount: db.IndexCount(),
		}
		if err := pass.Perform(ctx); err != nil {
			return fmt.Errorf("batch: layer %d: %w", db.Layer, err)
		}
	}
	return nil
}

// RenderDefault renders with an orthographic projection mapping target
// pixels to clip space, origin top-left. A nil target is the back buffer.
func (b *Batch) RenderDefault(ctx *render.Context, target render.Target) error {
	t := target
	if t == nil {
		t = ctx.BackBuffer()
	}
	if t == nil {
		return fmt.Errorf("batch: %w", render.ErrNilBackend)
	}
	return b.Render(ctx, t, sprite.Ortho(float32(t.Width()), float32(t.Height())))
}

func (b *Batch) materialFor(ctx *render.Context, db DrawBatch) (*render.Material, error) {
	if db.Material != nil {
		return db.Material, nil
	}
	if b.opts.material != nil {
		return b.opts.material, nil
	}
	if b.defaultMaterial == nil {
		shader, err := render.NewShader(ctx, render.BatchShaderData())
		if err != nil {
			return nil, fmt.Errorf("batch: default shader: %w", err)
		}
		b.defaultMaterial = render.NewMaterial(shader)
	}
	return b.defaultMaterial, nil
}

func (b *Batch) bind(mat *render.Material, db DrawBatch, matrix sprite.Mat4x4) {
	var err error
	if mat.HasValue(render.UniformTexture) {
		err = mat.SetTexture(render.UniformTexture, db.Texture, 0)
	} else {
		err = mat.SetTextureAt(0, db.Texture)
	}
	if err != nil {
		sprite.DevWarn(b.opts.dev, "batch: material has no texture slot", "err", err)
	}

	if mat.HasValue(render.UniformSampler) {
		err = mat.SetSampler(render.UniformSampler, db.Sampler, 0)
	} else {
		err = mat.SetSamplerAt(0, db.Sampler)
	}
	if err != nil {
		sprite.DevWarn(b.opts.dev, "batch: material has no sampler slot", "err", err)
	}

	if err := mat.SetMatrix(render.UniformMatrix, matrix); err != nil {
		sprite.DevWarn(b.opts.dev, "batch: material has no matrix uniform", "err", err)
	}
}
