package recording

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

func TestHeadlessResources(t *testing.T) {
	rec := NewHeadless(64, 32)
	ctx := render.NewContext(rec, false)

	back := ctx.BackBuffer()
	if back.Width() != 64 || back.Height() != 32 {
		t.Errorf("BackBuffer() = %dx%d, want 64x32", back.Width(), back.Height())
	}
	if n := len(back.Textures()); n != 0 {
		t.Errorf("back buffer has %d attachments, want 0", n)
	}

	tex, err := render.NewTexture(ctx, 2, 2, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	if err := tex.SetData(make([]byte, 16)); err != nil {
		t.Errorf("SetData() error = %v", err)
	}
	if err := tex.SetData(make([]byte, 3)); !errors.Is(err, render.ErrDataSize) {
		t.Errorf("SetData(short) error = %v, want ErrDataSize", err)
	}
	target, err := render.NewTarget(ctx, 8, 8)
	if err != nil {
		t.Fatalf("NewTarget() error = %v", err)
	}
	if !target.Textures()[0].IsFramebuffer() {
		t.Error("target attachment IsFramebuffer() = false")
	}
	if _, err := render.NewMesh(ctx); err != nil {
		t.Errorf("NewMesh() error = %v", err)
	}
	if _, err := render.NewShader(ctx, render.BatchShaderData()); err != nil {
		t.Errorf("NewShader() error = %v", err)
	}

	r := rec.Finish()
	want := []CommandType{CmdCreateTexture, CmdCreateTarget, CmdCreateMesh, CmdCreateShader}
	if len(r.Commands()) != len(want) {
		t.Fatalf("len(Commands()) = %d, want %d", len(r.Commands()), len(want))
	}
	for i, c := range r.Commands() {
		if c.Type() != want[i] {
			t.Errorf("Commands()[%d] = %v, want %v", i, c.Type(), want[i])
		}
	}
	if len(rec.Commands()) != 0 {
		t.Errorf("Recorder kept %d commands after Finish", len(rec.Commands()))
	}
}

func TestRecorderDrawCalls(t *testing.T) {
	rec := NewHeadless(16, 16)
	ctx := render.NewContext(rec, false)

	shader, err := render.NewShader(ctx, render.BatchShaderData())
	if err != nil {
		t.Fatal(err)
	}
	mat := render.NewMaterial(shader)
	mesh := &render.MeshData{Indices: make([]uint32, 12)}

	if err := ctx.Clear(nil, sprite.Black); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for i := range 2 {
		if err := mat.SetValue(render.UniformMatrix, []float32{float32(i + 1)}); err != nil {
			t.Fatal(err)
		}
		call := render.DrawCall{Mesh: mesh, Material: mat, IndexStart: i * 6, IndexCount: 6}
		if err := call.Perform(ctx); err != nil {
			t.Fatalf("Perform() error = %v", err)
		}
	}

	r := rec.Finish()
	if got := r.Count(CmdClear); got != 1 {
		t.Errorf("Count(Clear) = %d, want 1", got)
	}
	calls := r.DrawCalls()
	if len(calls) != 2 {
		t.Fatalf("len(DrawCalls()) = %d, want 2", len(calls))
	}
	for i, c := range calls {
		if c.Call.IndexStart != i*6 || c.Call.IndexCount != 6 {
			t.Errorf("call %d range = %d+%d, want %d+6", i, c.Call.IndexStart, c.Call.IndexCount, i*6)
		}
		if c.Call.Target == nil {
			t.Errorf("call %d has no target after Perform", i)
		}
		got := r.Material(c.Material).Value(render.UniformMatrix)[0]
		if got != float32(i+1) {
			t.Errorf("call %d snapshot u_matrix[0] = %v, want %v", i, got, i+1)
		}
	}
}

func TestRecorderForwards(t *testing.T) {
	inner := NewHeadless(8, 8)
	rec := New(inner)
	ctx := render.NewContext(rec, false)

	if ctx.BackBuffer() != inner.BackBuffer() {
		t.Error("BackBuffer() not forwarded")
	}
	if _, err := render.NewMesh(ctx); err != nil {
		t.Fatal(err)
	}
	if len(inner.Commands()) != 1 || len(rec.Commands()) != 1 {
		t.Errorf("commands inner=%d outer=%d, want 1 and 1", len(inner.Commands()), len(rec.Commands()))
	}
	if rec.Inner() != inner {
		t.Error("Inner() did not return the wrapped backend")
	}
}

func TestRecordingRegistered(t *testing.T) {
	b, err := render.NewBackend("recording", render.BackendOptions{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if _, ok := b.(*Recorder); !ok {
		t.Errorf("NewBackend() = %T, want *Recorder", b)
	}
	if _, err := render.NewBackend("recording", render.BackendOptions{}); !errors.Is(err, render.ErrInvalidSize) {
		t.Errorf("NewBackend(zero size) error = %v, want ErrInvalidSize", err)
	}
}
