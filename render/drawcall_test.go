package render

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/sprite"
)

func meshWithIndices(n int) *MeshData {
	m := &MeshData{}
	_ = m.IndexData(make([]uint32, n))
	return m
}

func batchMaterial(t *testing.T, ctx *Context) *Material {
	t.Helper()
	s, err := NewShader(ctx, BatchShaderData())
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	return NewMaterial(s)
}

func TestDrawCallIndexClamp(t *testing.T) {
	tests := []struct {
		name        string
		start, n    int
		meshIndices int
		wantCalls   int
		wantCount   int
	}{
		{"in range", 0, 6, 12, 1, 6},
		{"trimmed", 5, 10, 8, 1, 3},
		{"start past end", 9, 3, 8, 0, 0},
		{"start at end", 8, 3, 8, 0, 0},
		{"empty", 0, 0, 8, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend(100, 100)
			ctx := NewContext(b, false)
			call := DrawCall{
				Target:     b.back,
				Mesh:       meshWithIndices(tt.meshIndices),
				Material:   batchMaterial(t, ctx),
				IndexStart: tt.start,
				IndexCount: tt.n,
			}
			if err := call.Perform(ctx); err != nil {
				t.Fatalf("Perform() error = %v", err)
			}
			if len(b.calls) != tt.wantCalls {
				t.Fatalf("backend got %d calls, want %d", len(b.calls), tt.wantCalls)
			}
			if tt.wantCalls > 0 && b.calls[0].IndexCount != tt.wantCount {
				t.Errorf("IndexCount = %d, want %d", b.calls[0].IndexCount, tt.wantCount)
			}
			if call.IndexCount != tt.n {
				t.Errorf("Perform() modified the caller's DrawCall: IndexCount = %d", call.IndexCount)
			}
		})
	}
}

func TestDrawCallTargetFallback(t *testing.T) {
	orig := sprite.Logger()
	t.Cleanup(func() { sprite.SetLogger(orig) })
	var buf bytes.Buffer
	sprite.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	b := newFakeBackend(64, 32)
	ctx := NewContext(b, true)
	call := DrawCall{Mesh: meshWithIndices(6), Material: batchMaterial(t, ctx), IndexCount: 6}
	if err := call.Perform(ctx); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	if len(b.calls) != 1 || b.calls[0].Target != b.back {
		t.Fatalf("nil target did not fall back to the back buffer")
	}
	if !strings.Contains(buf.String(), "back buffer") {
		t.Errorf("dev mode log = %q, want a fallback warning", buf.String())
	}
	if got, want := b.calls[0].Viewport, sprite.R(0, 0, 64, 32); got != want || !b.calls[0].HasViewport {
		t.Errorf("Viewport = %v, want %v", got, want)
	}
}

func TestDrawCallReleaseSilent(t *testing.T) {
	orig := sprite.Logger()
	t.Cleanup(func() { sprite.SetLogger(orig) })
	var buf bytes.Buffer
	sprite.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	b := newFakeBackend(10, 10)
	ctx := NewContext(b, false)
	call := DrawCall{Mesh: meshWithIndices(3), Material: batchMaterial(t, ctx), IndexCount: 30}
	if err := call.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("release mode logged %q", buf.String())
	}
}

func TestDrawCallViewportScissor(t *testing.T) {
	b := newFakeBackend(100, 50)
	ctx := NewContext(b, false)
	call := DrawCall{
		Target:      b.back,
		Mesh:        meshWithIndices(3),
		Material:    batchMaterial(t, ctx),
		IndexCount:  3,
		HasViewport: true,
		Viewport:    sprite.R(-10, -10, 200, 40),
		HasScissor:  true,
		Scissor:     sprite.R(90, 40, 50, 50),
	}
	if err := call.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	got := b.calls[0]
	if want := sprite.R(0, 0, 100, 30); got.Viewport != want {
		t.Errorf("Viewport = %v, want %v", got.Viewport, want)
	}
	if want := sprite.R(90, 40, 10, 10); got.Scissor != want {
		t.Errorf("Scissor = %v, want %v", got.Scissor, want)
	}
}

func TestDrawCallInstanceClamp(t *testing.T) {
	b := newFakeBackend(10, 10)
	ctx := NewContext(b, false)
	mesh := meshWithIndices(6)
	layout := BatchVertexLayout()
	if err := mesh.InstanceData(layout, make([]byte, int(layout.ArrayStride)*2), 2); err != nil {
		t.Fatal(err)
	}
	call := DrawCall{Mesh: mesh, Material: batchMaterial(t, ctx), IndexCount: 6, InstanceCount: 5}
	if err := call.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	if got := b.calls[0].InstanceCount; got != 2 {
		t.Errorf("InstanceCount = %d, want 2", got)
	}
}

func TestDrawCallMissingPieces(t *testing.T) {
	var call DrawCall
	if err := call.Perform(nil); !errors.Is(err, ErrNilBackend) {
		t.Errorf("Perform(nil) error = %v, want ErrNilBackend", err)
	}

	b := newFakeBackend(10, 10)
	ctx := NewContext(b, false)
	if err := call.Perform(ctx); err != nil {
		t.Errorf("Perform() without mesh error = %v, want nil", err)
	}
	call.Mesh = meshWithIndices(3)
	if err := call.Perform(ctx); err != nil {
		t.Errorf("Perform() without material error = %v, want nil", err)
	}
	if len(b.calls) != 0 {
		t.Errorf("incomplete draw calls reached the backend: %d", len(b.calls))
	}
}
