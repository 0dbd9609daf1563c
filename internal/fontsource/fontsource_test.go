package fontsource

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadDefault(t *testing.T) {
	for _, ref := range []string{"", "goregular", "GoRegular"} {
		data, path, err := Load(ref)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", ref, err)
		}
		if path != "" || !bytes.Equal(data, goregular.TTF) {
			t.Errorf("Load(%q) = %d bytes from %q, want embedded font", ref, len(data), path)
		}
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != path || len(data) != len(goregular.TTF) {
		t.Errorf("Load() = %d bytes from %q, want %d from %q", len(data), got, len(goregular.TTF), path)
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("Load(missing path) error = nil")
	}
	if _, _, err := Load("no-such-font-anywhere-7f3a.ttf"); err == nil {
		t.Error("Load(unknown name) error = nil")
	}
}

func TestName(t *testing.T) {
	tests := []struct{ ref, want string }{
		{"", "goregular"},
		{"DejaVuSans.ttf", "DejaVuSans"},
		{"/usr/share/fonts/Go-Mono.otf", "Go-Mono"},
	}
	for _, tt := range tests {
		if got := Name(tt.ref); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
