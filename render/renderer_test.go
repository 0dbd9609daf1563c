package render

import "testing"

type capableBackend struct {
	*fakeBackend
	caps Capabilities
}

func (b capableBackend) Name() string               { return "capable" }
func (b capableBackend) Capabilities() Capabilities { return b.caps }

func TestCapabilitiesOf(t *testing.T) {
	want := Capabilities{IsGPU: true, CustomShaders: true, MaxTextureSize: 8192}
	tests := []struct {
		name    string
		backend Backend
		want    Capabilities
	}{
		{"plain backend", newFakeBackend(1, 1), Capabilities{}},
		{"capable backend", capableBackend{newFakeBackend(1, 1), want}, want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CapabilitiesOf(tt.backend); got != tt.want {
				t.Errorf("CapabilitiesOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
