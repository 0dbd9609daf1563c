package sprite

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"nested", R(0, 0, 100, 100), R(10, 10, 20, 20), R(10, 10, 20, 20)},
		{"partial", R(0, 0, 100, 100), R(50, 50, 200, 200), R(50, 50, 50, 50)},
		{"same", R(5, 5, 10, 10), R(5, 5, 10, 10), R(5, 5, 10, 10)},
		{"disjoint", R(0, 0, 10, 10), R(20, 20, 5, 5), R(20, 20, 0, 0)},
		{"touching", R(0, 0, 10, 10), R(10, 0, 10, 10), R(10, 0, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got != tt.want {
				t.Errorf("%v.Intersect(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if !got.IsSet() {
				t.Errorf("Intersect() produced the unset sentinel %v", got)
			}
		})
	}
}

func TestRectSentinel(t *testing.T) {
	if NoScissor.IsSet() {
		t.Error("NoScissor.IsSet() = true, want false")
	}
	if !R(0, 0, 0, 0).IsSet() {
		t.Error("zero rect IsSet() = false, want true")
	}
}

func TestRectContainsOverlaps(t *testing.T) {
	r := R(0, 0, 10, 10)
	if !r.Contains(V2(0, 0)) || r.Contains(V2(10, 5)) {
		t.Error("Contains() edge handling wrong")
	}
	if !r.Overlaps(R(9, 9, 5, 5)) {
		t.Error("Overlaps() = false for overlapping rects")
	}
	if r.Overlaps(R(10, 0, 5, 5)) {
		t.Error("Overlaps() = true for touching rects")
	}
}

func TestVec2(t *testing.T) {
	if got := V2(3, 4).Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := (Vec2{}).Normal(); got != (Vec2{}) {
		t.Errorf("zero Normal() = %v, want zero", got)
	}
	if got := V2(1, 0).Perp(); got != V2(0, 1) {
		t.Errorf("Perp() = %v, want (0,1)", got)
	}
	if got := V2(1.4, 1.6).Round(); got != V2(1, 2) {
		t.Errorf("Round() = %v, want (1,2)", got)
	}
}

func TestVec2DotCross(t *testing.T) {
	a, b := V2(1, 0), V2(0, 1)
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot() = %v, want 0", got)
	}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Cross() = %v, want 1", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("Cross() = %v, want -1", got)
	}
	if got := V2(3, 4).Dot(V2(3, 4)); got != 25 {
		t.Errorf("Dot() = %v, want 25", got)
	}
}
