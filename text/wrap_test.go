package text

import (
	"slices"
	"testing"
)

// monoFont returns a SpriteFont where every lowercase letter, space and
// hyphen advances 10 pixels.
func monoFont() *SpriteFont {
	sf := &SpriteFont{Size: 10}
	for _, r := range "abcdefghijklmnopqrstuvwxyz -()" {
		sf.SetCharacter(SpriteCharacter{Codepoint: r, Advance: 10, Scale: 1})
	}
	return sf
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxWidth float32
		mode     WrapMode
		want     []string
	}{
		{"fits", "hello", 50, WrapWordChar, []string{"hello"}},
		{"word boundary", "hello world", 50, WrapWordChar, []string{"hello", "world"}},
		{"long word falls back to chars", "abcdefgh", 50, WrapWordChar, []string{"abcde", "fgh"}},
		{"long word overflows", "abcdefgh", 50, WrapWord, []string{"abcdefgh"}},
		{"char mode", "abcdef", 30, WrapChar, []string{"abc", "def"}},
		{"after hyphen", "well-known", 60, WrapWordChar, []string{"well-", "known"}},
		{"no break after open", "ab (cd)", 50, WrapWord, []string{"ab", "(cd)"}},
		{"blank lines kept", "ab cd\n\nef", 50, WrapWordChar, []string{"ab cd", "", "ef"}},
		{"collapses spaces at break", "ab   cd", 20, WrapWordChar, []string{"ab", "cd"}},
		{"no width", "a b\nc", 0, WrapWordChar, []string{"a b", "c"}},
		{"none", "hello world", 50, WrapNone, []string{"hello world"}},
	}
	sf := monoFont()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sf.Wrap(tt.s, tt.maxWidth, tt.mode); !slices.Equal(got, tt.want) {
				t.Errorf("Wrap(%q, %v, %v) = %q, want %q", tt.s, tt.maxWidth, tt.mode, got, tt.want)
			}
		})
	}
}

func TestWrapKerning(t *testing.T) {
	sf := monoFont()
	sf.SetKerning('a', 'b', -10)
	if got := sf.Wrap("abab", 20, WrapChar); !slices.Equal(got, []string{"abab"}) {
		t.Errorf("Wrap() = %q, want [abab]", got)
	}
}

func TestWrapModeString(t *testing.T) {
	tests := []struct {
		mode WrapMode
		want string
	}{
		{WrapWordChar, "wordchar"},
		{WrapNone, "none"},
		{WrapWord, "word"},
		{WrapChar, "char"},
		{WrapMode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("WrapMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
