package text

import (
	"strings"
	"unicode"
)

// WrapMode selects where Wrap may break a line.
type WrapMode uint8

const (
	// WrapWordChar breaks at word boundaries, and inside words that do not
	// fit on a line of their own.
	WrapWordChar WrapMode = iota

	// WrapNone only breaks at newlines.
	WrapNone

	// WrapWord breaks at word boundaries only. Long words overflow.
	WrapWord

	// WrapChar breaks between any two characters.
	WrapChar
)

func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapWord:
		return "word"
	case WrapChar:
		return "char"
	case WrapWordChar:
		return "wordchar"
	default:
		return "unknown"
	}
}

type breakClass uint8

const (
	breakOther breakClass = iota
	breakSpace
	breakZeroWidth
	breakOpen
	breakClose
	breakHyphen
	breakIdeographic
)

// classify is a reduced form of the UAX #14 line breaking classes.
func classify(r rune) breakClass {
	switch r {
	case ' ', '\t':
		return breakSpace
	case '\u200B':
		return breakZeroWidth
	case '(', '[', '{', '\u201C', '\u2018':
		return breakOpen
	case ')', ']', '}', '\u201D', '\u2019':
		return breakClose
	case '-', '\u2010', '\u2013', '\u2014':
		return breakHyphen
	}
	if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
		return breakIdeographic
	}
	return breakOther
}

// canBreakBefore reports whether a line may start at runes[i].
func canBreakBefore(runes []rune, i int, mode WrapMode) bool {
	if i <= 0 || i >= len(runes) || mode == WrapNone {
		return false
	}
	prev, curr := classify(runes[i-1]), classify(runes[i])
	switch {
	case curr == breakClose, prev == breakOpen:
		return false
	case prev == breakZeroWidth, mode == WrapChar:
		return true
	case prev == breakSpace:
		return curr != breakSpace
	case prev == breakHyphen:
		return curr != breakHyphen
	case curr == breakIdeographic, prev == breakIdeographic:
		return true
	}
	return false
}

// Wrap splits s into lines no wider than maxWidth pixels at the font size.
// Newlines always break. Spaces at a wrap point are dropped.
// A non-positive maxWidth only splits at newlines.
func (sf *SpriteFont) Wrap(s string, maxWidth float32, mode WrapMode) []string {
	paragraphs := strings.Split(s, "\n")
	if maxWidth <= 0 || mode == WrapNone {
		return paragraphs
	}
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = sf.wrapParagraph(lines, []rune(p), maxWidth, mode)
	}
	return lines
}

func (sf *SpriteFont) wrapParagraph(lines []string, runes []rune, maxWidth float32, mode WrapMode) []string {
	if len(runes) == 0 {
		return append(lines, "")
	}
	start := 0
	for start < len(runes) {
		end := sf.lineEnd(runes, start, maxWidth, mode)
		lines = append(lines, strings.TrimRightFunc(string(runes[start:end]), unicode.IsSpace))
		start = end
		for start < len(runes) && classify(runes[start]) == breakSpace {
			start++
		}
	}
	return lines
}

// lineEnd returns the index one past the last rune of the line starting at
// start.
func (sf *SpriteFont) lineEnd(runes []rune, start int, maxWidth float32, mode WrapMode) int {
	var width float32
	lastBreak := -1
	var last rune
	for i := start; i < len(runes); i++ {
		r := runes[i]
		if i > start && canBreakBefore(runes, i, mode) {
			lastBreak = i
		}
		var w float32
		if sf.HasCharacter(r) {
			w = sf.Character(r).Advance
			if last != 0 {
				w += sf.Kerning(last, r)
			}
			last = r
		}
		// Trailing spaces never push a line over the limit.
		if width+w > maxWidth && i > start && classify(r) != breakSpace {
			if lastBreak > start {
				return lastBreak
			}
			switch mode {
			case WrapWord:
				for j := i; j < len(runes); j++ {
					if canBreakBefore(runes, j, mode) {
						return j
					}
				}
				return len(runes)
			default:
				return i
			}
		}
		width += w
	}
	return len(runes)
}
