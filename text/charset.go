package text

import (
	"fmt"
	"strconv"
	"strings"
)

// CharRange is an inclusive range of codepoints.
type CharRange struct {
	From, To rune
}

// Charset is a list of codepoint ranges. Ranges may overlap and need not be
// sorted.
type Charset []CharRange

// Common charsets.
var (
	// ASCII covers the printable ASCII range and DEL.
	ASCII = Charset{{From: 32, To: 128}}

	// Latin1 covers ASCII plus the Latin-1 supplement.
	Latin1 = Charset{{From: 32, To: 126}, {From: 160, To: 255}}
)

// Range returns a charset with a single range.
func Range(from, to rune) Charset {
	return Charset{{From: from, To: to}}
}

// Contains reports whether any range includes cp.
func (c Charset) Contains(cp rune) bool {
	for _, r := range c {
		if cp >= r.From && cp <= r.To {
			return true
		}
	}
	return false
}

// Len returns the number of codepoints covered, counting overlaps twice.
func (c Charset) Len() int {
	n := 0
	for _, r := range c {
		if r.To >= r.From {
			n += int(r.To-r.From) + 1
		}
	}
	return n
}

// ParseCharset parses a comma-separated list of named sets ("ascii",
// "latin1") and codepoint ranges such as "32-126" or "0x400-0x4ff". A
// single codepoint stands for a range of one.
func ParseCharset(s string) (Charset, error) {
	var out Charset
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
			continue
		case "ascii":
			out = append(out, ASCII...)
			continue
		case "latin1":
			out = append(out, Latin1...)
			continue
		}
		lo, hi, found := strings.Cut(part, "-")
		from, err := parseCodepoint(lo)
		if err != nil {
			return nil, fmt.Errorf("text: charset %q: %w", part, err)
		}
		to := from
		if found {
			if to, err = parseCodepoint(hi); err != nil {
				return nil, fmt.Errorf("text: charset %q: %w", part, err)
			}
		}
		if to < from {
			return nil, fmt.Errorf("text: charset %q: empty range", part)
		}
		out = append(out, CharRange{From: from, To: to})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("text: empty charset %q", s)
	}
	return out, nil
}

func parseCodepoint(s string) (rune, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}
