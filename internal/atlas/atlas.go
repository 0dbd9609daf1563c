// Package atlas packs rectangles into a fixed-size image using shelves.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

var (
	// ErrAtlasFull is returned when a rectangle does not fit.
	ErrAtlasFull = errors.New("atlas: atlas is full")

	// ErrInvalidSize is returned for non-positive rectangle or atlas sizes.
	ErrInvalidSize = errors.New("atlas: invalid size")
)

// Region is an allocated rectangle in atlas pixels.
type Region struct {
	X, Y          int
	Width, Height int
}

// IsValid reports whether the region has a positive area.
func (r Region) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

type shelf struct {
	y      int // top edge
	height int // tallest item so far, padding included
	nextX  int // next free x
}

// Packer allocates rectangles with a shelf algorithm: each rectangle goes on
// the first shelf with room, otherwise on a new shelf below the last one.
// Sorting input by descending height before packing keeps shelves tight.
//
// A Packer is not safe for concurrent use.
type Packer struct {
	width, height int
	padding       int
	shelves       []shelf
	count         int
	usedArea      int
}

// NewPacker creates a packer for a width x height area with padding pixels
// kept free to the right of and below every rectangle.
func NewPacker(width, height, padding int) (*Packer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Packer{
		width:   width,
		height:  height,
		padding: max(padding, 0),
		shelves: make([]shelf, 0, 16),
	}, nil
}

// Width returns the atlas width.
func (p *Packer) Width() int { return p.width }

// Height returns the atlas height.
func (p *Packer) Height() int { return p.height }

// Pack allocates a width x height rectangle.
func (p *Packer) Pack(width, height int) (Region, error) {
	if width <= 0 || height <= 0 {
		return Region{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	pw, ph := width+p.padding, height+p.padding
	if pw > p.width || ph > p.height {
		return Region{}, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrAtlasFull, width, height, p.width, p.height)
	}

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.nextX+pw > p.width {
			continue
		}
		// Items already on a shelf fix its height.
		if ph > s.height && s.nextX > 0 {
			continue
		}
		if ph > s.height {
			if i != len(p.shelves)-1 || s.y+ph > p.height {
				continue
			}
			s.height = ph
		}
		r := Region{X: s.nextX, Y: s.y, Width: width, Height: height}
		s.nextX += pw
		p.track(r)
		return r, nil
	}

	y := 0
	if n := len(p.shelves); n > 0 {
		y = p.shelves[n-1].y + p.shelves[n-1].height
	}
	if y+ph > p.height {
		return Region{}, fmt.Errorf("%w: no room for %dx%d", ErrAtlasFull, width, height)
	}
	p.shelves = append(p.shelves, shelf{y: y, height: ph, nextX: pw})
	r := Region{X: 0, Y: y, Width: width, Height: height}
	p.track(r)
	return r, nil
}

func (p *Packer) track(r Region) {
	p.count++
	p.usedArea += r.Width * r.Height
}

// Reset forgets every allocation.
func (p *Packer) Reset() {
	p.shelves = p.shelves[:0]
	p.count = 0
	p.usedArea = 0
}

// Count returns the number of successful allocations.
func (p *Packer) Count() int { return p.count }

// Utilization returns the fraction of the area in use, from 0 to 1.
func (p *Packer) Utilization() float64 {
	return float64(p.usedArea) / float64(p.width*p.height)
}

// UsedHeight returns the bottom edge of the lowest shelf.
func (p *Packer) UsedHeight() int {
	if n := len(p.shelves); n > 0 {
		return p.shelves[n-1].y + p.shelves[n-1].height
	}
	return 0
}

// Blit copies src into dst at region r.
func Blit(dst draw.Image, r Region, src image.Image) {
	draw.Draw(dst, r.Rect(), src, src.Bounds().Min, draw.Src)
}
