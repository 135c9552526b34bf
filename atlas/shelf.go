package atlas

import "fmt"

// ShelfPacker is an append-only bump allocator over 2D space.
//
// Rectangles are placed left to right on the current shelf. When a
// rectangle does not fit horizontally a new shelf starts directly below the
// tallest rectangle of the previous one. Nothing is ever freed or moved.
type ShelfPacker struct {
	width   int
	height  int
	padding int

	cursorX     int // next free x on the current shelf
	cursorY     int // top of the current shelf
	shelfHeight int // tallest (padded) rectangle on the current shelf
	shelves     int

	usedArea int
}

// NewShelfPacker creates a packer for a width x height area. Padding is an
// empty gutter kept to the right of and below every rectangle.
func NewShelfPacker(width, height, padding int) *ShelfPacker {
	return &ShelfPacker{
		width:   width,
		height:  height,
		padding: padding,
	}
}

// Allocate reserves a w x h rectangle and returns its top-left corner.
//
// Packer state is left untouched when an error is returned, so a failed
// request can be retried with a smaller size.
func (p *ShelfPacker) Allocate(w, h int) (x, y int, err error) {
	if w <= 0 || h <= 0 || w > p.width || h > p.height {
		return 0, 0, fmt.Errorf("%w: %dx%d in %dx%d", ErrInvalidSize, w, h, p.width, p.height)
	}

	paddedW := w + p.padding
	paddedH := h + p.padding

	cx, cy, sh := p.cursorX, p.cursorY, p.shelfHeight
	newShelf := false
	if cx+w > p.width {
		cx = 0
		cy += sh
		sh = 0
		newShelf = true
	}
	if paddedH > sh {
		sh = paddedH
	}
	if cy+h > p.height {
		return 0, 0, &FullError{Width: w, Height: h, Y: cy, AtlasHeight: p.height}
	}

	if newShelf || p.shelves == 0 {
		p.shelves++
	}
	p.cursorX = cx + paddedW
	p.cursorY = cy
	p.shelfHeight = sh
	p.usedArea += w * h

	return cx, cy, nil
}

// CanFit reports whether Allocate(w, h) would succeed right now.
func (p *ShelfPacker) CanFit(w, h int) bool {
	if w <= 0 || h <= 0 || w > p.width || h > p.height {
		return false
	}
	cy := p.cursorY
	if p.cursorX+w > p.width {
		cy += p.shelfHeight
	}
	return cy+h <= p.height
}

// Reset clears all allocations.
func (p *ShelfPacker) Reset() {
	p.cursorX, p.cursorY, p.shelfHeight = 0, 0, 0
	p.shelves = 0
	p.usedArea = 0
}

// Utilization returns the fraction of the area covered by rectangles (0.0 to 1.0).
func (p *ShelfPacker) Utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.TotalArea())
}

// UsedArea returns the total area of allocated rectangles, excluding padding.
func (p *ShelfPacker) UsedArea() int {
	return p.usedArea
}

// TotalArea returns the area managed by the packer.
func (p *ShelfPacker) TotalArea() int {
	return p.width * p.height
}

// ShelfCount returns the number of shelves opened so far.
func (p *ShelfPacker) ShelfCount() int {
	return p.shelves
}

// RemainingHeight returns the vertical space below the current shelf.
func (p *ShelfPacker) RemainingHeight() int {
	used := p.cursorY + p.shelfHeight
	if used >= p.height {
		return 0
	}
	return p.height - used
}

// CurrentShelfRemainingWidth returns the free width on the current shelf.
func (p *ShelfPacker) CurrentShelfRemainingWidth() int {
	if p.cursorX >= p.width {
		return 0
	}
	return p.width - p.cursorX
}
