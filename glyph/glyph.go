package glyph

import "image"

// Glyph is a cached, immutable glyph of one font.
//
// DX and DY place the top-left ink texel relative to the font's baseline
// reference point, so glyphs with different ink extents share a baseline.
// X0, Y0, X1, Y1 is the half-open ink rectangle in atlas pixels; it is all
// zero for glyphs without ink such as space.
type Glyph struct {
	Rune    rune
	Advance int

	DX, DY int

	X0, Y0, X1, Y1 int
}

// Empty reports whether the glyph has no ink in the atlas.
func (g Glyph) Empty() bool {
	return g.X1 <= g.X0 || g.Y1 <= g.Y0
}

// Width returns the ink width in pixels.
func (g Glyph) Width() int { return g.X1 - g.X0 }

// Height returns the ink height in pixels.
func (g Glyph) Height() int { return g.Y1 - g.Y0 }

// Rect returns the atlas rectangle of the glyph.
func (g Glyph) Rect() image.Rectangle {
	return image.Rect(g.X0, g.Y0, g.X1, g.Y1)
}
