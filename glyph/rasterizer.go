package glyph

import "image"

// Rasterizer renders one glyph of a font into a coverage bitmap.
//
// dst is the font's scratch bitmap, cleared to zero before every call. The
// glyph origin must be drawn at the font's baseline reference point
// (FontConfig.DefaultX, DefaultY). Rasterize returns the horizontal advance
// in whole pixels. dst is only valid until the next call on the same font.
type Rasterizer interface {
	Rasterize(r rune, dst *image.Alpha) (advance int, err error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(r rune, dst *image.Alpha) (int, error)

// Rasterize implements Rasterizer.
func (fn RasterizerFunc) Rasterize(r rune, dst *image.Alpha) (int, error) {
	return fn(r, dst)
}
