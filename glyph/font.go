package glyph

import (
	"fmt"
	"image"

	"github.com/gogpu/textmesh/atlas"
)

// Metrics holds font-wide line metrics in whole pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent int
	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent int
	// Height is the recommended distance between consecutive baselines.
	Height int
	// ExternalLeading is extra spacing the font suggests between lines.
	ExternalLeading int
}

// FontConfig describes a font as provided by the platform font service.
// All values are fixed for the lifetime of the font.
type FontConfig struct {
	// Name identifies the font in errors and logs.
	Name string

	// BitmapWidth and BitmapHeight size the scratch bitmap the rasterizer
	// draws into. They must hold the largest glyph of the font.
	BitmapWidth  int
	BitmapHeight int

	// DefaultX and DefaultY locate the baseline reference point in the
	// scratch bitmap: where the rasterizer places the glyph origin.
	DefaultX int
	DefaultY int

	Metrics Metrics

	// GlyphsMax is the capacity of the glyph table.
	// Default: 256
	GlyphsMax int
}

// Validate checks if the configuration is valid.
func (c *FontConfig) Validate() error {
	if c.BitmapWidth < 1 {
		return &FontConfigError{Field: "BitmapWidth", Reason: "must be at least 1"}
	}
	if c.BitmapHeight < 1 {
		return &FontConfigError{Field: "BitmapHeight", Reason: "must be at least 1"}
	}
	if c.GlyphsMax < 0 {
		return &FontConfigError{Field: "GlyphsMax", Reason: "must be non-negative"}
	}
	return nil
}

// Font is a rasterizable font with a fixed-capacity glyph table.
//
// Glyphs are added by Cache on first use and never removed. A font belongs
// to the atlas of the first Cache that uses it, since its glyph rectangles
// are only valid there. The scratch bitmap is shared by all rasterizations
// of the font and overwritten by each one. Font is not safe for concurrent
// use.
type Font struct {
	config     FontConfig
	rasterizer Rasterizer
	scratch    *image.Alpha

	glyphs []Glyph
	index  map[rune]int

	// atlas holds the rectangles of glyphs; set by the first Cache that
	// resolves a glyph for this font.
	atlas *atlas.Atlas
}

// NewFont creates an empty font.
func NewFont(config FontConfig, r Rasterizer) (*Font, error) {
	if r == nil {
		return nil, ErrNilRasterizer
	}
	if config.GlyphsMax == 0 {
		config.GlyphsMax = 256
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Font{
		config:     config,
		rasterizer: r,
		scratch:    image.NewAlpha(image.Rect(0, 0, config.BitmapWidth, config.BitmapHeight)),
		glyphs:     make([]Glyph, 0, config.GlyphsMax),
		index:      make(map[rune]int, config.GlyphsMax),
	}, nil
}

// Name returns the font name.
func (f *Font) Name() string { return f.config.Name }

// Config returns the font configuration.
func (f *Font) Config() FontConfig { return f.config }

// Metrics returns the font line metrics.
func (f *Font) Metrics() Metrics { return f.config.Metrics }

// Origin returns the baseline reference point in the scratch bitmap.
func (f *Font) Origin() image.Point {
	return image.Pt(f.config.DefaultX, f.config.DefaultY)
}

// Len returns the number of cached glyphs.
func (f *Font) Len() int { return len(f.glyphs) }

// Cap returns the glyph table capacity.
func (f *Font) Cap() int { return f.config.GlyphsMax }

// Lookup returns the cached glyph for r without rasterizing.
func (f *Font) Lookup(r rune) (Glyph, bool) {
	i, ok := f.index[r]
	if !ok {
		return Glyph{}, false
	}
	return f.glyphs[i], true
}

// Glyphs returns a copy of the cached glyphs in creation order.
func (f *Font) Glyphs() []Glyph {
	out := make([]Glyph, len(f.glyphs))
	copy(out, f.glyphs)
	return out
}

// full reports whether the glyph table has no room left.
func (f *Font) full() bool {
	return len(f.glyphs) >= f.config.GlyphsMax
}

// rasterize clears the scratch bitmap and renders r into it. The returned
// bitmap is valid until the next call.
func (f *Font) rasterize(r rune) (int, *image.Alpha, error) {
	clear(f.scratch.Pix)
	advance, err := f.rasterizer.Rasterize(r, f.scratch)
	if err != nil {
		return 0, nil, fmt.Errorf("glyph: rasterize %U in font %q: %w", r, f.config.Name, err)
	}
	return advance, f.scratch, nil
}

// add appends g to the glyph table.
func (f *Font) add(g Glyph) Glyph {
	f.index[g.Rune] = len(f.glyphs)
	f.glyphs = append(f.glyphs, g)
	return g
}

// bind ties f to a, the first time it is called. It reports false if f
// already belongs to another atlas.
func (f *Font) bind(a *atlas.Atlas) bool {
	if f.atlas == nil {
		f.atlas = a
	}
	return f.atlas == a
}
