package glyph

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/internal/logging"
)

// Cache resolves runes to glyphs, rasterizing and packing on first use.
//
// Glyph tables live in each Font; the Cache owns the atlas they are packed
// into. One Cache serves any number of fonts sharing that atlas. Cache is
// not safe for concurrent use; only its statistics may be read from other
// goroutines.
type Cache struct {
	atlas *atlas.Atlas
	stats CacheStats
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Hits   atomic.Uint64
	Misses atomic.Uint64
	// Packed counts glyphs copied into the atlas.
	Packed atomic.Uint64
	// Blank counts glyphs without ink.
	Blank atomic.Uint64
}

// NewCache creates a cache that packs glyphs into a.
func NewCache(a *atlas.Atlas) *Cache {
	return &Cache{atlas: a}
}

// Atlas returns the atlas glyphs are packed into.
func (c *Cache) Atlas() *atlas.Atlas { return c.atlas }

// Stats returns the cache statistics.
func (c *Cache) Stats() *CacheStats { return &c.stats }

// Glyph returns the glyph for r in font f.
//
// On the first request the glyph is rasterized into the font's scratch
// bitmap, its ink bounds are copied into the atlas, and the result is added
// to the font's table. Later requests return the stored glyph without
// touching the rasterizer or the atlas.
//
// Errors wrap ErrCapacity when the font's table is full and atlas.ErrFull
// when the atlas has no room; nothing is cached in either case. A font
// already used with another Cache's atlas yields ErrAtlasMismatch.
func (c *Cache) Glyph(f *Font, r rune) (Glyph, error) {
	if !f.bind(c.atlas) {
		return Glyph{}, fmt.Errorf("glyph: font %q: %w", f.Name(), ErrAtlasMismatch)
	}
	if g, ok := f.Lookup(r); ok {
		c.stats.Hits.Add(1)
		return g, nil
	}
	c.stats.Misses.Add(1)

	if f.full() {
		return Glyph{}, &CapacityError{Font: f.Name(), Rune: r, Max: f.Cap()}
	}

	advance, bits, err := f.rasterize(r)
	if err != nil {
		return Glyph{}, err
	}

	g := Glyph{Rune: r, Advance: advance}

	ink, ok := inkBounds(bits)
	if !ok {
		c.stats.Blank.Add(1)
		return f.add(g), nil
	}

	dst, err := c.atlas.Allocate(ink.Dx(), ink.Dy())
	if err != nil {
		return Glyph{}, fmt.Errorf("glyph: pack %U in font %q: %w", r, f.Name(), err)
	}
	c.atlas.CopyCoverage(dst.Min, bits, ink)
	c.stats.Packed.Add(1)

	origin := f.Origin()
	g.DX = ink.Min.X - origin.X
	g.DY = ink.Min.Y - origin.Y
	g.X0, g.Y0, g.X1, g.Y1 = dst.Min.X, dst.Min.Y, dst.Max.X, dst.Max.Y

	logging.Logger().Debug("glyph: packed",
		"font", f.Name(), "rune", string(r),
		"rect", dst, "dx", g.DX, "dy", g.DY)

	return f.add(g), nil
}

// MustGlyph is like Glyph but panics on error. It suits callers that treat
// capacity and atlas overflow as programming errors.
func (c *Cache) MustGlyph(f *Font, r rune) Glyph {
	g, err := c.Glyph(f, r)
	if err != nil {
		panic(err)
	}
	return g
}

// Warm caches every rune of text.
func (c *Cache) Warm(f *Font, text string) error {
	for _, r := range text {
		if _, err := c.Glyph(f, r); err != nil {
			return err
		}
	}
	return nil
}

// WarmRange caches the runes first through last inclusive.
func (c *Cache) WarmRange(f *Font, first, last rune) error {
	for r := first; r <= last; r++ {
		if _, err := c.Glyph(f, r); err != nil {
			return err
		}
	}
	return nil
}

// inkBounds returns the smallest rectangle holding every non-zero texel
// of m, and false when m is entirely transparent.
func inkBounds(m *image.Alpha) (image.Rectangle, bool) {
	b := m.Rect
	xmin, ymin := b.Max.X, b.Max.Y
	xmax, ymax := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[m.PixOffset(b.Min.X, y) : m.PixOffset(b.Min.X, y)+b.Dx()]
		for i, c := range row {
			if c == 0 {
				continue
			}
			x := b.Min.X + i
			xmin = min(xmin, x)
			xmax = max(xmax, x)
			ymin = min(ymin, y)
			ymax = max(ymax, y)
		}
	}

	if xmin > xmax {
		return image.Rectangle{}, false
	}
	return image.Rect(xmin, ymin, xmax+1, ymax+1), true
}
